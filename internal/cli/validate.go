package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/xmlorders/internal/app"
)

func newValidateCmd(st *state) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Проверить XML без записи в базу",
		Long:  "Разбирает файл по тем же правилам, что и import, и показывает, сколько сущностей было бы создано. База не используется.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := st.cfg
			if file == "" {
				file = cfg.Import.File
			}

			logg, syncLogger, err := app.NewLogger(&cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = syncLogger() }()

			summary, err := app.BootstrapOffline(logg).DryRun(cmd.Context(), file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, successStyle.Render(MsgValid))
			fmt.Fprint(out, renderSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "входной XML (по умолчанию XMLORDERS_IMPORT_FILE или SqlData.xml)")
	return cmd
}
