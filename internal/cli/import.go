package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/xmlorders/internal/app"
	"github.com/Gunvolt24/xmlorders/pkg/metrics"
)

func newImportCmd(st *state) *cobra.Command {
	var (
		file     string
		asJSON   bool
		textfile string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Пересоздать базу и загрузить заказы из XML",
		Long: "Читает XML-файл заказов целиком, пересоздаёт схему БД и сохраняет все заказы одной транзакцией. " +
			"Любая ошибка формата прерывает загрузку: в базе не остаётся ни одной строки.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := st.cfg
			if file == "" {
				file = cfg.Import.File
			}
			if textfile == "" {
				textfile = cfg.Import.MetricsTextfile
			}

			ctx := cmd.Context()
			if cfg.Import.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.Import.Timeout)
				defer cancel()
			}

			logg, syncLogger, err := app.NewLogger(&cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = syncLogger() }()

			c, cleanup, err := app.Bootstrap(ctx, &cfg, logg)
			if err != nil {
				return fmt.Errorf("bootstrap: %w", err)
			}
			defer cleanup()

			summary, importErr := c.Importer.Import(ctx, file)

			// метрики сбрасываются и при неудачном прогоне
			if textfile != "" {
				if err := metrics.WriteTextfile(textfile); err != nil {
					logg.Warnf(ctx, "write metrics textfile %s: %v", textfile, err)
				}
			}
			if importErr != nil {
				return importErr
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			fmt.Fprintln(out, successStyle.Render(MsgImported))
			fmt.Fprint(out, renderSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "входной XML (по умолчанию XMLORDERS_IMPORT_FILE или SqlData.xml)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "вывести сводку в JSON")
	cmd.Flags().StringVar(&textfile, "metrics-textfile", "", "файл для textfile-коллектора node_exporter")
	return cmd
}
