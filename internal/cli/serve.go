package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/xmlorders/internal/app"
)

func newServeCmd(st *state) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "HTTP API для чтения загруженных заказов",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := st.cfg
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			ctx := cmd.Context()

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

			return app.NewApp(ctx, &cfg, c).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "адрес HTTP-сервера (по умолчанию XMLORDERS_HTTP_ADDR)")
	return cmd
}
