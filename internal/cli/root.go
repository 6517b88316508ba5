package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Gunvolt24/xmlorders/config"
)

var (
	version = "dev"
	commit  = "none"
)

// DotEnvFile — локальные переопределения окружения (необязательный файл).
const DotEnvFile = ".env.local"

// state — конфигурация, загруженная перед запуском подкоманды.
type state struct {
	cfg config.Config
}

func newRootCmd() *cobra.Command {
	st := &state{}

	cmd := &cobra.Command{
		Use:           "xmlorders",
		Short:         "Импорт заказов из XML в PostgreSQL",
		Long:          "xmlorders загружает заказы из XML-файла в реляционную схему, объединяя покупателей и товары по имени.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load %s: %w", DotEnvFile, err)
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			st.cfg = cfg
			return nil
		},
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newImportCmd(st))
	cmd.AddCommand(newValidateCmd(st))
	cmd.AddCommand(newServeCmd(st))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute — точка входа; ошибка печатается в stderr, код возврата выбирает main.
func Execute(stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Версия xmlorders",
		// версия не зависит от окружения
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "xmlorders %s (%s)\n", version, commit)
			return nil
		},
	}
}
