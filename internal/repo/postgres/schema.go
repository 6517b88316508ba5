package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/Gunvolt24/xmlorders/internal/ports"
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Recreate — пересоздаёт схему: откатывает все миграции (DROP) и применяет их заново.
// Все ранее импортированные данные удаляются.
func (s *Store) Recreate(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{ctx: ctx, log: s.log})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.ResetContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("goose reset: %w", err)
	}
	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	s.log.Infof(ctx, "schema recreated")
	return nil
}

// gooseLogger — вывод goose в общий логгер приложения.
type gooseLogger struct {
	ctx context.Context
	log ports.Logger
}

func (g gooseLogger) Printf(format string, v ...any) { g.log.Infof(g.ctx, "goose: "+format, v...) }

// Fatalf не завершает процесс: ошибка всё равно вернётся из goose.
func (g gooseLogger) Fatalf(format string, v ...any) { g.log.Errorf(g.ctx, "goose: "+format, v...) }
