package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/xmlorders/internal/ports"
)

// Проверка, что Store удовлетворяет портам импорта и чтения.
var (
	_ ports.OrderStore          = (*Store)(nil)
	_ ports.OrderReadRepository = (*Store)(nil)
)

// Store — хранилище заказов на Postgres (pgxpool).
type Store struct {
	pool *pgxpool.Pool
	log  ports.Logger
}

// NewStore — конструктор Store.
func NewStore(pool *pgxpool.Pool, log ports.Logger) *Store {
	return &Store{pool: pool, log: log}
}
