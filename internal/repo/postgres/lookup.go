package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Gunvolt24/xmlorders/internal/domain"
)

// FindCustomerByName — покупатель по точному имени. Если не нашли, возвращает (nil, nil).
func (s *Store) FindCustomerByName(ctx context.Context, name string) (*domain.Customer, error) {
	var c domain.Customer
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, email FROM customers WHERE name = $1
	`, name).Scan(&c.ID, &c.Name, &c.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select customer: %w", err)
	}
	return &c, nil
}

// FindProductByName — товар по точному имени. Если не нашли, возвращает (nil, nil).
func (s *Store) FindProductByName(ctx context.Context, name string) (*domain.Product, error) {
	var (
		p     domain.Product
		price pgtype.Numeric
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, price FROM products WHERE name = $1
	`, name).Scan(&p.ID, &p.Name, &price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select product: %w", err)
	}
	p.Price = fromNumeric(price)
	return &p, nil
}
