package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Gunvolt24/xmlorders/internal/domain"
)

const selectOrderBase = `
	SELECT o.id, o.number, o.reg_date, o.cost, c.id, c.name, c.email
	FROM orders o
	JOIN customers c ON c.id = o.customer_id
`

// GetOrder — заказ с покупателем и позициями. Если не нашли, возвращает (nil, nil).
func (s *Store) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := scanOrder(s.pool.QueryRow(ctx, selectOrderBase+` WHERE o.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}

	if err := s.attachItems(ctx, map[int64]*domain.Order{order.ID: order}, []int64{order.ID}); err != nil {
		return nil, err
	}
	return order, nil
}

// ListByCustomer — постраничный список заказов покупателя.
// Два запроса на страницу: базовые заказы + позиции всех заказов страницы.
func (s *Store) ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.pool.Query(ctx, selectOrderBase+`
		WHERE o.customer_id = $1
		ORDER BY o.reg_date DESC, o.id DESC
		LIMIT $2 OFFSET $3
	`, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select customer orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, limit)
	byID := make(map[int64]*domain.Order, limit)
	ids := make([]int64, 0, limit)

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
		byID[order.ID] = order
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders rows: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil // пустая страница
	}

	if err := s.attachItems(ctx, byID, ids); err != nil {
		return nil, err
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order    domain.Order
		customer domain.Customer
		cost     pgtype.Numeric
	)
	if err := row.Scan(&order.ID, &order.Number, &order.Date, &cost,
		&customer.ID, &customer.Name, &customer.Email); err != nil {
		return nil, err
	}
	order.Cost = fromNumeric(cost)
	order.Customer = &customer
	return &order, nil
}

// attachItems — позиции для всех заказов по списку ID, порядок — по id позиции.
func (s *Store) attachItems(ctx context.Context, byID map[int64]*domain.Order, ids []int64) error {
	rows, err := s.pool.Query(ctx, `
		SELECT i.id, i.order_id, i.count, p.id, p.name, p.price
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1::bigint[])
		ORDER BY i.order_id, i.id
	`, ids)
	if err != nil {
		return fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item    domain.LineItem
			product domain.Product
			count   int
			price   pgtype.Numeric
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &count, &product.ID, &product.Name, &price); err != nil {
			return fmt.Errorf("scan item: %w", err)
		}
		product.Price = fromNumeric(price)
		item.Product = &product
		item.Count = &count

		if order := byID[item.OrderID]; order != nil {
			order.Items = append(order.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("items rows: %w", err)
	}
	return nil
}
