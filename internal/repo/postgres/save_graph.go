package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Gunvolt24/xmlorders/internal/domain"
)

// SaveGraph — одной транзакцией сохраняет всё, что накоплено за прогон:
//  1. покупатели: новые (ID == 0) — INSERT, уже сохранённые — UPDATE email;
//  2. товары: новые — INSERT, уже сохранённые — UPDATE price;
//  3. заказы — INSERT ... RETURNING id;
//  4. позиции — COPY (количество по умолчанию — domain.DefaultLineItemCount).
//
// Любая ошибка откатывает транзакцию целиком. ID проставляются в сущности графа.
func (s *Store) SaveGraph(ctx context.Context, graph *domain.Graph) error {
	if graph == nil {
		return errors.New("graph is nil")
	}
	for i, order := range graph.Orders {
		if order == nil || order.Customer == nil {
			return fmt.Errorf("order #%d has no customer", i+1)
		}
	}

	transaction, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			s.log.Warnf(ctx, "rollback failed: %v", rbErr)
		}
	}()

	if err = saveCustomers(ctx, transaction, graph.Customers); err != nil {
		return err
	}
	if err = saveProducts(ctx, transaction, graph.Products); err != nil {
		return err
	}
	if err = insertOrders(ctx, transaction, graph.Orders); err != nil {
		return err
	}
	if err = copyLineItems(ctx, transaction, graph.Orders); err != nil {
		return err
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.log.Infof(ctx, "graph saved orders=%d customers=%d products=%d items=%d",
		len(graph.Orders), len(graph.Customers), len(graph.Products), graph.LineItemsCount())
	return nil
}

func saveCustomers(ctx context.Context, tx pgx.Tx, customers []*domain.Customer) error {
	batch := &pgx.Batch{}
	for _, c := range customers {
		if c.ID == 0 {
			batch.Queue(`INSERT INTO customers (name, email) VALUES ($1, $2) RETURNING id`, c.Name, c.Email)
		} else {
			batch.Queue(`UPDATE customers SET email = $2 WHERE id = $1 RETURNING id`, c.ID, c.Email)
		}
	}
	return runBatch(ctx, tx, batch, len(customers), func(i int, row pgx.Row) error {
		if err := row.Scan(&customers[i].ID); err != nil {
			return fmt.Errorf("save customer %q: %w", customers[i].Name, err)
		}
		return nil
	})
}

func saveProducts(ctx context.Context, tx pgx.Tx, products []*domain.Product) error {
	batch := &pgx.Batch{}
	for _, p := range products {
		if p.ID == 0 {
			batch.Queue(`INSERT INTO products (name, price) VALUES ($1, $2) RETURNING id`, p.Name, toNumeric(p.Price))
		} else {
			batch.Queue(`UPDATE products SET price = $2 WHERE id = $1 RETURNING id`, p.ID, toNumeric(p.Price))
		}
	}
	return runBatch(ctx, tx, batch, len(products), func(i int, row pgx.Row) error {
		if err := row.Scan(&products[i].ID); err != nil {
			return fmt.Errorf("save product %q: %w", products[i].Name, err)
		}
		return nil
	})
}

func insertOrders(ctx context.Context, tx pgx.Tx, orders []*domain.Order) error {
	batch := &pgx.Batch{}
	for _, o := range orders {
		batch.Queue(`
			INSERT INTO orders (number, reg_date, cost, customer_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, o.Number, o.Date, toNumeric(o.Cost), o.Customer.ID)
	}
	return runBatch(ctx, tx, batch, len(orders), func(i int, row pgx.Row) error {
		if err := row.Scan(&orders[i].ID); err != nil {
			return fmt.Errorf("insert order #%d: %w", i+1, err)
		}
		return nil
	})
}

// runBatch — отправляет батч и разбирает ответы по порядку постановки.
func runBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch, n int, scan func(i int, row pgx.Row) error) (err error) {
	if n == 0 {
		return nil
	}
	results := tx.SendBatch(ctx, batch)
	defer func() {
		if cErr := results.Close(); cErr != nil && err == nil {
			err = fmt.Errorf("close batch: %w", cErr)
		}
	}()

	for i := 0; i < n; i++ {
		if err := scan(i, results.QueryRow()); err != nil {
			return err
		}
	}
	return nil
}

// copyLineItems — вставка позиций через COPY (CopyFromRows); быстрее, чем INSERT в цикле.
func copyLineItems(ctx context.Context, tx pgx.Tx, orders []*domain.Order) error {
	rows := make([][]any, 0)
	for _, o := range orders {
		for i := range o.Items {
			item := &o.Items[i]
			if item.Product == nil || item.Product.ID == 0 {
				return fmt.Errorf("line item of order %d references unsaved product", o.ID)
			}
			item.OrderID = o.ID
			rows = append(rows, []any{o.ID, item.Product.ID, int32(item.Quantity())})
		}
	}
	if len(rows) == 0 {
		return nil
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"order_items"},
		[]string{"order_id", "product_id", "count"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy order items: %w", err)
	}
	return nil
}
