package ports

import (
	"context"

	"github.com/Gunvolt24/xmlorders/internal/domain"
)

// OrderReadRepository — чтение импортированных заказов.
type OrderReadRepository interface {
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*domain.Order, error)
}
