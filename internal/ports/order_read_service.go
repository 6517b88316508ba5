package ports

import (
	"context"

	"github.com/Gunvolt24/xmlorders/internal/domain"
)

// OrderReadService — сервис чтения заказов.
type OrderReadService interface {
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	OrdersByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]*domain.Order, error)
	// InvalidateCache — сбросить закэшированные заказы (после повторного импорта).
	InvalidateCache(ctx context.Context)
}
