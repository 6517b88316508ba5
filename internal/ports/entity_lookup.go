package ports

import (
	"context"

	"github.com/Gunvolt24/xmlorders/internal/domain"
)

// EntityLookup — поиск уже сохранённых сущностей по естественному ключу (имени).
// При отсутствии записи возвращает (nil, nil).
type EntityLookup interface {
	FindCustomerByName(ctx context.Context, name string) (*domain.Customer, error)
	FindProductByName(ctx context.Context, name string) (*domain.Product, error)
}
