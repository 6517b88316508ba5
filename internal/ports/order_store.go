package ports

import (
	"context"

	"github.com/Gunvolt24/xmlorders/internal/domain"
)

// OrderStore — хранилище, в которое пишет импорт.
type OrderStore interface {
	EntityLookup

	// Recreate — пересоздать схему, удалив все существующие данные.
	Recreate(ctx context.Context) error

	// SaveGraph — атомарно сохранить весь граф (заказы, позиции, новые и изменённые
	// покупатели/товары). Идентификаторы назначает хранилище и проставляет в сущности.
	SaveGraph(ctx context.Context, graph *domain.Graph) error
}
