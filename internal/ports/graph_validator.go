package ports

import (
	"context"

	"github.com/Gunvolt24/xmlorders/internal/domain"
)

// GraphValidator — проверка связности графа перед коммитом.
type GraphValidator interface {
	Validate(ctx context.Context, graph *domain.Graph) error
}
