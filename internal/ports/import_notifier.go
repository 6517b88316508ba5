package ports

import (
	"context"

	"github.com/Gunvolt24/xmlorders/internal/domain"
)

// ImportNotifier — оповещение внешних систем о завершённом импорте.
type ImportNotifier interface {
	ImportCompleted(ctx context.Context, summary domain.ImportSummary) error
}
