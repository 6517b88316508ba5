// Пакет ctxmeta — нейтральный слой для метаданных, которые прокидываются через
// context.Context: run_id прогона импорта, request_id HTTP-запроса, trace/span.
// HTTP-слой, use case и логгер зависят от него, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемый тип — чтобы избежать коллизий).
	KeyRequestID ctxKey = "request_id"
	KeyRunID     ctxKey = "run_id"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return valueFrom(ctx, KeyRequestID)
}

// WithRunID кладёт идентификатор прогона импорта в контекст.
func WithRunID(ctx context.Context, runID string) context.Context {
	return withValue(ctx, KeyRunID, runID)
}

// RunIDFromContext достаёт идентификатор прогона импорта.
func RunIDFromContext(ctx context.Context) (string, bool) {
	return valueFrom(ctx, KeyRunID)
}

func withValue(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func valueFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
