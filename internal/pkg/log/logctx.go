// log хранит request/run-scoped *slog.Logger в context.Context.
package log

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Into кладёт логгер в контекст.
func Into(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From достаёт логгер из контекста (или возвращает slog.Default()).
func From(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}

	return slog.Default()
}

// With дополняет логгер из ctx атрибутами и возвращает
// дочерний контекст вместе с полученным логгером.
// Так ingest-прогон один раз навешивает run_id, а все
// нижележащие вызовы получают его автоматически.
func With(ctx context.Context, attrs ...any) (context.Context, *slog.Logger) {
	l := From(ctx).With(attrs...)

	return Into(ctx, l), l
}
