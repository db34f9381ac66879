package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	logctx "github.com/pribylovaa/go-tender-aggregator/internal/pkg/log"
	apierrors "github.com/pribylovaa/go-tender-aggregator/internal/transport/http/errors"
)

// Deadline ограничивает обработку запроса к API тендеров значением d
// (timeouts.service). Более ранний дедлайн клиента сохраняется.
//
// Если обработчик вернулся по истечении дедлайна, ничего не записав,
// клиент получает 504/deadline_exceeded в формате ErrorResponse.
// Значение <=0 делает мидлвар no-op.
func Deadline(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if _, ok := ctx.Deadline(); !ok {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, d)
				defer cancel()
				r = r.WithContext(ctx)
			}

			rw := track(w)
			next.ServeHTTP(rw, r)

			if rw.started() || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return
			}

			logctx.From(ctx).LogAttrs(ctx, slog.LevelWarn, "request_deadline_exceeded",
				slog.String("path", r.URL.Path),
				slog.Duration("timeout", d),
			)
			apierrors.WriteError(rw, r, ctx.Err())
		})
	}
}
