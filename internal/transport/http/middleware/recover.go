package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	logctx "github.com/pribylovaa/go-tender-aggregator/internal/pkg/log"
	apierrors "github.com/pribylovaa/go-tender-aggregator/internal/transport/http/errors"
)

// Recover перехватывает panic обработчиков API тендеров.
//
// Если ответ ещё не начат, клиент получает 500/internal без деталей паники.
// Если заголовки уже ушли, соединение обрывается через http.ErrAbortHandler:
// дописывать конверт ошибки в середину JSON нельзя.
// Сам http.ErrAbortHandler пробрасывается дальше без логирования.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := track(w)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "handler_panic",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", r.Header.Get(HeaderRequestID)),
					slog.Bool("response_started", rw.started()),
					slog.Any("reason", rec),
					slog.String("stack", string(debug.Stack())),
				)

				if rw.started() {
					panic(http.ErrAbortHandler)
				}
				apierrors.WriteError(rw, r, fmt.Errorf("panic: %v", rec))
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
