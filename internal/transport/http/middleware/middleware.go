// middleware - обвязка REST-интерфейса выдачи тендеров.
package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// Middleware - стандартный net/http мидлвар.
type Middleware func(http.Handler) http.Handler

// Chain применяет мидлвары к обработчику в порядке их перечисления.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// TenderAPI - полный набор мидлваров API тендеров (внешний -> внутренний):
// Recover, RequestID, Logging, Deadline.
// RequestID стоит до Logging, чтобы id попал в логгер запроса.
// Deadline стоит последним: ответ 504 от него видят и логирование, и Recover.
func TenderAPI(l *slog.Logger, timeout time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return Chain(next,
			Recover(),
			RequestID(),
			Logging(l),
			Deadline(timeout),
		)
	}
}

// responseWriter запоминает статус и размер ответа.
// started показывает, ушли ли уже заголовки клиенту: после этого
// конверт ошибки писать нельзя.
type responseWriter struct {
	http.ResponseWriter
	status int
	count  int
}

func (w *responseWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	count, err := w.ResponseWriter.Write(p)
	w.count += count
	return count, err
}

// Unwrap нужен http.ResponseController.
func (w *responseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (w *responseWriter) started() bool { return w.status != 0 }

// track оборачивает w, не создавая второй обёртки поверх уже отслеживаемой.
func track(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w}
}
