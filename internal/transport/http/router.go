// http собирает REST-интерфейс выдачи тендеров поверх chi.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-tender-aggregator/internal/transport/http/handlers"
	"github.com/pribylovaa/go-tender-aggregator/internal/transport/http/middleware"
)

// Options - параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration // timeouts.service; 504 при превышении
	BasePath string        // например, "/api"; если пустой - роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.TenderService, opts Options) http.Handler {
	root := chi.NewRouter()

	root.Use(middleware.TenderAPI(opts.Logger, opts.Timeout))

	h := handlers.New(svc)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes - единая точка регистрации REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	r.Get("/tenders", h.ListTenders)
	r.Get("/tenders/{id}", h.GetTenderByID)
}
