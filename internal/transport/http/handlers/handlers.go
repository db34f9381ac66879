// handlers - REST-эндпойнты выдачи тендеров.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/go-tender-aggregator/internal/models"
)

// TenderService - сценарии выдачи, которые нужны хендлерам.
type TenderService interface {
	ListTenders(ctx context.Context, opts models.ListOptions) (*models.Page, error)
	TenderByID(ctx context.Context, id string) (*models.Tender, error)
}

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	Service TenderService
}

func New(s TenderService) *Handlers {
	return &Handlers{Service: s}
}

// writeJSON - единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
