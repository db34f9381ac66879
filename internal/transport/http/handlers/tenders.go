package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-tender-aggregator/internal/models"
	"github.com/pribylovaa/go-tender-aggregator/internal/service"
	apierrors "github.com/pribylovaa/go-tender-aggregator/internal/transport/http/errors"
)

// ListTenders - GET /tenders.
// Параметры: search, category, region, status, sortBy, sortOrder, page, limit.
// Значения по умолчанию и allow-list применяет сервисный слой.
func (h *Handlers) ListTenders(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptionsFromQuery(r.URL.Query())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := h.Service.ListTenders(r.Context(), opts)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToJSON(page))
}

// GetTenderByID - GET /tenders/{id}.
func (h *Handlers) GetTenderByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	tender, err := h.Service.TenderByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tenderToJSON(*tender))
}

func listOptionsFromQuery(q url.Values) (models.ListOptions, error) {
	opts := models.ListOptions{
		Search:    q.Get("search"),
		Category:  q.Get("category"),
		Region:    q.Get("region"),
		Status:    q.Get("status"),
		SortBy:    models.SortField(q.Get("sortBy")),
		SortOrder: models.SortOrder(q.Get("sortOrder")),
	}

	var err error
	if opts.Page, err = parseInt32(q, "page"); err != nil {
		return opts, err
	}
	if opts.Limit, err = parseInt32(q, "limit"); err != nil {
		return opts, err
	}

	return opts, nil
}

// parseInt32 разбирает необязательный целочисленный параметр; отсутствие -> 0.
func parseInt32(q url.Values, key string) (int32, error) {
	v := q.Get(key)
	if v == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", service.ErrInvalidArgument, key)
	}

	return int32(n), nil
}
