package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-tender-aggregator/internal/models"
	"github.com/pribylovaa/go-tender-aggregator/internal/pkg/log"
	"github.com/pribylovaa/go-tender-aggregator/internal/storage"
)

// ListTenders возвращает страницу тендеров вместе с доступными значениями фильтров.
//
// Правила нормализации:
// - page < 1 -> 1;
// - limit <= 0 -> cfg.LimitsConfig.Default;
// - limit > max -> cfg.LimitsConfig.Max;
// - пустой sortBy -> deadline, пустой sortOrder -> asc;
// - category принимает slug (it_digitalisierung, bauarbeiten, ...) или имя категории.
//
// Ошибки:
// - ErrInvalidArgument - поле/направление сортировки вне allow-list или неизвестный статус;
// - прочие ошибки стораджа - обёрнутые и прокинуты наверх.
func (s *Service) ListTenders(ctx context.Context, opts models.ListOptions) (*models.Page, error) {
	const op = "service.queries.ListTenders"

	lg := log.From(ctx)
	lg.Info("list_tenders_request",
		slog.String("op", op),
		slog.Int("page", int(opts.Page)),
		slog.Int("limit", int(opts.Limit)),
		slog.Bool("has_search", strings.TrimSpace(opts.Search) != ""),
	)

	opts, err := s.normalizeListOptions(opts)
	if err != nil {
		lg.Warn("list_tenders_invalid_argument",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page, err := s.storage.ListTenders(ctx, opts)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidArgument) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		lg.Error("list_tenders_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filters, err := s.storage.Filters(ctx)
	if err != nil {
		lg.Error("list_tenders_filters_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: filters: %w", op, err)
	}
	page.Filters = filters

	lg.Info("list_tenders_ok",
		slog.String("op", op),
		slog.Int("items", len(page.Items)),
		slog.Int64("total", page.Total),
	)

	return page, nil
}

// normalizeListOptions применяет значения по умолчанию и проверяет allow-list.
func (s *Service) normalizeListOptions(opts models.ListOptions) (models.ListOptions, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}

	if opts.Limit <= 0 {
		opts.Limit = s.cfg.LimitsConfig.Default
	}
	if s.cfg.LimitsConfig.Max > 0 && opts.Limit > s.cfg.LimitsConfig.Max {
		opts.Limit = s.cfg.LimitsConfig.Max
	}

	if opts.SortBy == "" {
		opts.SortBy = models.SortByDeadline
	}
	if !opts.SortBy.Valid() {
		return opts, fmt.Errorf("%w: invalid sort field %q", ErrInvalidArgument, opts.SortBy)
	}

	opts.SortOrder = models.SortOrder(strings.ToLower(string(opts.SortOrder)))
	if opts.SortOrder == "" {
		opts.SortOrder = models.SortAsc
	}
	if !opts.SortOrder.Valid() {
		return opts, fmt.Errorf("%w: invalid sort order %q", ErrInvalidArgument, opts.SortOrder)
	}

	if opts.Category != "" {
		if c, ok := models.ParseCategory(opts.Category); ok {
			opts.Category = string(c)
		}
	}

	if opts.Status != "" && !models.Status(opts.Status).Valid() {
		return opts, fmt.Errorf("%w: invalid status %q", ErrInvalidArgument, opts.Status)
	}

	opts.Search = strings.TrimSpace(opts.Search)

	return opts, nil
}

// TenderByID возвращает тендер по идентификатору.
//
// Ошибки:
// - ErrInvalidArgument - id не является UUID;
// - ErrNotFound - если запись отсутствует (маппинг storage.ErrNotFound);
// - прочие ошибки стораджа - обёрнутые и прокинуты наверх.
func (s *Service) TenderByID(ctx context.Context, id string) (*models.Tender, error) {
	const op = "service.queries.TenderByID"

	lg := log.From(ctx)
	lg.Info("tender_by_id_request",
		slog.String("op", op),
		slog.String("id", id),
	)

	tenderID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: bad id", op, ErrInvalidArgument)
	}

	tender, err := s.storage.TenderByID(ctx, tenderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("tender_by_id_not_found",
				slog.String("op", op),
				slog.String("id", id),
			)

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("tender_by_id_storage_error",
			slog.String("op", op),
			slog.String("id", id),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tender, nil
}
