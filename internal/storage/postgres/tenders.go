package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/go-tender-aggregator/internal/models"
	"github.com/pribylovaa/go-tender-aggregator/internal/storage"
)

// TenderExists проверяет наличие записи по каноническому URL.
func (s *Storage) TenderExists(ctx context.Context, tenderURL string) (bool, error) {
	const op = "storage.postgres.TenderExists"

	var exists bool
	err := s.db.QueryRow(ctx, `
	SELECT EXISTS (SELECT 1 FROM tenders WHERE tender_url = $1)
	`, tenderURL).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// InsertTender вставляет одну запись.
// Нарушение уникальности tender_url возвращается как storage.ErrAlreadyExists.
func (s *Storage) InsertTender(ctx context.Context, t models.Tender) error {
	const op = "storage.postgres.InsertTender"

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if t.Status == "" {
		t.Status = models.StatusNew
	}

	var category *string
	if t.Category != nil {
		c := string(*t.Category)
		category = &c
	}

	_, err := s.db.Exec(ctx, `
	INSERT INTO tenders (id, title, description, publication_date, deadline, category, region,
		estimated_value, tender_url, source, source_url, status, is_bookmarked, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, t.ID, t.Title, t.Description, t.PublicationDate.UTC(), t.Deadline.UTC(), category, t.Region,
		t.EstimatedValue, t.TenderURL, t.Source, t.SourceURL, string(t.Status), t.IsBookmarked, t.CreatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListTenders возвращает страницу тендеров и общее количество по фильтру.
// Неизвестное поле или направление сортировки - storage.ErrInvalidArgument.
func (s *Storage) ListTenders(ctx context.Context, opts models.ListOptions) (*models.Page, error) {
	const op = "storage.postgres.ListTenders"

	order, ok := orderClause(opts.SortBy, opts.SortOrder)
	if !ok {
		return nil, fmt.Errorf("%s: %w: sort %q %q", op, storage.ErrInvalidArgument, opts.SortBy, opts.SortOrder)
	}

	limit := opts.Limit
	if limit <= 0 {
		// Защита от нуля/отрицательного значения.
		limit = 1
	}
	opts.Limit = limit

	where, args := whereClause(opts)

	var total int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM tenders `+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("%s: count: %w", op, err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM tenders %s %s LIMIT $%d OFFSET $%d`,
		tenderColumns, where, order, n+1, n+2)
	args = append(args, limit, opts.Offset())

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	page := models.Page{
		Items: make([]models.Tender, 0, limit),
		Total: total,
		Page:  max(opts.Page, 1),
		Limit: limit,
	}
	for rows.Next() {
		t, scanErr := scanTender(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}
		page.Items = append(page.Items, t)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return &page, nil
}

// TenderByID возвращает тендер по идентификатору.
// Если запись не найдена - storage.ErrNotFound.
func (s *Storage) TenderByID(ctx context.Context, id uuid.UUID) (*models.Tender, error) {
	const op = "storage.postgres.TenderByID"

	row := s.db.QueryRow(ctx, `SELECT `+tenderColumns+` FROM tenders WHERE id = $1`, id)
	t, err := scanTender(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &t, nil
}

// Filters возвращает отсортированные различные значения категорий и регионов.
func (s *Storage) Filters(ctx context.Context) (models.Filters, error) {
	const op = "storage.postgres.Filters"

	categories, err := s.distinct(ctx, "category")
	if err != nil {
		return models.Filters{}, fmt.Errorf("%s: %w", op, err)
	}

	regions, err := s.distinct(ctx, "region")
	if err != nil {
		return models.Filters{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Filters{Categories: categories, Regions: regions}, nil
}

// distinct читает различные непустые значения колонки; column - только константа из кода.
func (s *Storage) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(
		`SELECT DISTINCT %[1]s FROM tenders WHERE %[1]s IS NOT NULL AND %[1]s <> '' ORDER BY %[1]s`, column))
	if err != nil {
		return nil, err
	}

	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}

	return values, nil
}

// scanTender читает строку в модель и нормализует время в UTC.
func scanTender(row pgx.Row) (models.Tender, error) {
	var (
		t        models.Tender
		category *string
		status   string
	)

	if err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.PublicationDate,
		&t.Deadline,
		&category,
		&t.Region,
		&t.EstimatedValue,
		&t.TenderURL,
		&t.Source,
		&t.SourceURL,
		&status,
		&t.IsBookmarked,
		&t.CreatedAt,
	); err != nil {
		return models.Tender{}, err
	}

	if category != nil {
		c := models.Category(*category)
		t.Category = &c
	}
	t.Status = models.Status(status)

	// Нормализация в UTC.
	t.PublicationDate = t.PublicationDate.UTC()
	t.Deadline = t.Deadline.UTC()
	t.CreatedAt = t.CreatedAt.UTC()

	return t, nil
}
