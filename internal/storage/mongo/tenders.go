package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/pribylovaa/go-tender-aggregator/internal/models"
	"github.com/pribylovaa/go-tender-aggregator/internal/storage"
)

// tenderDoc - представление models.Tender в коллекции.
// _id - строковый UUID, опциональные поля хранятся как null.
type tenderDoc struct {
	ID              string    `bson:"_id"`
	Title           string    `bson:"title"`
	Description     string    `bson:"description"`
	PublicationDate time.Time `bson:"publication_date"`
	Deadline        time.Time `bson:"deadline"`
	Category        *string   `bson:"category"`
	Region          *string   `bson:"region"`
	EstimatedValue  *float64  `bson:"estimated_value"`
	TenderURL       string    `bson:"tender_url"`
	Source          string    `bson:"source"`
	SourceURL       string    `bson:"source_url"`
	Status          string    `bson:"status"`
	IsBookmarked    bool      `bson:"is_bookmarked"`
	CreatedAt       time.Time `bson:"created_at"`
}

// sortFields - allow-list полей сортировки.
var sortFields = map[models.SortField]string{
	models.SortByPublicationDate: "publication_date",
	models.SortByDeadline:        "deadline",
	models.SortByEstimatedValue:  "estimated_value",
}

// MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

func toDoc(t models.Tender) tenderDoc {
	doc := tenderDoc{
		ID:              t.ID.String(),
		Title:           t.Title,
		Description:     t.Description,
		PublicationDate: toMS(t.PublicationDate),
		Deadline:        toMS(t.Deadline),
		Region:          t.Region,
		EstimatedValue:  t.EstimatedValue,
		TenderURL:       t.TenderURL,
		Source:          t.Source,
		SourceURL:       t.SourceURL,
		Status:          string(t.Status),
		IsBookmarked:    t.IsBookmarked,
		CreatedAt:       toMS(t.CreatedAt),
	}
	if t.Category != nil {
		c := string(*t.Category)
		doc.Category = &c
	}

	return doc
}

func fromDoc(doc tenderDoc) (models.Tender, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return models.Tender{}, fmt.Errorf("bad _id %q: %w", doc.ID, err)
	}

	t := models.Tender{
		ID:              id,
		Title:           doc.Title,
		Description:     doc.Description,
		PublicationDate: doc.PublicationDate.UTC(),
		Deadline:        doc.Deadline.UTC(),
		Region:          doc.Region,
		EstimatedValue:  doc.EstimatedValue,
		TenderURL:       doc.TenderURL,
		Source:          doc.Source,
		SourceURL:       doc.SourceURL,
		Status:          models.Status(doc.Status),
		IsBookmarked:    doc.IsBookmarked,
		CreatedAt:       doc.CreatedAt.UTC(),
	}
	if doc.Category != nil {
		c := models.Category(*doc.Category)
		t.Category = &c
	}

	return t, nil
}

// TenderExists проверяет наличие документа по каноническому URL.
func (m *Mongo) TenderExists(ctx context.Context, tenderURL string) (bool, error) {
	const op = "storage.mongo.TenderExists"

	err := m.tenders.FindOne(ctx, bson.D{{Key: "tender_url", Value: tenderURL}}).Err()
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return false, nil
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}

// InsertTender вставляет один документ.
// Нарушение уникального индекса tender_url возвращается как storage.ErrAlreadyExists.
func (m *Mongo) InsertTender(ctx context.Context, t models.Tender) error {
	const op = "storage.mongo.InsertTender"

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if t.Status == "" {
		t.Status = models.StatusNew
	}

	if _, err := m.tenders.InsertOne(ctx, toDoc(t)); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: insert: %w", op, err)
	}

	return nil
}

// buildFilter собирает фильтр выборки; пустые параметры не применяются.
func buildFilter(opts models.ListOptions) bson.D {
	filter := bson.D{}

	if s := strings.TrimSpace(opts.Search); s != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: re}},
			bson.D{{Key: "description", Value: re}},
		}})
	}
	if opts.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: opts.Category})
	}
	if opts.Region != "" {
		filter = append(filter, bson.E{Key: "region", Value: opts.Region})
	}
	if opts.Status != "" {
		filter = append(filter, bson.E{Key: "status", Value: opts.Status})
	}

	return filter
}

// buildPipeline возвращает агрегацию страницы: null-значения поля сортировки
// всегда в конце, _id - тай-брейк.
func buildPipeline(filter bson.D, field string, dir int, skip, limit int64) mongodriver.Pipeline {
	isNull := bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$eq", Value: bson.A{bson.D{{Key: "$ifNull", Value: bson.A{"$" + field, nil}}}, nil}}},
		1, 0,
	}}}

	return mongodriver.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$addFields", Value: bson.D{{Key: "_sort_null", Value: isNull}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_sort_null", Value: 1}, {Key: field, Value: dir}, {Key: "_id", Value: dir}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$unset", Value: "_sort_null"}},
	}
}

// ListTenders возвращает страницу тендеров и общее количество по фильтру.
func (m *Mongo) ListTenders(ctx context.Context, opts models.ListOptions) (*models.Page, error) {
	const op = "storage.mongo.ListTenders"

	field, ok := sortFields[opts.SortBy]
	if !ok {
		return nil, fmt.Errorf("%s: %w: sort field %q", op, storage.ErrInvalidArgument, opts.SortBy)
	}

	dir := 1
	switch opts.SortOrder {
	case models.SortAsc, "":
	case models.SortDesc:
		dir = -1
	default:
		return nil, fmt.Errorf("%s: %w: sort order %q", op, storage.ErrInvalidArgument, opts.SortOrder)
	}

	if opts.Limit <= 0 {
		opts.Limit = 1
	}

	filter := buildFilter(opts)

	total, err := m.tenders.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: count: %w", op, err)
	}

	cur, err := m.tenders.Aggregate(ctx, buildPipeline(filter, field, dir, opts.Offset(), int64(opts.Limit)))
	if err != nil {
		return nil, fmt.Errorf("%s: aggregate: %w", op, err)
	}
	defer cur.Close(ctx)

	page := models.Page{
		Items: make([]models.Tender, 0, opts.Limit),
		Total: total,
		Page:  max(opts.Page, 1),
		Limit: opts.Limit,
	}
	for cur.Next(ctx) {
		var doc tenderDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		t, err := fromDoc(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		page.Items = append(page.Items, t)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return &page, nil
}

// TenderByID возвращает тендер по идентификатору или storage.ErrNotFound.
func (m *Mongo) TenderByID(ctx context.Context, id uuid.UUID) (*models.Tender, error) {
	const op = "storage.mongo.TenderByID"

	var doc tenderDoc
	if err := m.tenders.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	t, err := fromDoc(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &t, nil
}

// Filters возвращает отсортированные различные значения категорий и регионов.
func (m *Mongo) Filters(ctx context.Context) (models.Filters, error) {
	const op = "storage.mongo.Filters"

	categories, err := m.distinct(ctx, "category")
	if err != nil {
		return models.Filters{}, fmt.Errorf("%s: %w", op, err)
	}

	regions, err := m.distinct(ctx, "region")
	if err != nil {
		return models.Filters{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Filters{Categories: categories, Regions: regions}, nil
}

func (m *Mongo) distinct(ctx context.Context, field string) ([]string, error) {
	raw, err := m.tenders.Distinct(ctx, field, bson.D{{Key: field, Value: bson.D{{Key: "$nin", Value: bson.A{nil, ""}}}}})
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	sort.Strings(values)

	return values, nil
}
