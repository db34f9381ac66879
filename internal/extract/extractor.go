// extract превращает элемент RSS-ленты в запись тендера.
//
// Каждое поле извлекается отдельной чистой функцией с явным упорядоченным
// списком шаблонов: порядок шаблонов определяет, какое совпадение побеждает.
package extract

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pribylovaa/go-tender-aggregator/internal/models"
)

// ErrExtraction - элемент ленты не удалось превратить в запись тендера.
var ErrExtraction = errors.New("extraction failed")

// defaultDeadline - срок по умолчанию, если в описании нет метки.
const defaultDeadline = 30 * 24 * time.Hour

// Options - параметры извлечения.
type Options struct {
	// Location - часовой пояс дат в описаниях; nil -> UTC.
	Location *time.Location
	// DefaultDeadline - срок от момента загрузки; 0 -> 30 дней.
	DefaultDeadline time.Duration
}

// Extractor собирает models.Tender из models.FeedItem.
// Поля Source/SourceURL/Status заполняет вызывающий код.
type Extractor struct {
	loc             *time.Location
	defaultDeadline time.Duration
}

// New создает Extractor.
func New(opts Options) *Extractor {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.DefaultDeadline <= 0 {
		opts.DefaultDeadline = defaultDeadline
	}

	return &Extractor{loc: opts.Location, defaultDeadline: opts.DefaultDeadline}
}

// Extract строит кандидата в запись тендера.
//
// Обязательное поле - ссылка: пустая или не абсолютная http(s) ссылка даёт
// ErrExtraction. Остальные поля либо имеют значение по умолчанию
// (PublicationDate = now, Deadline = now + DefaultDeadline), либо отсутствуют.
// Все временные метки возвращаются в UTC.
func (e *Extractor) Extract(item models.FeedItem, now time.Time) (models.Tender, error) {
	const op = "extract.Extract"

	link := CanonicalURL(item.Link)
	if link == "" {
		return models.Tender{}, fmt.Errorf("%s: %w: empty link", op, ErrExtraction)
	}
	if !validTenderURL(link) {
		return models.Tender{}, fmt.Errorf("%s: %w: invalid link %q", op, ErrExtraction, link)
	}

	title := strings.TrimSpace(item.Title)
	clean := Sanitize(item.Description)

	t := models.Tender{
		Title:       title,
		Description: clean,
		TenderURL:   link,
	}

	if pub, err := parsePubDate(item.PubDate); err == nil {
		t.PublicationDate = pub
	} else {
		t.PublicationDate = now.UTC()
	}

	// Метки ищутся в исходном описании: между меткой и значением бывает разметка.
	if d, ok := Deadline(item.Description, e.loc); ok {
		t.Deadline = d.UTC()
	} else {
		t.Deadline = DefaultDeadline(now, e.defaultDeadline).UTC()
	}

	if loc, ok := Location(item.Description); ok {
		if r, ok := Region(loc); ok {
			t.Region = &r
		}
	}

	if c, ok := Category(title, clean); ok {
		t.Category = &c
	}

	if v, ok := EstimatedValue(clean); ok {
		t.EstimatedValue = &v
	}

	return t, nil
}

// pubDateLayouts - форматы pubDate в порядке проверки.
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 02 Jan 06 15:04:05 -0700",
	"Mon, 02 Jan 06 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
}

// parsePubDate пробует набор популярных форматов и возвращает UTC-время.
func parsePubDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}

	var lastErr error
	for _, l := range pubDateLayouts {
		t, err := time.Parse(l, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}
