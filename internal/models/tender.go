// models содержит доменные сущности tender-сервиса.
// Эти типы используются слоями конвейера загрузки, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category - категория тендера из фиксированного перечня.
type Category string

const (
	CategoryIT             Category = "IT & Digitalisierung"
	CategoryConstruction   Category = "Bauarbeiten"
	CategoryServices       Category = "Dienstleistungen"
	CategorySupplies       Category = "Lieferungen"
	CategoryPlanning       Category = "Planung & Beratung"
	CategoryInfrastructure Category = "Infrastruktur"
	CategoryFacility       Category = "Facility Management"
)

// Categories - полный перечень категорий в каноническом порядке.
var Categories = []Category{
	CategoryIT,
	CategoryConstruction,
	CategoryServices,
	CategorySupplies,
	CategoryPlanning,
	CategoryInfrastructure,
	CategoryFacility,
}

// Valid сообщает, входит ли категория в перечень.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}

// categorySlugs - URL-представления категорий для фильтров выдачи.
var categorySlugs = map[string]Category{
	"it":                  CategoryIT,
	"it_digitalisierung":  CategoryIT,
	"bauarbeiten":         CategoryConstruction,
	"dienstleistungen":    CategoryServices,
	"lieferungen":         CategorySupplies,
	"planung_beratung":    CategoryPlanning,
	"infrastruktur":       CategoryInfrastructure,
	"facility_management": CategoryFacility,
}

// ParseCategory принимает slug или отображаемое имя категории.
func ParseCategory(s string) (Category, bool) {
	if c, ok := categorySlugs[s]; ok {
		return c, true
	}
	if c := Category(s); c.Valid() {
		return c, true
	}

	return "", false
}

// Status - жизненный цикл тендера. Конвейер создаёт записи только в StatusNew,
// переходы в active/closed выполняют внешние потребители.
type Status string

const (
	StatusNew    Status = "new"
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Valid сообщает, является ли статус известным.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusActive, StatusClosed:
		return true
	}

	return false
}

// FeedItem - «сырой» элемент RSS-ленты до извлечения полей.
// Поля могут быть пустыми строками.
type FeedItem struct {
	Title       string
	Description string
	PubDate     string
	Link        string
}

// Tender - доменная сущность тендера.
//
// Особенности:
//   - TenderURL - канонический URL и ключ уникальности;
//   - Category/Region/EstimatedValue - nil, если эвристика ничего не нашла;
//   - временные метки хранятся в UTC.
type Tender struct {
	// ID - идентификатор записи (UUIDv4), присваивается при вставке.
	ID uuid.UUID
	// Title - заголовок, может быть пустым.
	Title string
	// Description - очищенный от разметки текст.
	Description string
	// PublicationDate - дата публикации в ленте (или время загрузки).
	PublicationDate time.Time
	// Deadline - срок подачи предложений.
	Deadline       time.Time
	Category       *Category
	Region         *string
	EstimatedValue *float64
	// TenderURL - канонический URL тендера.
	TenderURL string
	// Source/SourceURL - происхождение записи.
	Source    string
	SourceURL string
	Status    Status
	// IsBookmarked - закладка, управляется внешними потребителями.
	IsBookmarked bool
	// CreatedAt - время вставки записи (UTC).
	CreatedAt time.Time
}

// SortField - допустимые поля сортировки для выдачи.
type SortField string

const (
	SortByPublicationDate SortField = "publicationDate"
	SortByDeadline        SortField = "deadline"
	SortByEstimatedValue  SortField = "estimatedValue"
)

// Valid сообщает, входит ли поле в allow-list сортировки.
func (f SortField) Valid() bool {
	switch f {
	case SortByPublicationDate, SortByDeadline, SortByEstimatedValue:
		return true
	}

	return false
}

// SortOrder - направление сортировки.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Valid сообщает, является ли направление известным.
func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

// ListOptions - параметры выборки тендеров.
//
// Особенности:
//   - пустые строковые фильтры не применяются;
//   - Page начинается с 1;
//   - при Limit == 0 применяется серверный default (config.LimitsConfig.Default).
type ListOptions struct {
	Search    string
	Category  string
	Region    string
	Status    string
	SortBy    SortField
	SortOrder SortOrder
	Page      int32
	Limit     int32
}

// Offset возвращает смещение первой записи страницы.
func (o ListOptions) Offset() int64 {
	if o.Page <= 1 {
		return 0
	}

	return int64(o.Page-1) * int64(o.Limit)
}

// Filters - множества доступных значений для фильтров UI.
type Filters struct {
	Categories []string
	Regions    []string
}

// Page - страница результатов вместе с общим количеством.
type Page struct {
	Items   []Tender
	Total   int64
	Page    int32
	Limit   int32
	Filters Filters
}

// TotalPages возвращает количество страниц при текущем Limit.
func (p Page) TotalPages() int64 {
	if p.Limit <= 0 {
		return 0
	}

	return (p.Total + int64(p.Limit) - 1) / int64(p.Limit)
}
