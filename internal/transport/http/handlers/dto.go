package handlers

import (
	"time"

	"github.com/pribylovaa/go-tender-aggregator/internal/models"
)

// TenderJSON - представление тендера в ответах API (camelCase, даты RFC 3339 UTC).
type TenderJSON struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	PublicationDate time.Time `json:"publicationDate"`
	Deadline        time.Time `json:"deadline"`
	Source          string    `json:"source"`
	SourceURL       string    `json:"sourceUrl"`
	TenderURL       string    `json:"tenderUrl"`
	Category        *string   `json:"category,omitempty"`
	Region          *string   `json:"region,omitempty"`
	EstimatedValue  *float64  `json:"estimatedValue,omitempty"`
	Status          string    `json:"status"`
	IsBookmarked    bool      `json:"isBookmarked"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FiltersJSON - доступные значения фильтров.
type FiltersJSON struct {
	Categories []string `json:"categories"`
	Regions    []string `json:"regions"`
}

// TenderListJSON - ответ GET /tenders.
type TenderListJSON struct {
	Tenders    []TenderJSON `json:"tenders"`
	Total      int64        `json:"total"`
	Page       int32        `json:"page"`
	TotalPages int64        `json:"totalPages"`
	Limit      int32        `json:"limit"`
	Filters    FiltersJSON  `json:"filters"`
}

func tenderToJSON(t models.Tender) TenderJSON {
	out := TenderJSON{
		ID:              t.ID.String(),
		Title:           t.Title,
		Description:     t.Description,
		PublicationDate: t.PublicationDate.UTC(),
		Deadline:        t.Deadline.UTC(),
		Source:          t.Source,
		SourceURL:       t.SourceURL,
		TenderURL:       t.TenderURL,
		Region:          t.Region,
		EstimatedValue:  t.EstimatedValue,
		Status:          string(t.Status),
		IsBookmarked:    t.IsBookmarked,
		CreatedAt:       t.CreatedAt.UTC(),
	}
	if t.Category != nil {
		c := string(*t.Category)
		out.Category = &c
	}

	return out
}

func pageToJSON(p *models.Page) TenderListJSON {
	out := TenderListJSON{
		Tenders:    make([]TenderJSON, 0, len(p.Items)),
		Total:      p.Total,
		Page:       p.Page,
		TotalPages: p.TotalPages(),
		Limit:      p.Limit,
		Filters: FiltersJSON{
			Categories: nonNil(p.Filters.Categories),
			Regions:    nonNil(p.Filters.Regions),
		},
	}
	for _, t := range p.Items {
		out.Tenders = append(out.Tenders, tenderToJSON(t))
	}

	return out
}

// nonNil - пустые списки сериализуются как [], а не null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
