// service содержит бизнес-логику tender-сервиса: конвейер загрузки
// тендеров из RSS-ленты и сценарии выдачи для внешних потребителей.
package service

import (
	"context"
	"time"

	"github.com/pribylovaa/go-tender-aggregator/internal/config"
	"github.com/pribylovaa/go-tender-aggregator/internal/extract"
	"github.com/pribylovaa/go-tender-aggregator/internal/feed"
	"github.com/pribylovaa/go-tender-aggregator/internal/models"
	"github.com/pribylovaa/go-tender-aggregator/internal/storage"
)

// Fetcher загружает «сырую» ленту. Повторы не выполняются.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*feed.Response, error)
}

// ParseFunc разбирает ленту в упорядоченный список элементов.
type ParseFunc func(raw []byte) ([]models.FeedItem, error)

// Extractor строит кандидата в запись тендера из одного элемента ленты.
type Extractor interface {
	Extract(item models.FeedItem, now time.Time) (models.Tender, error)
}

// Archiver сохраняет снимок ленты прогона. Ошибка архивации не прерывает прогон.
type Archiver interface {
	PutFeed(ctx context.Context, runID string, at time.Time, body []byte, contentType string) (string, error)
}

// Recorder принимает итоги прогонов и элементов для метрик.
type Recorder interface {
	RunFinished(state string, duration time.Duration, written, skipped, failed int)
	ItemProcessed(state string)
	RunSkipped(reason string)
}

// Service - описывает бизнес-логику tender-service.
type Service struct {
	storage   storage.Storage
	cfg       config.Config
	fetcher   Fetcher
	parse     ParseFunc
	extractor Extractor
	archive   Archiver
	metrics   Recorder
	now       func() time.Time
}

// Option настраивает Service.
type Option func(*Service)

// WithFetcher подменяет загрузчик ленты.
func WithFetcher(f Fetcher) Option { return func(s *Service) { s.fetcher = f } }

// WithParser подменяет разбор ленты.
func WithParser(p ParseFunc) Option { return func(s *Service) { s.parse = p } }

// WithExtractor подменяет извлечение полей.
func WithExtractor(e Extractor) Option { return func(s *Service) { s.extractor = e } }

// WithArchive включает архив снимков ленты.
func WithArchive(a Archiver) Option { return func(s *Service) { s.archive = a } }

// WithMetrics включает запись метрик.
func WithMetrics(r Recorder) Option { return func(s *Service) { s.metrics = r } }

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// New создает новый экземпляр Service.
// По умолчанию используются feed.Fetcher, feed.Parse и extract.Extractor,
// настроенные из cfg; архив и метрики отключены.
func New(st storage.Storage, cfg config.Config, opts ...Option) *Service {
	s := &Service{
		storage: st,
		cfg:     cfg,
		parse:   feed.Parse,
		metrics: nopRecorder{},
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.fetcher == nil {
		s.fetcher = feed.NewFetcher(nil, feed.FetcherOptions{
			UserAgent:      cfg.Feed.UserAgent,
			Accept:         cfg.Feed.Accept,
			AcceptLanguage: cfg.Feed.AcceptLanguage,
			Timeout:        cfg.Feed.Timeout,
			MaxRedirects:   cfg.Feed.MaxRedirects,
			MaxBodyBytes:   cfg.Feed.MaxBodyBytes,
		})
	}

	if s.extractor == nil {
		// Зона проверена в config.validate; при пустой конфигурации - UTC.
		loc, err := cfg.Extract.Location()
		if err != nil {
			loc = time.UTC
		}
		s.extractor = extract.New(extract.Options{
			Location:        loc,
			DefaultDeadline: cfg.Extract.DefaultDeadline,
		})
	}

	return s
}

type nopRecorder struct{}

func (nopRecorder) RunFinished(string, time.Duration, int, int, int) {}
func (nopRecorder) ItemProcessed(string)                             {}
func (nopRecorder) RunSkipped(string)                                {}
