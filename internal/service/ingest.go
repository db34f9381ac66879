package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-tender-aggregator/internal/models"
	"github.com/pribylovaa/go-tender-aggregator/internal/pkg/log"
)

// InsertOutcome - исход вставки записи.
type InsertOutcome int

const (
	InsertResultFailed InsertOutcome = iota
	InsertResultInserted
	InsertResultAlreadyExists
)

// InsertResult - результат вставки. Cause задан для Failed и AlreadyExists
// (для последнего это *WriteError с Benign() == true).
type InsertResult struct {
	Outcome InsertOutcome
	Cause   error
}

// RunOnce выполняет один прогон конвейера:
// Idle -> Fetching -> Parsing -> ProcessingItems -> Done | Aborted.
//
// Особенности:
//   - ошибка загрузки или разбора ленты прерывает прогон (Aborted);
//   - ошибки элемента накапливаются в Summary.Failures, прогон продолжается;
//   - элементы обрабатываются строго последовательно в порядке ленты;
//   - отмена ctx проверяется перед каждым элементом и прерывает прогон;
//   - каждое обращение к хранилищу ограничено cfg.Ingest.ItemTimeout.
func (s *Service) RunOnce(ctx context.Context) Summary {
	const op = "service.ingest.RunOnce"

	sum := Summary{
		RunID:     uuid.NewString(),
		State:     RunIdle,
		StartedAt: s.now().UTC(),
	}

	ctx, lg := log.With(ctx, slog.String("run_id", sum.RunID))
	if s.cfg.Ingest.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Ingest.RunTimeout)
		defer cancel()
	}

	lg.Info("ingest_run_start",
		slog.String("op", op),
		slog.String("feed_url", s.cfg.Feed.URL),
	)

	s.run(ctx, &sum)

	sum.FinishedAt = s.now().UTC()
	s.metrics.RunFinished(string(sum.State), sum.Duration(), sum.Written, sum.Skipped, sum.Failed)

	attrs := []any{
		slog.String("op", op),
		slog.String("state", string(sum.State)),
		slog.Int("items", sum.Items),
		slog.Int("written", sum.Written),
		slog.Int("skipped", sum.Skipped),
		slog.Int("failed", sum.Failed),
		slog.Duration("duration", sum.Duration()),
	}
	if sum.Aborted() {
		lg.Error("ingest_run_aborted", append(attrs, slog.String("reason", sum.AbortReason))...)
	} else {
		lg.Info("ingest_run_done", attrs...)
	}

	return sum
}

// run проводит прогон по состояниям, заполняя sum.
func (s *Service) run(ctx context.Context, sum *Summary) {
	const op = "service.ingest.run"

	lg := log.From(ctx)

	transition(ctx, sum, RunFetching)
	resp, err := s.fetcher.Fetch(ctx, s.cfg.Feed.URL)
	if err != nil {
		abort(ctx, sum, &FetchError{URL: s.cfg.Feed.URL, Err: err})
		return
	}

	sum.ArchiveKey = s.archiveFeed(ctx, sum, resp.Body, resp.ContentType)

	transition(ctx, sum, RunParsing)
	items, err := s.parse(resp.Body)
	if err != nil {
		abort(ctx, sum, &ParseError{Err: err})
		return
	}

	sum.Items = len(items)
	transition(ctx, sum, RunProcessingItems)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			abort(ctx, sum, fmt.Errorf("%s: cancelled before item %d: %w", op, i, err))
			return
		}

		state, stage, err := s.processItem(ctx, i, item)
		s.metrics.ItemProcessed(string(state))

		switch state {
		case ItemWritten:
			sum.Written++
		case ItemSkipped:
			sum.Skipped++
		default:
			sum.Failed++
			sum.Failures = append(sum.Failures, ItemFailure{
				Index: i,
				Title: item.Title,
				Link:  item.Link,
				Stage: stage,
				Error: err.Error(),
				Err:   err,
			})

			// Ошибка проверки дубликата логируется отдельно от «уже существует».
			event := "item_failed"
			var dupErr *DuplicateCheckError
			if errors.As(err, &dupErr) {
				event = "item_duplicate_check_failed"
			}
			lg.Warn(event,
				slog.String("op", op),
				slog.Int("item_index", i),
				slog.String("title", item.Title),
				slog.String("link", item.Link),
				slog.String("stage", string(stage)),
				slog.String("err", err.Error()),
			)
		}
	}

	transition(ctx, sum, RunDone)
}

// processItem проводит элемент через Extracting -> CheckingDuplicate ->
// Skipped | Writing -> Written | Failed. Для Failed возвращает состояние,
// в котором произошла ошибка, и саму ошибку.
func (s *Service) processItem(ctx context.Context, idx int, item models.FeedItem) (ItemState, ItemState, error) {
	const op = "service.ingest.processItem"

	lg := log.From(ctx).With(slog.Int("item_index", idx))

	now := s.now()
	tender, err := s.extractor.Extract(item, now)
	if err != nil {
		return ItemFailed, ItemExtracting, &ExtractionError{Err: err}
	}

	tender.ID = uuid.New()
	tender.Source = s.cfg.Feed.SourceName
	tender.SourceURL = s.cfg.Feed.URL
	tender.Status = models.StatusNew
	tender.CreatedAt = now.UTC()

	exists, err := s.tenderExists(ctx, tender.TenderURL)
	if err != nil {
		return ItemFailed, ItemCheckingDuplicate, &DuplicateCheckError{TenderURL: tender.TenderURL, Err: err}
	}
	if exists {
		lg.Debug("item_skipped",
			slog.String("op", op),
			slog.String("tender_url", tender.TenderURL),
		)
		return ItemSkipped, "", nil
	}

	res := s.insertTender(ctx, tender)
	switch res.Outcome {
	case InsertResultInserted:
		lg.Debug("item_written",
			slog.String("op", op),
			slog.String("tender_url", tender.TenderURL),
			slog.String("id", tender.ID.String()),
		)
		return ItemWritten, "", nil
	case InsertResultAlreadyExists:
		lg.Info("item_insert_race_duplicate",
			slog.String("op", op),
			slog.String("tender_url", tender.TenderURL),
		)
		return ItemSkipped, "", nil
	default:
		return ItemFailed, ItemWriting, res.Cause
	}
}

// tenderExists - проверка дубликата под ItemTimeout.
func (s *Service) tenderExists(ctx context.Context, tenderURL string) (bool, error) {
	ctx, cancel := s.itemContext(ctx)
	defer cancel()

	return s.storage.TenderExists(ctx, tenderURL)
}

// insertTender - одна атомарная вставка под ItemTimeout.
// Нарушение уникальности - InsertResultAlreadyExists, а не ошибка.
func (s *Service) insertTender(ctx context.Context, t models.Tender) InsertResult {
	ctx, cancel := s.itemContext(ctx)
	defer cancel()

	if err := s.storage.InsertTender(ctx, t); err != nil {
		werr := &WriteError{TenderURL: t.TenderURL, Err: err}
		if werr.Benign() {
			return InsertResult{Outcome: InsertResultAlreadyExists, Cause: werr}
		}

		return InsertResult{Outcome: InsertResultFailed, Cause: werr}
	}

	return InsertResult{Outcome: InsertResultInserted}
}

func (s *Service) itemContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Ingest.ItemTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, s.cfg.Ingest.ItemTimeout)
}

// archiveFeed сохраняет снимок ленты, если архив включён.
// Ошибки только логируются.
func (s *Service) archiveFeed(ctx context.Context, sum *Summary, body []byte, contentType string) string {
	const op = "service.ingest.archiveFeed"

	if s.archive == nil {
		return ""
	}

	key, err := s.archive.PutFeed(ctx, sum.RunID, sum.StartedAt, body, contentType)
	if err != nil {
		log.From(ctx).Warn("feed_archive_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return ""
	}

	return key
}

func transition(ctx context.Context, sum *Summary, to RunState) {
	log.From(ctx).Debug("run_state",
		slog.String("from", string(sum.State)),
		slog.String("to", string(to)),
	)
	sum.State = to
}

func abort(ctx context.Context, sum *Summary, err error) {
	transition(ctx, sum, RunAborted)
	sum.Err = err
	sum.AbortReason = err.Error()
}
