package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-tender-aggregator/internal/pkg/log"
)

// releaseTimeout - дедлайн на снятие блокировки после прогона.
const releaseTimeout = 5 * time.Second

// RunLocker сериализует прогоны между экземплярами сервиса.
// TryLock не блокируется: acquired == false означает, что прогон
// уже выполняется в другом месте.
type RunLocker interface {
	TryLock(ctx context.Context) (unlock func(context.Context) error, acquired bool, err error)
}

// StartIngest запускает периодические прогоны с интервалом cfg.Ingest.Interval.
//
// Особенности:
//   - первый прогон выполняется сразу;
//   - внутри процесса прогоны не пересекаются: следующий тик ждёт завершения текущего;
//   - при заданном locker прогон выполняется только под блокировкой,
//     занятая или недоступная блокировка пропускает тик;
//   - останавливается по ctx.
func (s *Service) StartIngest(ctx context.Context, locker RunLocker) error {
	const op = "service.scheduler.StartIngest"

	interval := s.cfg.Ingest.Interval

	lg := log.From(ctx)
	lg.Info("ingest_start",
		slog.String("op", op),
		slog.String("feed_url", s.cfg.Feed.URL),
		slog.Duration("interval", interval),
		slog.Bool("distributed_lock", locker != nil),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.tick(ctx, locker)

	for {
		select {
		case <-ctx.Done():
			lg.Info("ingest_stop", slog.String("op", op))
			return nil
		case <-ticker.C:
			s.tick(ctx, locker)
		}
	}
}

// tick - один тик планировщика. Возвращает false, если прогон пропущен.
func (s *Service) tick(ctx context.Context, locker RunLocker) bool {
	const op = "service.scheduler.tick"

	lg := log.From(ctx)

	if locker == nil {
		s.RunOnce(ctx)
		return true
	}

	unlock, acquired, err := locker.TryLock(ctx)
	if err != nil {
		s.metrics.RunSkipped("lock_error")
		lg.Warn("ingest_lock_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return false
	}
	if !acquired {
		s.metrics.RunSkipped("lock_held")
		lg.Info("ingest_lock_held", slog.String("op", op))
		return false
	}

	defer func() {
		// Снятие блокировки не зависит от отмены ctx.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()

		if err := unlock(rctx); err != nil {
			lg.Warn("ingest_unlock_error",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		}
	}()

	s.RunOnce(ctx)
	return true
}
