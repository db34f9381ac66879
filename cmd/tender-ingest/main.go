// tender-ingest выполняет один прогон конвейера и печатает итог в stdout как JSON.
// Код выхода: 0 - прогон завершён (done), 1 - прерван или не удалось стартовать,
// 2 - прогон пропущен, потому что блокировку держит другой экземпляр.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pribylovaa/go-tender-aggregator/internal/app"
	"github.com/pribylovaa/go-tender-aggregator/internal/config"
	"github.com/pribylovaa/go-tender-aggregator/internal/pkg/log"
	"github.com/pribylovaa/go-tender-aggregator/internal/pkg/redact"
	"github.com/pribylovaa/go-tender-aggregator/internal/service"
)

const (
	exitDone    = 0
	exitAborted = 1
	exitLocked  = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("config_load_failed", slog.String("err", err.Error()))
		return exitAborted
	}

	// Логи в stderr: stdout занят итогом прогона.
	logger := app.NewLogger(os.Stderr, cfg.Env).With(slog.String("cmd", "tender-ingest"))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = log.Into(ctx, logger)

	store, err := app.OpenStorage(ctx, cfg.DB)
	if err != nil {
		logger.Error("storage_connect_failed",
			slog.String("db_url", redact.URL(cfg.DB.URL)),
			slog.String("err", err.Error()),
		)
		return exitAborted
	}
	defer store.Close()

	archiveOpt, err := app.ArchiveOption(ctx, cfg.Archive)
	if err != nil {
		logger.Error("archive_connect_failed", slog.String("err", err.Error()))
		return exitAborted
	}

	locker, err := app.OpenLocker(cfg.Redis)
	if err != nil {
		logger.Error("redis_connect_failed", slog.String("err", err.Error()))
		return exitAborted
	}
	if locker != nil {
		defer locker.Close()

		unlock, acquired, err := locker.TryLock(ctx)
		if err != nil {
			logger.Error("run_lock_failed", slog.String("err", err.Error()))
			return exitAborted
		}
		if !acquired {
			logger.Warn("run_lock_held")
			return exitLocked
		}
		defer func() {
			uctx, ucancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer ucancel()
			if err := unlock(uctx); err != nil {
				logger.Warn("run_unlock_failed", slog.String("err", err.Error()))
			}
		}()
	}

	svc := service.New(store, *cfg, archiveOpt)
	sum := svc.RunOnce(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sum); err != nil {
		logger.Error("summary_encode_failed", slog.String("err", err.Error()))
	}

	if sum.Aborted() {
		return exitAborted
	}
	return exitDone
}
