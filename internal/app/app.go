// app собирает зависимости, общие для бинарников tender-service и tender-ingest.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pribylovaa/go-tender-aggregator/internal/archive"
	"github.com/pribylovaa/go-tender-aggregator/internal/config"
	"github.com/pribylovaa/go-tender-aggregator/internal/lock"
	"github.com/pribylovaa/go-tender-aggregator/internal/service"
	"github.com/pribylovaa/go-tender-aggregator/internal/storage"
	"github.com/pribylovaa/go-tender-aggregator/internal/storage/mongo"
	"github.com/pribylovaa/go-tender-aggregator/internal/storage/postgres"
)

// Константы для определения окружения.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// connectTimeout - дедлайн на подключение к внешним зависимостям на старте.
const connectTimeout = 10 * time.Second

// SetupLogger настраивает slog по окружению с выводом в stdout.
func SetupLogger(env string) *slog.Logger {
	return NewLogger(os.Stdout, env)
}

// NewLogger: local - текст/debug, dev - JSON/debug, prod - JSON/info.
func NewLogger(w io.Writer, env string) *slog.Logger {
	switch env {
	case EnvDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case EnvProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// OpenStorage подключает хранилище по cfg.Driver.
func OpenStorage(ctx context.Context, cfg config.DBConfig) (storage.Storage, error) {
	const op = "app.OpenStorage"

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.Driver {
	case config.DriverPostgres, "":
		st, err := postgres.New(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return st, nil
	case config.DriverMongo:
		st, err := mongo.New(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("%s: unknown driver %q", op, cfg.Driver)
	}
}

// OpenLocker подключает run-lock. Пустой URL -> nil, nil (блокировка отключена).
func OpenLocker(cfg config.RedisConfig) (*lock.RedisLocker, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	return lock.New(cfg.URL, cfg.LockKey, cfg.LockTTL)
}

// ArchiveOption подключает архив лент. Пустой Endpoint -> опция без эффекта.
func ArchiveOption(ctx context.Context, cfg config.ArchiveConfig) (service.Option, error) {
	if cfg.Endpoint == "" {
		return func(*service.Service) {}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	a, err := archive.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return service.WithArchive(a), nil
}
