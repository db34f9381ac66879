package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	health "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/pribylovaa/go-tender-aggregator/internal/app"
	"github.com/pribylovaa/go-tender-aggregator/internal/config"
	"github.com/pribylovaa/go-tender-aggregator/internal/metrics"
	"github.com/pribylovaa/go-tender-aggregator/internal/pkg/log"
	"github.com/pribylovaa/go-tender-aggregator/internal/pkg/redact"
	"github.com/pribylovaa/go-tender-aggregator/internal/service"
	tenderhttp "github.com/pribylovaa/go-tender-aggregator/internal/transport/http"
	"github.com/pribylovaa/go-tender-aggregator/pkg/interceptors"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	logger := app.SetupLogger(cfg.Env)
	slog.SetDefault(logger)
	logger.Info("starting tender-service", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	store, err := app.OpenStorage(rootCtx, cfg.DB)
	if err != nil {
		logger.Error("storage_connect_failed",
			slog.String("driver", cfg.DB.Driver),
			slog.String("err", err.Error()),
		)
		rootCancel()
		os.Exit(1)
	}
	logger.Info("storage_connected",
		slog.String("driver", cfg.DB.Driver),
		slog.String("db_url", redact.URL(cfg.DB.URL)),
	)

	opts := []service.Option{
		service.WithMetrics(metrics.NewIngest(prometheus.DefaultRegisterer)),
	}

	archiveOpt, err := app.ArchiveOption(rootCtx, cfg.Archive)
	if err != nil {
		logger.Error("archive_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		store.Close()
		os.Exit(1)
	}
	opts = append(opts, archiveOpt)

	// Пустой redis.url оставляет runLocker == nil: прогоны сериализуются только внутри процесса.
	var runLocker service.RunLocker
	locker, err := app.OpenLocker(cfg.Redis)
	if err != nil {
		logger.Error("redis_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		store.Close()
		os.Exit(1)
	}
	if locker != nil {
		logger.Info("redis_connected", slog.String("redis_url", redact.URL(cfg.Redis.URL)))
		runLocker = locker
		defer func() {
			if cerr := locker.Close(); cerr != nil {
				logger.Warn("redis_close_failed", slog.String("err", cerr.Error()))
			}
		}()
	}

	svc := service.New(store, *cfg, opts...)
	logger.Info("service_initialized")

	ingestDone := make(chan struct{})
	go func() {
		defer close(ingestDone)
		if err := svc.StartIngest(log.Into(rootCtx, logger), runLocker); err != nil {
			logger.Error("ingest_start_failed", slog.String("err", err.Error()))
		}
	}()

	var ready int32 // 0 - not ready; 1 - ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/", tenderhttp.NewRouter(svc, tenderhttp.Options{
		Logger:   logger,
		Timeout:  cfg.Timeouts.Service,
		BasePath: "/api",
	}))

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		logger.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		rootCancel()
		store.Close()
		os.Exit(1)
	}
	logger.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 2)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
	}()

	grpc_prometheus.EnableHandlingTimeHistogram()

	// gRPC-сервер: health-check и рефлексия.
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			interceptors.Recover(logger),
			interceptors.UnaryLoggingInterceptor(logger),
			interceptors.WithTimeout(cfg.Timeouts.Service),
			grpc_prometheus.UnaryServerInterceptor,
		),
		grpc.ChainStreamInterceptor(
			interceptors.RecoverStream(logger),
			interceptors.StreamLoggingInterceptor(logger),
			grpc_prometheus.StreamServerInterceptor,
		),
	)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)

	if cfg.Env == app.EnvLocal || cfg.Env == app.EnvDev {
		reflection.Register(grpcServer)
	}

	grpcAddr := cfg.GRPC.Addr()
	grpcLn, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logger.Error("grpc_listen_failed",
			slog.String("addr", grpcAddr),
			slog.String("err", err.Error()),
		)
		_ = httpSrv.Close()
		rootCancel()
		store.Close()
		os.Exit(1)
	}
	logger.Info("grpc_listen_start", slog.String("addr", grpcAddr))

	grpc_prometheus.Register(grpcServer)

	go func() {
		if err := grpcServer.Serve(grpcLn); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serveErrCh <- err
		}
	}()

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	atomic.StoreInt32(&ready, 1)
	logger.Info("service_ready")

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown_requested")
	case err := <-serveErrCh:
		logger.Error("serve_failed", slog.String("err", err.Error()))
	}

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	atomic.StoreInt32(&ready, 0)

	// Останавливает планировщик, если выход по ошибке сервера.
	rootCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		logger.Info("http_stopped")
	}

	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("grpc_stopped")
	case <-shutdownCtx.Done():
		logger.Warn("grpc_force_stop")
		grpcServer.Stop()
	}

	// Текущий прогон прерывается по отмене rootCtx между элементами.
	select {
	case <-ingestDone:
		logger.Info("ingest_stopped")
	case <-shutdownCtx.Done():
		logger.Warn("ingest_stop_timeout")
	}

	store.Close()
	logger.Info("service_stopped")
}
