package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/go-resource-market/internal/config"
	"github.com/pribylovaa/go-resource-market/internal/grpcserver"
	apphttp "github.com/pribylovaa/go-resource-market/internal/http"
	"github.com/pribylovaa/go-resource-market/internal/http/middleware"
	"github.com/pribylovaa/go-resource-market/internal/service"
	"github.com/pribylovaa/go-resource-market/internal/storage"
	"github.com/pribylovaa/go-resource-market/internal/storage/memory"
	"github.com/pribylovaa/go-resource-market/internal/storage/minio"
	"github.com/pribylovaa/go-resource-market/internal/storage/postgres"
	"github.com/pribylovaa/go-resource-market/internal/storage/redis"
	"github.com/pribylovaa/go-resource-market/internal/token"
	"github.com/pribylovaa/go-resource-market/migrations"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const healthInterval = 15 * time.Second

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting application", "env", cfg.Env)

	// Корневой контекст по сигналам.
	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	if err := run(rootCtx, cfg, log); err != nil {
		log.Error("service_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}

	log.Info("service_stopped")
}

// deps — открытые хранилища и то, что нужно для их обслуживания.
type deps struct {
	store    storage.Storage
	registry storage.RefreshRegistry
	images   storage.ImageStorage
	sweeper  expiredTokenSweeper
	pingers  []grpcserver.Pinger
	closers  []func()
}

func (d *deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	codec, err := token.New(token.Config{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.Auth.AccessTokenTTL,
		RefreshTTL:    cfg.Auth.RefreshTokenTTL,
		Issuer:        cfg.Auth.Issuer,
	})
	if err != nil {
		return err
	}

	d, err := openDeps(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer d.close()

	svc := service.New(service.Storages{
		Users:     d.store,
		Resources: d.store,
		Lookups:   d.store,
		Registry:  d.registry,
		Images:    d.images,
	}, codec, cfg.Images)
	log.Info("service_initialized")

	var ready atomic.Bool

	httpSrv := &http.Server{
		Addr: cfg.HTTP.Addr(),
		Handler: newHTTPHandler(&ready, apphttp.NewRouter(svc, apphttp.Options{
			Logger:  log,
			Timeout: cfg.Timeouts.Service,
			Metrics: middleware.NewHTTPMetrics(prometheus.DefaultRegisterer),
		})),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcSrv := grpcserver.New(grpcserver.Options{
		Logger:     log,
		Timeout:    cfg.Timeouts.Service,
		Reflection: cfg.Env == envLocal || cfg.Env == envDev,
		Registerer: prometheus.DefaultRegisterer,
	})

	grpcAddr := cfg.GRPC.Addr()
	listener, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("grpc listen %s: %w", grpcAddr, err)
	}

	serveErrCh := make(chan error, 2)

	go func() {
		log.Info("http_listen_start", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- fmt.Errorf("http serve: %w", err)
		}
	}()

	go func() {
		log.Info("grpc_listen_start", "addr", grpcAddr)
		if err := grpcSrv.Serve(listener); err != nil {
			serveErrCh <- fmt.Errorf("grpc serve: %w", err)
		}
	}()

	monitorCtx, monitorCancel := context.WithCancel(ctx)
	defer monitorCancel()
	go grpcSrv.Monitor(monitorCtx, healthInterval, d.pingers...)

	if cfg.Auth.RefreshTokenTTL > 0 {
		startRefreshJanitor(ctx, d.sweeper, log, cfg.Registry.SweepInterval)
	}

	ready.Store(true)

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown_requested")
	case runErr = <-serveErrCh:
	}

	ready.Store(false)
	monitorCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Timeouts.Shutdown)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_failed", slog.String("err", err.Error()))
	}
	grpcSrv.Shutdown(shutdownCtx)

	return runErr
}

// openDeps открывает хранилище, реестр refresh-токенов и (если настроено)
// хранилище изображений.
func openDeps(ctx context.Context, cfg *config.Config, log *slog.Logger) (_ *deps, err error) {
	d := &deps{}
	defer func() {
		if err != nil {
			d.close()
		}
	}()

	var pg *postgres.Storage

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		defer dbCancel()

		if cfg.DB.AutoMigrate {
			if err := migrations.UpDSN(dbCtx, cfg.DB.DatabaseURL); err != nil {
				return nil, err
			}
			log.Info("migrations_applied")
		}

		pg, err = postgres.New(dbCtx, cfg.DB.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Info("postgres_connected")

		d.store = pg
	default:
		mem := memory.New()
		memory.SeedDefaults(mem)
		log.Warn("memory_storage_in_use")

		d.store = mem
	}
	d.closers = append(d.closers, d.store.Close)
	d.pingers = append(d.pingers, d.store)

	switch cfg.Registry.Driver {
	case config.DriverPostgres:
		reg := pg.Registry()
		d.registry, d.sweeper = reg, reg
	case config.DriverRedis:
		reg, err := redis.New(ctx, cfg.Redis.RedisURL, cfg.Redis.Prefix)
		if err != nil {
			return nil, err
		}
		log.Info("redis_connected")

		d.registry = reg
		d.pingers = append(d.pingers, reg)
		d.closers = append(d.closers, func() { _ = reg.Close() })
	default:
		log.Warn("memory_registry_in_use")
		d.registry = memory.NewRegistry()
	}

	if cfg.S3.Enabled() {
		images, err := minio.New(ctx, cfg.S3, cfg.Images)
		if err != nil {
			return nil, err
		}
		log.Info("s3_connected", "bucket", cfg.S3.Bucket)

		d.images = images
	} else {
		log.Info("image_uploads_disabled")
	}

	return d, nil
}

// newHTTPHandler добавляет к REST-роутеру служебные эндпойнты:
// /livez, /healthz (по флагу готовности) и /metrics.
func newHTTPHandler(ready *atomic.Bool, api http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if ready.Load() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", api)

	return mux
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}
