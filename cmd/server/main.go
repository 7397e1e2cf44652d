package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/patrickwarner/planforge/internal/advice"
	"github.com/patrickwarner/planforge/internal/allocation"
	"github.com/patrickwarner/planforge/internal/analytics"
	"github.com/patrickwarner/planforge/internal/api"
	"github.com/patrickwarner/planforge/internal/config"
	"github.com/patrickwarner/planforge/internal/middleware"
	"github.com/patrickwarner/planforge/internal/observability"
	"github.com/patrickwarner/planforge/internal/planstore"
)

func main() {
	cfg := config.Load()

	logger, err := observability.InitLogger(cfg.ServiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
		}
	}()

	if err := run(logger, cfg); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(ctx, logger, cfg.ServiceName, cfg.OTLPEndpoint, cfg.TracingSampleRate)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer shutdown()
	}

	pg, err := planstore.InitPostgres(cfg.PostgresDSN, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime, cfg.DBConnMaxIdleTime)
	if err != nil {
		return fmt.Errorf("failed to connect postgres: %w", err)
	}
	defer pg.Close()

	metricsRegistry := observability.NewPrometheusRegistry()

	var store planstore.Store = pg
	if cfg.PlanCacheEnabled {
		cached, err := planstore.InitRedisCache(pg, cfg.RedisAddr, cfg.PlanCacheTTL, logger, metricsRegistry)
		if err != nil {
			return fmt.Errorf("failed to connect redis: %w", err)
		}
		defer cached.Close()
		store = cached
	}

	var analyticsSvc analytics.Service = &analytics.Mock{}
	if cfg.AnalyticsEnabled {
		ch, err := analytics.InitClickHouse(cfg.ClickHouseDSN, metricsRegistry)
		if err != nil {
			return fmt.Errorf("failed to connect clickhouse: %w", err)
		}
		defer ch.Close()
		analyticsSvc = ch
	}

	engine := allocation.NewEngine(store, logger)
	srvDeps := api.NewServer(logger, store, engine, analyticsSvc, advice.TemplateGenerator{}, metricsRegistry, cfg)

	r := srvDeps.Routes()
	r.Use(middleware.WithTraceLogger(logger))

	var handler http.Handler = r
	if cfg.TracingEnabled {
		handler = otelhttp.NewHandler(r, "planforge")
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("Plan server running", zap.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.WriteTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
