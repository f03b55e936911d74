package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"onboarding/internal/platform/config"
	"onboarding/internal/platform/database"
	"onboarding/internal/platform/health"
	"onboarding/internal/platform/logger"
	"onboarding/internal/registration/metrics"
	"onboarding/internal/registration/service"
	"onboarding/internal/registration/store/customer"
	"onboarding/internal/registration/store/license"
	"onboarding/internal/registration/store/servicerule"
	"onboarding/internal/registration/store/subscription"
	"onboarding/internal/registration/validation"
	"onboarding/pkg/platform/middleware/request"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		slog.Error("onboarding server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.LogLevel)
	slog.SetDefault(log)

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	log.Info("initializing onboarding",
		"addr", cfg.Server.Addr,
		"environment", cfg.Server.Environment,
		"timezone", location.String(),
		"connect_attempts", cfg.Database.ConnectAttempts,
		"strict_phone", cfg.Validation.StrictPhone,
		"function_key", cfg.Auth.FunctionKeyHash != "",
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.New(database.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close() //nolint:errcheck // process is exiting

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool.DB()); err != nil {
			return err
		}
		log.Info("database migrations applied")
	}

	var (
		registry       *prometheus.Registry
		regMetrics     *metrics.Metrics
		requestMetrics *request.Metrics
	)
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewDBStatsCollector(pool.DB(), "onboarding"),
		)
		regMetrics = metrics.New(registry)
		requestMetrics = request.NewMetrics(registry)
	}

	svcOpts := []service.Option{
		service.WithLogger(log),
		service.WithLocation(location),
		service.WithConnectRetry(cfg.Database.ConnectAttempts, cfg.Database.ConnectBackoff),
		service.WithTxTimeout(cfg.Database.TxTimeout),
	}
	if regMetrics != nil {
		svcOpts = append(svcOpts, service.WithMetrics(regMetrics))
	}
	if cfg.Validation.StrictPhone {
		svcOpts = append(svcOpts, service.WithValidationOptions(validation.WithStrictPhone()))
	}

	db := pool.DB()
	registration := service.New(poolConnector{pool: pool}, service.Stores{
		Licenses:      license.NewPostgres(db),
		Customers:     customer.NewPostgres(db),
		Subscriptions: subscription.NewPostgres(db),
		ServiceRules:  servicerule.NewPostgres(db),
	}, svcOpts...)

	healthHandler := health.New(cfg.Server.Environment)
	healthHandler.RegisterCheck("database", pool.Health)

	deps := routerDeps{
		logger:          log,
		registration:    registration,
		health:          healthHandler,
		location:        location,
		functionKeyHash: cfg.Auth.FunctionKeyHash,
		requestMetrics:  requestMetrics,
	}
	if registry != nil {
		deps.gatherer = registry
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
