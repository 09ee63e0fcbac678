package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/tiendalab/tienda-bff/internal/api"
	"github.com/tiendalab/tienda-bff/internal/api/validation"
	"github.com/tiendalab/tienda-bff/internal/config"
	"github.com/tiendalab/tienda-bff/internal/platform/fakestore"
	"github.com/tiendalab/tienda-bff/internal/platform/metrics"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Metrics
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	// Upstream
	store *fakestore.Client

	// Handlers
	products *api.ProductHandler
	carts    *api.CartHandler
	users    *api.UserHandler
}

// newApplication creates a new application instance with all dependencies
// initialized. Collectors are registered with reg, which also backs /metrics.
func newApplication(cfg *config.Config, logger *slog.Logger, reg *prometheus.Registry) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config:   cfg,
		logger:   logger,
		registry: reg,
	}

	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("failed to register Go collector: %w", err)
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("failed to register process collector: %w", err)
	}

	var err error
	app.metrics, err = metrics.New(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	app.store, err = fakestore.NewClient(cfg.Upstream, logger, fakestore.WithMetrics(app.metrics))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upstream client: %w", err)
	}
	logger.Info("Upstream client initialized",
		"base_url", cfg.Upstream.BaseURL,
		"timeout_seconds", cfg.Upstream.TimeoutSeconds)

	v := validation.New()
	app.products = api.NewProductHandler(app.store, v)
	app.carts = api.NewCartHandler(app.store, v)
	app.users = api.NewUserHandler(app.store, v)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves the gateway until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
