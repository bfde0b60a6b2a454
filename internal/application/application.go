package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/eugenenazirov/package-shark/internal/config"
	"github.com/eugenenazirov/package-shark/internal/fetch"
	"github.com/eugenenazirov/package-shark/internal/metrics"
	"github.com/eugenenazirov/package-shark/internal/notify"
	"github.com/eugenenazirov/package-shark/internal/packs"
	"github.com/eugenenazirov/package-shark/internal/presenter"
)

// ErrLookupFailed is returned by PrintPacks when the lookup failed.
var ErrLookupFailed = errors.New("pack lookup failed")

const (
	metricsReadHeaderTimeout = 5 * time.Second
	metricsWriteTimeout      = 10 * time.Second
	metricsIdleTimeout       = 60 * time.Second
)

// App encapsulates the client dependencies and the optional metrics server.
type App struct {
	client       *packs.HTTPClient
	orchestrator *fetch.Orchestrator
	registry     *prometheus.Registry
	logger       *zap.Logger
	server       *http.Server
}

// New initializes the client from cfg. Failed lookups are logged and then
// forwarded to sink.
func New(cfg config.Config, logger *zap.Logger, sink notify.Notifier) (*App, error) {
	client, err := packs.NewHTTPClient(cfg.BaseURL,
		packs.WithTimeout(cfg.RequestTimeout),
		packs.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		packs.WithLogger(logger.Named("packs")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pack service client: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	recorder := metrics.NewRecorder(registry)

	orchestrator := fetch.New(client,
		fetch.WithNotifier(notify.Logging(logger, sink)),
		fetch.WithMetrics(recorder),
		fetch.WithLogger(logger.Named("fetch")),
	)

	app := &App{
		client:       client,
		orchestrator: orchestrator,
		registry:     registry,
		logger:       logger,
	}
	if cfg.MetricsAddr != "" {
		app.server = NewServer(cfg.MetricsAddr, BuildMetricsHandler(registry))
	}
	return app, nil
}

// BuildMetricsHandler serves the registry on /metrics.
func BuildMetricsHandler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metrics.Handler(g))
	return mux
}

// NewServer creates the metrics HTTP server listening on addr.
func NewServer(addr string, handler http.Handler) *http.Server {
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
		WriteTimeout:      metricsWriteTimeout,
		IdleTimeout:       metricsIdleTimeout,
	}
}

// Start starts the metrics server in a goroutine when one is configured.
func (a *App) Start() error {
	if a.server == nil {
		return nil
	}
	go func() {
		a.logger.Info("metrics server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the metrics server, or nil when none is configured.
func (a *App) Server() *http.Server {
	return a.server
}

// Orchestrator returns the fetch orchestrator driving the view.
func (a *App) Orchestrator() *fetch.Orchestrator {
	return a.orchestrator
}

// PrintPacks looks up quantity and writes one line per row, largest pack first.
func (a *App) PrintPacks(ctx context.Context, quantity int, w io.Writer) error {
	a.logger.Info("looking up packs",
		zap.String("endpoint", a.client.Endpoint(quantity)),
		zap.Int("quantity", quantity),
	)

	if a.orchestrator.FetchPacks(ctx, quantity) != fetch.Applied {
		return ErrLookupFailed
	}

	for _, row := range presenter.Rows(a.orchestrator.Results()) {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", row.Title(), row.Count()); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	return nil
}
