// Package http exposes the item, settings and forecast services as a JSON API.
package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cashflow/internal/log"
	"cashflow/internal/metrics"
	"cashflow/internal/middleware/ratelimit"
	"cashflow/internal/middleware/security"
	"cashflow/internal/middleware/trace"
	"cashflow/internal/services"
)

// ExportRequester queues a forecast export for the worker.
type ExportRequester interface {
	PublishForecastRequested(ctx context.Context, startDate string, numWeeks int, initialBalance float64) error
}

// Options carries the optional collaborators and middleware settings.
type Options struct {
	Logger         *log.Logger
	Metrics        *metrics.Recorder
	Exports        ExportRequester
	Ready          func(ctx context.Context) error
	RateLimit      ratelimit.Config
	Headers        security.HeadersConfig
	TrustedProxies []string
	// Today overrides the clock used for GET /api/forecast defaults.
	Today func() time.Time
}

type Server struct {
	http.Server
	items     *services.ItemService
	forecasts *services.ForecastService
	settings  *services.SettingsService
	exports   ExportRequester
	ready     func(ctx context.Context) error
	metrics   *metrics.Recorder
	limiter   *ratelimit.Limiter
	detector  *security.Detector
	logger    *log.Logger
	today     func() time.Time
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, items *services.ItemService, forecasts *services.ForecastService, settings *services.SettingsService, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.RateLimit.Requests <= 0 || opts.RateLimit.Window <= 0 {
		opts.RateLimit = ratelimit.DefaultConfig()
	}
	if opts.Headers == (security.HeadersConfig{}) {
		opts.Headers = security.DefaultHeadersConfig()
	}
	if opts.Today == nil {
		opts.Today = time.Now
	}

	s := &Server{
		items:     items,
		forecasts: forecasts,
		settings:  settings,
		exports:   opts.Exports,
		ready:     opts.Ready,
		metrics:   opts.Metrics,
		limiter:   ratelimit.NewLimiter(opts.RateLimit),
		detector:  security.NewDetector(),
		logger:    opts.Logger.WithComponent(log.ComponentHTTP),
		today:     opts.Today,
	}
	for _, cidr := range opts.TrustedProxies {
		if err := s.detector.AddTrustedProxy(cidr); err != nil {
			s.logger.Warn("Ignoring trusted proxy", "cidr", cidr, log.FieldError, err.Error())
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses/{id}", s.handleGetExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/revenue", s.handleListRevenue)
	mux.HandleFunc("POST /api/revenue", s.handleCreateRevenue)
	mux.HandleFunc("GET /api/revenue/{id}", s.handleGetRevenue)
	mux.HandleFunc("PUT /api/revenue/{id}", s.handleUpdateRevenue)
	mux.HandleFunc("DELETE /api/revenue/{id}", s.handleDeleteRevenue)

	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", s.handleUpdateSettings)

	mux.HandleFunc("GET /api/forecast", s.handleForecastQuery)
	mux.HandleFunc("POST /api/forecast/calculate", s.handleCalculateForecast)
	mux.HandleFunc("POST /api/forecast/export", s.handleExportForecast)

	var handler http.Handler = mux
	handler = s.limiter.Middleware(s.detector.ExtractClientIP, func(w http.ResponseWriter, _ *http.Request) {
		TooManyRequestsError("rate limit exceeded").Write(w)
	})(handler)
	handler = s.detector.Middleware(handler)
	handler = security.Headers(opts.Headers)(handler)
	handler = log.Middleware(s.logger, trace.FromRequest)(handler)
	handler = trace.NewMiddleware(s.detector.ExtractClientIP, s.observe(mux)).Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// observe records request metrics labelled by the matched route pattern.
func (s *Server) observe(mux *http.ServeMux) trace.Observer {
	if s.metrics == nil {
		return nil
	}
	return func(r *http.Request, status int, elapsed time.Duration) {
		_, route := mux.Handler(r)
		if route == "" {
			route = "unmatched"
		}
		s.metrics.RecordHTTP(route, strconv.Itoa(status), elapsed.Seconds())
	}
}

// Shutdown stops accepting requests and releases the rate limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Shutting down HTTP server", log.FieldOperation, log.OpShutdown)
	err := s.Server.Shutdown(ctx)
	s.limiter.Stop()
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.ready(ctx); err != nil {
			s.logger.WarnContext(ctx, "Readiness check failed", log.FieldError, err.Error())
			ErrorResponse(http.StatusServiceUnavailable, "not ready").Write(w)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
