package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nao1215/mseo/internal/config"
	"github.com/nao1215/mseo/internal/model"
	"github.com/nao1215/mseo/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ErrNotLoaded is returned by handlers before the first successful Load.
var ErrNotLoaded = errors.New("no site file loaded")

const (
	readHeaderTimeout = 10 * time.Second
	requestTimeout    = 30 * time.Second
)

// Server serves the artifacts of one site file.
type Server struct {
	logger    *slog.Logger
	registry  *prometheus.Registry
	metrics   *metrics
	staticDir string

	mu    sync.RWMutex
	state *snapshot
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStaticDir serves files below dir, injecting head tags into HTML
// pages that belong to the site.
func WithStaticDir(dir string) Option {
	return func(s *Server) {
		s.staticDir = dir
	}
}

// WithRegistry registers metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// New creates a Server with nothing loaded.
func New(opts ...Option) *Server {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)
	return s
}

// Load renders site and swaps it in. On error the previous site file
// stays in service. Load takes ownership of site.
func (s *Server) Load(ctx context.Context, site *config.File, source string) (*model.GenerationReport, error) {
	report := model.NewGenerationReport(source)
	p := pipeline.NewGenerator(pipeline.GeneratorOptions{SkipWrite: true, Logger: s.logger})

	if err := p.Execute(ctx, site, report); err != nil {
		s.metrics.reloads.WithLabelValues("error").Inc()
		return report, fmt.Errorf("failed to render site: %w", err)
	}

	state, err := newSnapshot(site, report)
	if err != nil {
		s.metrics.reloads.WithLabelValues("error").Inc()
		return report, err
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	s.metrics.reloads.WithLabelValues("ok").Inc()
	s.metrics.sitemapURLs.Set(float64(report.URLCount))
	s.logger.Info("site loaded", "source", source, "urls", report.URLCount, "schemas", report.SchemaCount)
	return report, nil
}

func (s *Server) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Handler returns the HTTP handler with every route mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.instrument)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(s.Head)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))

	r.Get("/robots.txt", s.handleRobots)
	r.Get("/sitemap.xml", s.handleSitemap)

	r.Route("/api/seo", func(r chi.Router) {
		r.Get("/sitemap", s.handleSitemapJSON)
		r.Get("/schemas", s.handleSchemasJSON)
		r.Get("/head", s.handleHeadJSON)
	})

	if s.staticDir != "" {
		r.NotFound(s.handleStatic)
	}

	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
