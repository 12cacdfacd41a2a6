// Package server provides the HTTP API for vaultwise.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/vaultwise/internal/config"
	"github.com/hyperjump/vaultwise/internal/models"
	"github.com/hyperjump/vaultwise/pkg/utils"
)

// requestTimeout bounds a single API request; report generation makes several model calls.
const requestTimeout = 5 * time.Minute

// Service is the set of vault operations exposed over HTTP.
type Service interface {
	Categorize(ctx context.Context, vaultPath, notePath string) (*models.CategorizeResult, error)
	SummarizeFolder(ctx context.Context, folder string) (*models.FolderSummary, error)
	AnalyzePattern(ctx context.Context, folder, keyword string, includeAI bool) (*models.PatternAnalysis, error)
	AnswerQuestion(ctx context.Context, vaultPath, question string, maxNotes int) (*models.QAResult, error)
	GenerateReport(ctx context.Context, vaultPath string) (*models.VaultReport, error)
	Categories(ctx context.Context, vaultPath string, refresh bool) ([]models.VaultCategory, error)
}

// CategoryCache is the part of the category cache the API reports on and resets.
type CategoryCache interface {
	IsValid() bool
	Invalidate()
	TTL() time.Duration
}

// Server is the HTTP server for the vaultwise API.
type Server struct {
	svc          Service
	cache        CategoryCache
	config       *config.ServerConfig
	defaultVault string
	watching     bool
	logger       *zap.Logger
	server       *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithDefaultVault sets the vault used when a request omits one.
func WithDefaultVault(path string) Option {
	return func(s *Server) {
		s.defaultVault = path
	}
}

// WithCategoryCache exposes cache status and invalidation.
func WithCategoryCache(c CategoryCache) Option {
	return func(s *Server) {
		s.cache = c
	}
}

// WithWatching records whether the vault watcher is running, for the status endpoint.
func WithWatching(on bool) Option {
	return func(s *Server) {
		s.watching = on
	}
}

// NewServer creates a server with the given dependencies.
func NewServer(svc Service, cfg *config.ServerConfig, logger *zap.Logger, opts ...Option) *Server {
	s := &Server{
		svc:    svc,
		config: cfg,
		logger: utils.OrNop(logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/categorize", s.handleCategorize)
		r.Post("/summarize", s.handleSummarize)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/ask", s.handleAsk)
		r.Post("/report", s.handleReport)
		r.Get("/categories", s.handleCategories)
		r.Delete("/categories", s.handleInvalidateCategories)
		r.Get("/status", s.handleStatus)
	})
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops. After Stop it returns
// http.ErrServerClosed, also when Stop ran first.
func (s *Server) Start() error {
	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server. It is safe to call concurrently with Start.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// logRequests logs each request through zap once it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}
