// Package server provides the HTTP REST API for the interview coach.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/interview-coach/internal/db"
	"github.com/jonathan/interview-coach/internal/ingestion"
	"github.com/jonathan/interview-coach/internal/observability"
	"github.com/jonathan/interview-coach/internal/progress"
	"github.com/jonathan/interview-coach/internal/server/middleware"
	"github.com/jonathan/interview-coach/internal/server/ratelimit"
	"github.com/jonathan/interview-coach/internal/types"
)

// Store is the persistence the API needs. Both the Postgres and the SQLite
// stores implement it.
type Store interface {
	progress.EventSource
	ingestion.EventWriter

	VoiceFeedbackHistory(ctx context.Context, userID uuid.UUID, limit int) ([]types.VoiceFeedback, error)
	DeleteVoiceFeedback(ctx context.Context, userID, id uuid.UUID) error
	CodingSubmissionHistory(ctx context.Context, userID uuid.UUID, limit int) ([]types.CodingSubmission, error)
	DeleteCodingSubmission(ctx context.Context, userID, id uuid.UUID) error
	FeedbackRecordHistory(ctx context.Context, userID uuid.UUID, limit int) ([]types.FeedbackRecord, error)
	ResumeAnalysisHistory(ctx context.Context, userID uuid.UUID, limit int) ([]types.ResumeAnalysis, error)
	LatestResumeUpload(ctx context.Context, userID uuid.UUID) (*types.ResumeUpload, error)

	CreateCodingQuestion(ctx context.Context, q *types.CodingQuestion) error
	ListCodingQuestions(ctx context.Context, section string) ([]types.CodingQuestion, error)
	GetCodingQuestion(ctx context.Context, id uuid.UUID) (*types.CodingQuestion, error)
	CreateTechQuestion(ctx context.Context, q *types.TechQuestion) error
	ListTechQuestions(ctx context.Context, topic string) ([]types.TechQuestion, error)

	Ping(ctx context.Context) error
}

var _ Store = (*db.DB)(nil)

// Options configures a Server. Store and Tokens are required.
type Options struct {
	Addr             string
	Store            Store
	Tokens           middleware.TokenValidator
	Metrics          *observability.Metrics
	RateLimit        *ratelimit.Config
	FeedbackLogLimit int
	HistoryLimit     int
	CORSOrigins      []string
	Logger           *slog.Logger
}

// Server represents the HTTP server.
type Server struct {
	httpServer   *http.Server
	handler      http.Handler
	store        Store
	progress     *progress.Service
	metrics      *observability.Metrics
	rateLimiter  *ratelimit.Limiter
	historyLimit int
	origins      map[string]bool
	logger       *slog.Logger
}

// New creates a server and registers its routes.
func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("server: store is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("server: token validator is required")
	}
	if opts.Metrics == nil {
		opts.Metrics = observability.NewMetrics()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = db.DefaultHistoryLimit
	}

	s := &Server{
		store:        opts.Store,
		metrics:      opts.Metrics,
		rateLimiter:  ratelimit.NewLimiter(opts.RateLimit),
		historyLimit: opts.HistoryLimit,
		origins:      make(map[string]bool, len(opts.CORSOrigins)),
		logger:       opts.Logger.With("component", "server"),
	}
	for _, o := range opts.CORSOrigins {
		s.origins[o] = true
	}

	progressOpts := []progress.Option{progress.WithRecorder(opts.Metrics)}
	if opts.FeedbackLogLimit > 0 {
		progressOpts = append(progressOpts, progress.WithFeedbackLimit(opts.FeedbackLogLimit))
	}
	s.progress = progress.NewService(opts.Store, progressOpts...)

	auth := middleware.AuthMiddleware(opts.Tokens)
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	mux.Handle("GET /api/progress/summary", protected(s.handleProgressSummary))

	// Voice feedback
	mux.Handle("POST /api/voice-feedback/save", protected(s.handleSaveVoiceFeedback))
	mux.Handle("GET /api/voice-feedback/history", protected(s.handleVoiceFeedbackHistory))
	mux.Handle("DELETE /api/voice-feedback/{id}", protected(s.handleDeleteVoiceFeedback))

	// Generic feedback records
	mux.Handle("POST /api/feedback/save", protected(s.handleSaveFeedback))
	mux.Handle("GET /api/feedback/history", protected(s.handleFeedbackHistory))

	// Coding round
	mux.Handle("GET /api/coding-round/questions", protected(s.handleCodingQuestions))
	mux.Handle("POST /api/coding-round/save-ai-question", protected(s.handleSaveCodingQuestion))
	mux.Handle("POST /api/coding-round/submissions", protected(s.handleSubmitCoding))
	mux.Handle("GET /api/coding-round/history", protected(s.handleCodingHistory))
	mux.Handle("DELETE /api/coding-round/history/{id}", protected(s.handleDeleteCodingSubmission))

	// Tech questions
	mux.Handle("GET /api/tech-questions", protected(s.handleTechQuestions))
	mux.Handle("POST /api/tech-questions/save", protected(s.handleSaveTechQuestion))

	// Resume and job description
	mux.Handle("POST /api/resume/upload", protected(s.handleUploadResume))
	mux.Handle("GET /api/resume/texts", protected(s.handleResumeTexts))
	mux.Handle("GET /api/resume/run-ai-match", protected(s.handleRunAIMatch))
	mux.Handle("GET /api/resume/suggestions", protected(s.handleResumeSuggestions))
	mux.Handle("POST /api/analyze/latest", protected(s.handleAnalyzeLatest))
	mux.Handle("GET /api/analyze/history", protected(s.handleAnalysisHistory))

	s.handler = s.withLogging(s.withCORS(s.withRateLimit(mux)))
	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// withLogging assigns a request ID, logs each request and records HTTP metrics.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		r = r.WithContext(observability.WithLogFields(r.Context(), observability.LogFields{RequestID: requestID}))

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		// The mux sets Pattern on the request it was handed.
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		s.metrics.ObserveHTTP(r.Method, route, rec.status, elapsed)
		s.logger.InfoContext(r.Context(), "request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", elapsed,
			"remote", r.RemoteAddr,
		)
	})
}

// exposedHeaders lets browser clients read rate limit state and request IDs.
const exposedHeaders = "Retry-After, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset, X-Request-ID"

// withCORS adds CORS headers. An origin list containing "*" allows any origin.
// It wraps the rate limiter so that 429 responses stay readable cross-origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case s.origins["*"]:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && s.origins[origin]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", exposedHeaders)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects requests over the client's limit with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID is the remote IP. Forwarded headers are ignored since they are client-controlled.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":   "rate_limit_exceeded",
		"message": "Rate limit exceeded. Please try again later.",
		"limit":   info.Limit,
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds() + 0.999)
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}
	s.logger.WarnContext(r.Context(), "rate limit exceeded", "client", clientID(r), "path", r.URL.Path, "limit", info.Limit)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// handleHealth reports whether the store is reachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.logger.ErrorContext(ctx, "health check failed", slog.Any("error", err))
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
