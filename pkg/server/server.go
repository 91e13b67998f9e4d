// Package server exposes the document processing pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/probatech/estadoc/pkg/config"
	"github.com/probatech/estadoc/pkg/domain"
	"github.com/probatech/estadoc/pkg/pipeline"
	"github.com/probatech/estadoc/pkg/storage"
	"github.com/probatech/estadoc/pkg/taxonomy"
	"github.com/probatech/estadoc/pkg/telemetry"
)

// serviceName is reported by the health endpoint.
const serviceName = "estadoc"

// Server is the estate document processing HTTP server.
type Server struct {
	cfg       *config.Config
	processor *pipeline.Processor
	results   storage.ResultStore
	metrics   *telemetry.Metrics
	tracing   *telemetry.TracingManager
	logger    *slog.Logger

	httpServer *http.Server
	mu         sync.RWMutex
	sanitize   bool
	stopOnce   sync.Once
}

// New creates a server around an existing processor and recorder.
func New(cfg *config.Config, processor *pipeline.Processor, metrics *telemetry.Metrics, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if processor == nil {
		processor = pipeline.NewProcessor(nil, nil, cfg.Limits, logger, metrics)
	}

	tracing, err := telemetry.NewTracingManager(cfg.Tracing)
	if err != nil {
		// Tracing is optional; degrade rather than refuse to start.
		logger.Warn("failed to initialize tracing", "error", err)
		tracing = nil
	}

	return &Server{
		cfg:       cfg,
		processor: processor,
		results:   storage.NewMemoryResultStore(storage.DefaultCapacity),
		metrics:   metrics,
		tracing:   tracing,
		logger:    logger,
		sanitize:  cfg.Server.Sanitize,
	}, nil
}

// Handler builds the full route handler. Start serves it; tests can mount it
// on an httptest server directly.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.setupRoutes(mux)
	return mux
}

// Start runs the HTTP server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.Server.ListenAddr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server starting", "addr", s.cfg.Server.ListenAddr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()
		return s.Stop(shutdownCtx)
	}
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		s.logger.Info("stopping server")

		if s.httpServer != nil {
			if stopErr := s.httpServer.Shutdown(ctx); stopErr != nil {
				s.logger.Error("failed to shut down HTTP server", "error", stopErr)
				err = stopErr
			}
		}
		if s.tracing != nil {
			if stopErr := s.tracing.Shutdown(ctx); stopErr != nil {
				s.logger.Error("failed to shut down tracing", "error", stopErr)
			}
		}
	})
	return err
}

// ApplyConfig applies the reload-safe subset of a new configuration: payload
// limits and content sanitization. Listen address, metrics, and tracing
// settings require a restart.
func (s *Server) ApplyConfig(cfg *config.Config) {
	s.processor.SetLimits(cfg.Limits)

	s.mu.Lock()
	s.sanitize = cfg.Server.Sanitize
	s.mu.Unlock()

	s.logger.Info("configuration applied",
		"min_content_length", cfg.Limits.MinContentLength,
		"max_content_length", cfg.Limits.MaxContentLength,
		"sanitize", cfg.Server.Sanitize,
	)
}

func (s *Server) sanitizeEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sanitize
}

// setupRoutes configures the HTTP routes.
func (s *Server) setupRoutes(mux *http.ServeMux) {
	wrap := func(handler http.HandlerFunc) http.Handler {
		h := http.Handler(handler)
		if s.metrics != nil {
			h = s.metrics.Middleware(h)
		}
		if s.tracing != nil {
			h = s.tracing.HTTPMiddleware(h)
		}
		h = RequestIDMiddleware(h)
		return CORSMiddleware(h)
	}

	mux.Handle("/process", wrap(s.handleProcess))
	mux.Handle("/health", wrap(s.handleHealth))
	mux.Handle("/taxonomy", wrap(s.handleTaxonomy))
	mux.Handle("/stats", wrap(s.handleStats))
	mux.Handle("/results", wrap(s.handleResults))
	mux.Handle("/results/", wrap(s.handleResultByID))

	if s.metrics != nil && s.cfg.Metrics.Enabled {
		mux.Handle(s.cfg.Metrics.Path, s.metrics.Handler())
	}
}

// errorResponse is the standard JSON error model.
type errorResponse struct {
	Error      string   `json:"error"`
	Details    string   `json:"details,omitempty"`
	DocumentID string   `json:"document_id,omitempty"`
	Fields     []string `json:"fields,omitempty"`
}

// handleProcess handles POST /process requests.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload domain.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if s.sanitizeEnabled() {
		payload.Content = pipeline.SanitizeContent(payload.Content)
	}

	s.logger.Info("processing document via API",
		"document_id", payload.DocumentID,
		"request_id", GetRequestID(r.Context()),
	)

	ctx := r.Context()
	if s.tracing != nil {
		var span trace.Span
		ctx, span = s.tracing.StartSpan(ctx, "estadoc.process",
			attribute.String("document_id", payload.DocumentID))
		defer span.End()
	}

	result, err := s.processor.Process(ctx, payload)
	if err != nil {
		if ve, ok := asValidationError(err); ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:      "Validation failed",
				Details:    ve.Error(),
				DocumentID: ve.DocumentID,
				Fields:     ve.Fields,
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:      "Processing failed",
			Details:    err.Error(),
			DocumentID: payload.DocumentID,
		})
		return
	}

	if saveErr := s.results.SaveResult(r.Context(), result); saveErr != nil {
		s.logger.Warn("failed to retain result", "document_id", result.DocumentID, "error", saveErr)
	}

	writeJSON(w, http.StatusOK, result)
}

// handleResults handles GET /results requests, returning recent results
// newest first. The limit query parameter bounds the response.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:   "Invalid limit",
				Details: "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	results, err := s.results.RecentResults(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to list results", Details: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// handleResultByID handles GET /results/{document_id} requests.
func (s *Server) handleResultByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	documentID := strings.TrimPrefix(r.URL.Path, "/results/")
	if documentID == "" || strings.Contains(documentID, "/") {
		http.NotFound(w, r)
		return
	}

	result, err := s.results.GetResult(r.Context(), documentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{
				Error:      "Result not found",
				DocumentID: documentID,
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to load result", Details: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// healthResponse is the health endpoint body.
type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}

// handleHealth handles GET /health requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   serviceName,
	})
}

// handleTaxonomy handles GET /taxonomy requests.
func (s *Server) handleTaxonomy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, taxonomy.Categories())
}

// handleStats handles GET /stats requests, exposing the recorder snapshot.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.metrics == nil {
		writeJSON(w, http.StatusOK, map[string]telemetry.StageSnapshot{})
		return
	}
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func asValidationError(err error) (*domain.ValidationError, bool) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
