// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the planrun HTTP API server.
//
// Endpoints:
//   - GET    /plans      - List plans (skip/limit pagination)
//   - POST   /plans      - Create a plan
//   - GET    /plans/{id} - Fetch one plan
//   - PUT    /plans/{id} - Replace a plan
//   - DELETE /plans/{id} - Delete a plan
//   - POST   /suggest    - Generate a draft plan from document text
//   - GET    /docs       - List the requirements document library
//   - GET    /health     - Health check
//   - GET    /stats      - Usage statistics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jeranaias/planrun-tui/internal/docs"
	"github.com/jeranaias/planrun-tui/internal/model"
	"github.com/jeranaias/planrun-tui/internal/ollama"
	"github.com/jeranaias/planrun-tui/internal/storage"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultPort is the default port for the HTTP server.
	DefaultPort = 8787

	// SuggestTimeout bounds one model round trip for /suggest.
	SuggestTimeout = 120 * time.Second

	// MaxDocumentLength is the maximum length for a suggestion document.
	MaxDocumentLength = 100000

	// MaxStepCount is the maximum number of steps accepted on a plan.
	MaxStepCount = 200

	// MaxRequestBodySize is the maximum size for a request body (1MB).
	MaxRequestBodySize = 1 * 1024 * 1024

	// Version is the server version.
	Version = "0.2.0"
)

// ============================================================================
// SERVER STATS
// ============================================================================

// ServerStats tracks server usage counters.
type ServerStats struct {
	TotalRequests   int64     `json:"total_requests"`
	PlanWrites      int64     `json:"plan_writes"`
	Suggestions     int64     `json:"suggestions"`
	SuggestFailures int64     `json:"suggest_failures"`
	StartTime       time.Time `json:"start_time"`
}

// NewServerStats creates a new ServerStats instance.
func NewServerStats() *ServerStats {
	return &ServerStats{StartTime: time.Now()}
}

// RecordRequest counts one handled request.
func (s *ServerStats) RecordRequest() {
	atomic.AddInt64(&s.TotalRequests, 1)
}

// RecordWrite counts one plan mutation (create, update, delete).
func (s *ServerStats) RecordWrite() {
	atomic.AddInt64(&s.PlanWrites, 1)
}

// RecordSuggestion counts one suggestion attempt.
func (s *ServerStats) RecordSuggestion(failed bool) {
	atomic.AddInt64(&s.Suggestions, 1)
	if failed {
		atomic.AddInt64(&s.SuggestFailures, 1)
	}
}

// GetStats returns a copy of the current stats.
func (s *ServerStats) GetStats() ServerStats {
	return ServerStats{
		TotalRequests:   atomic.LoadInt64(&s.TotalRequests),
		PlanWrites:      atomic.LoadInt64(&s.PlanWrites),
		Suggestions:     atomic.LoadInt64(&s.Suggestions),
		SuggestFailures: atomic.LoadInt64(&s.SuggestFailures),
		StartTime:       s.StartTime,
	}
}

// Uptime returns the server uptime duration.
func (s *ServerStats) Uptime() time.Duration {
	return time.Since(s.StartTime)
}

// ============================================================================
// SERVER
// ============================================================================

// PlanGenerator produces a draft plan from document text. The Ollama-backed
// generator in the suggest package satisfies it.
type PlanGenerator interface {
	Generate(ctx context.Context, document string) (model.SuggestionResult, error)
}

// Server is the planrun HTTP API server.
type Server struct {
	port   int
	router *http.ServeMux
	server *http.Server

	store     *storage.PlanStore
	generator PlanGenerator
	ollama    *ollama.Client
	library   *docs.Library
	stats     *ServerStats

	mu sync.RWMutex
}

// NewServer creates a new Server on the given port backed by store.
// If port is 0, the default port (8787) is used.
func NewServer(port int, store *storage.PlanStore) *Server {
	if port == 0 {
		port = DefaultPort
	}

	s := &Server{
		port:   port,
		router: http.NewServeMux(),
		store:  store,
		stats:  NewServerStats(),
	}

	s.setupRoutes()
	return s
}

// WithGenerator sets the suggestion generator used by POST /suggest.
func (s *Server) WithGenerator(g PlanGenerator) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generator = g
	return s
}

// WithOllamaClient sets the Ollama client used for health reporting.
func (s *Server) WithOllamaClient(client *ollama.Client) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ollama = client
	return s
}

// WithDocsLibrary exposes the document library on GET /docs.
func (s *Server) WithDocsLibrary(library *docs.Library) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.library = library
	return s
}

// Port returns the server port.
func (s *Server) Port() int {
	return s.port
}

// Handler returns the routing handler without the middleware chain.
// Useful for tests that drive the mux directly.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ============================================================================
// ROUTES
// ============================================================================

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /plans", s.handleListPlans)
	s.router.HandleFunc("POST /plans", s.handleCreatePlan)
	s.router.HandleFunc("GET /plans/{id}", s.handleGetPlan)
	s.router.HandleFunc("PUT /plans/{id}", s.handleUpdatePlan)
	s.router.HandleFunc("DELETE /plans/{id}", s.handleDeletePlan)

	s.router.HandleFunc("POST /suggest", s.handleSuggest)
	s.router.HandleFunc("GET /docs", s.handleListDocs)

	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /stats", s.handleStats)
}

// ============================================================================
// PLAN HANDLERS
// ============================================================================

// handleListPlans handles GET /plans with optional skip/limit query params.
func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	s.stats.RecordRequest()

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 0)

	plans, err := s.store.ListPlans(r.Context(), skip, limit)
	if err != nil {
		log.Printf("LIST_ERROR | error=%v", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to list plans")
		return
	}
	s.writeJSON(w, http.StatusOK, plans)
}

// handleCreatePlan handles POST /plans.
func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	s.stats.RecordRequest()

	plan, ok := s.decodePlan(w, r)
	if !ok {
		return
	}

	created, err := s.store.CreatePlan(r.Context(), plan)
	if err != nil {
		log.Printf("CREATE_ERROR | error=%v", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to create plan")
		return
	}

	s.stats.RecordWrite()
	s.writeJSON(w, http.StatusOK, created)
}

// handleGetPlan handles GET /plans/{id}.
func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	s.stats.RecordRequest()

	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	plan, err := s.store.GetPlan(r.Context(), id)
	if errors.Is(err, storage.ErrPlanNotFound) {
		s.writeError(w, http.StatusNotFound, "Plan not found")
		return
	}
	if err != nil {
		log.Printf("GET_ERROR | id=%d error=%v", id, err)
		s.writeError(w, http.StatusInternalServerError, "Failed to fetch plan")
		return
	}
	s.writeJSON(w, http.StatusOK, plan)
}

// handleUpdatePlan handles PUT /plans/{id}.
func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	s.stats.RecordRequest()

	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	plan, ok := s.decodePlan(w, r)
	if !ok {
		return
	}

	updated, err := s.store.UpdatePlan(r.Context(), id, plan)
	if errors.Is(err, storage.ErrPlanNotFound) {
		s.writeError(w, http.StatusNotFound, "Plan not found")
		return
	}
	if err != nil {
		log.Printf("UPDATE_ERROR | id=%d error=%v", id, err)
		s.writeError(w, http.StatusInternalServerError, "Failed to update plan")
		return
	}

	s.stats.RecordWrite()
	s.writeJSON(w, http.StatusOK, updated)
}

// handleDeletePlan handles DELETE /plans/{id}.
func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	s.stats.RecordRequest()

	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	err := s.store.DeletePlan(r.Context(), id)
	if errors.Is(err, storage.ErrPlanNotFound) {
		s.writeError(w, http.StatusNotFound, "Plan not found")
		return
	}
	if err != nil {
		log.Printf("DELETE_ERROR | id=%d error=%v", id, err)
		s.writeError(w, http.StatusInternalServerError, "Failed to delete plan")
		return
	}

	s.stats.RecordWrite()
	s.writeJSON(w, http.StatusOK, map[string]string{"detail": "Plan deleted"})
}

// decodePlan reads and validates a plan body. Reports its own errors.
func (s *Server) decodePlan(w http.ResponseWriter, r *http.Request) (model.Plan, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var plan model.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body exceeds maximum size of %d bytes", MaxRequestBodySize))
			return model.Plan{}, false
		}
		log.Printf("DECODE_ERROR | error=%v", err)
		s.writeError(w, http.StatusBadRequest, "Invalid request format")
		return model.Plan{}, false
	}

	if !plan.HasTitle() {
		s.writeError(w, http.StatusBadRequest, "Plan title is required")
		return model.Plan{}, false
	}
	if len(plan.Steps) > MaxStepCount {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Too many steps: maximum is %d", MaxStepCount))
		return model.Plan{}, false
	}
	return plan, true
}

// pathID parses the {id} path segment. Reports its own errors.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, http.StatusBadRequest, "Invalid plan id")
		return 0, false
	}
	return id, true
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// ============================================================================
// SUGGEST HANDLER
// ============================================================================

// SuggestRequest is the request body for POST /suggest.
type SuggestRequest struct {
	Document string `json:"document"`
}

// handleSuggest handles POST /suggest. Generation failures still return a
// 200 with the fixed placeholder plan so clients always get something to
// put in the editor; the failure is visible in the title.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	s.stats.RecordRequest()

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("DECODE_ERROR | error=%v", err)
		s.writeError(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Document == "" {
		s.writeError(w, http.StatusBadRequest, "Document text is required")
		return
	}
	if len(req.Document) > MaxDocumentLength {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Document exceeds maximum length of %d", MaxDocumentLength))
		return
	}

	s.mu.RLock()
	generator := s.generator
	s.mu.RUnlock()

	if generator == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Suggestion generation is not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), SuggestTimeout)
	defer cancel()

	start := time.Now()
	result, err := generator.Generate(ctx, req.Document)
	if err != nil {
		log.Printf("SUGGEST_ERROR | error=%v latency=%dms", err, time.Since(start).Milliseconds())
		s.stats.RecordSuggestion(true)
		s.writeJSON(w, http.StatusOK, model.PlaceholderResult())
		return
	}

	log.Printf("SUGGEST_COMPLETE | steps=%d latency=%dms", len(result.Steps), time.Since(start).Milliseconds())
	s.stats.RecordSuggestion(false)
	s.writeJSON(w, http.StatusOK, result)
}

// ============================================================================
// DOCS HANDLER
// ============================================================================

// handleListDocs handles GET /docs. The listing stays current without
// rescans when the library was opened with watching enabled.
func (s *Server) handleListDocs(w http.ResponseWriter, r *http.Request) {
	s.stats.RecordRequest()

	s.mu.RLock()
	library := s.library
	s.mu.RUnlock()

	if library == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Document library is not configured")
		return
	}
	s.writeJSON(w, http.StatusOK, library.List())
}

// ============================================================================
// HEALTH HANDLER
// ============================================================================

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	OllamaStatus string `json:"ollama_status"`
	PlanCount    int    `json:"plan_count"`
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.stats.RecordRequest()

	health := HealthResponse{
		Status:  "ok",
		Version: Version,
	}

	s.mu.RLock()
	ollamaClient := s.ollama
	s.mu.RUnlock()

	if ollamaClient != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := ollamaClient.CheckRunning(ctx); err == nil {
			health.OllamaStatus = "ok"
		} else {
			health.OllamaStatus = "unavailable"
			health.Status = "degraded"
		}
	} else {
		health.OllamaStatus = "not_configured"
	}

	if plans, err := s.store.ListPlans(r.Context(), 0, 0); err == nil {
		health.PlanCount = len(plans)
	}

	s.writeJSON(w, http.StatusOK, health)
}

// ============================================================================
// STATS HANDLER
// ============================================================================

// StatsResponse represents the usage statistics response.
type StatsResponse struct {
	TotalRequests   int64 `json:"total_requests"`
	PlanWrites      int64 `json:"plan_writes"`
	Suggestions     int64 `json:"suggestions"`
	SuggestFailures int64 `json:"suggest_failures"`
	UptimeSeconds   int64 `json:"uptime_seconds"`
}

// handleStats handles GET /stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.stats.RecordRequest()

	stats := s.stats.GetStats()

	s.writeJSON(w, http.StatusOK, StatsResponse{
		TotalRequests:   stats.TotalRequests,
		PlanWrites:      stats.PlanWrites,
		Suggestions:     stats.Suggestions,
		SuggestFailures: stats.SuggestFailures,
		UptimeSeconds:   int64(stats.Uptime().Seconds()),
	})
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("127.0.0.1:%d", s.port)

	handler := Chain(
		RecoveryMiddleware(),
		RequestIDMiddleware(),
		LoggingMiddleware(log.Default()),
		CORSMiddleware(DefaultCORSConfig()),
		RateLimitMiddleware(DefaultRateLimiter()),
	)(s.router)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: SuggestTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("SERVER_START | addr=%s version=%s", addr, Version)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	log.Printf("SERVER_SHUTDOWN | starting graceful shutdown")
	return s.server.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response in the {"detail": ...} shape.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"detail": message})
}
