// Package server exposes guide creation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"guide_creator/generator"
	"guide_creator/jobs"
)

// JobRunner starts guide runs in the background and reports on them.
type JobRunner interface {
	Submit(topic, audience string) (jobs.Job, error)
	Get(id string) (jobs.Job, bool)
	List() []jobs.Job
}

type Server struct {
	runner JobRunner
	logger *slog.Logger
}

func New(runner JobRunner, logger *slog.Logger) (*Server, error) {
	if runner == nil {
		return nil, errors.New("job runner required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{runner: runner, logger: logger.With("component", "server")}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /create-guide", s.handleCreateGuide)
	mux.HandleFunc("GET /jobs", s.handleJobList)
	mux.HandleFunc("GET /jobs/{id}", s.handleJobGet)
	return logMiddleware(s.logger, mux)
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// --- Handlers ---

type createGuideReq struct {
	Topic          string `json:"topic"`
	TargetAudience string `json:"target_audience"`
}

type createGuideResp struct {
	Status         string `json:"status"`
	Topic          string `json:"topic"`
	TargetAudience string `json:"target_audience"`
	JobID          string `json:"job_id"`
}

type errorResp struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Guide Creator API is running"})
}

func (s *Server) handleCreateGuide(w http.ResponseWriter, r *http.Request) {
	var req createGuideReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeError(w, http.StatusUnprocessableEntity, "topic is required")
		return
	}
	level, err := generator.ParseAudienceLevel(req.TargetAudience)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	job, err := s.runner.Submit(req.Topic, string(level))
	if err != nil {
		s.logger.Error("submitting job", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Location", "/jobs/"+job.ID)
	writeJSON(w, http.StatusAccepted, createGuideResp{
		Status:         "Guide creation task started successfully",
		Topic:          req.Topic,
		TargetAudience: string(level),
		JobID:          job.ID,
	})
}

func (s *Server) handleJobList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]jobs.Job{"jobs": s.runner.List()})
}

func (s *Server) handleJobGet(w http.ResponseWriter, r *http.Request) {
	job, ok := s.runner.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResp{Detail: detail})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
