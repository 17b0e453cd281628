// Package server exposes the domlens analyzer over HTTP and MCP. The
// HTTP surface is a small chi router; the MCP surface registers the same
// operations as tools for agent use.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hazyhaar/domlens/analyzer"
	"github.com/hazyhaar/domlens/store"
)

// PageAnalyzer runs one analysis. Satisfied by *analyzer.Analyzer.
type PageAnalyzer interface {
	Analyze(ctx context.Context, req analyzer.Request) (*analyzer.Response, error)
}

// Server wires the analyzer and the store behind HTTP routes.
type Server struct {
	analyzer      PageAnalyzer
	store         *store.Store
	screenshotDir string
	logger        *slog.Logger
	router        *chi.Mux
}

// New builds the server and its routes.
func New(a PageAnalyzer, st *store.Store, screenshotDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		analyzer:      a,
		store:         st,
		screenshotDir: screenshotDir,
		logger:        logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/layouts", s.handleList)
		r.Get("/layouts/{id}", s.handleGet)
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler for mounting or serving.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the HTTP server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("http server started", "addr", addr)

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listen %s: %w", addr, err)
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AnalyzeRequest is the body for POST /api/v1/analyze.
type AnalyzeRequest struct {
	analyzer.Request
	Save bool `json:"save,omitempty"`
}

// AnalyzeResponse is the reply for POST /api/v1/analyze.
type AnalyzeResponse struct {
	RecordID       string `json:"recordId,omitempty"`
	Result         any    `json:"result"`
	ScreenshotPath string `json:"screenshotPath,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		http.Error(w, "url required", http.StatusBadRequest)
		return
	}

	resp, err := s.analyzer.Analyze(r.Context(), req.Request)
	if err != nil {
		s.logger.Error("analyze failed", "url", req.URL, "error", err)
		http.Error(w, "Analysis failed", http.StatusBadGateway)
		return
	}

	out := AnalyzeResponse{Result: resp.Result}

	if len(resp.Screenshot) > 0 {
		path, err := s.writeScreenshot(resp.Result.ID, resp.Screenshot)
		if err != nil {
			s.logger.Error("screenshot write failed", "error", err)
		} else {
			out.ScreenshotPath = path
		}
	}

	if req.Save && s.store != nil {
		id, err := s.store.Save(r.Context(), req.URL, resp.Result)
		if err != nil {
			s.logger.Error("save failed", "url", req.URL, "error", err)
			http.Error(w, "Persist failed", http.StatusInternalServerError)
			return
		}
		out.RecordID = id
	}

	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "Store not configured", http.StatusServiceUnavailable)
		return
	}

	opts := store.ListOptions{
		URL:        r.URL.Query().Get("url"),
		ScreenType: r.URL.Query().Get("screenType"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		opts.Limit = n
	}

	records, err := s.store.List(r.Context(), opts)
	if err != nil {
		s.logger.Error("list failed", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"layouts": records})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "Store not configured", http.StatusServiceUnavailable)
		return
	}

	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("get failed", "id", id, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) writeScreenshot(resultID string, data []byte) (string, error) {
	if err := os.MkdirAll(s.screenshotDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%d.png", resultID, time.Now().UnixMilli())
	path := filepath.Join(s.screenshotDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
