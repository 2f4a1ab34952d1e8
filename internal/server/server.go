package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/veristat/veristat/internal/model"
	"github.com/veristat/veristat/internal/pipeline"
)

// Runner runs a verification over raw input text. It is satisfied by
// *pipeline.Pipeline; tests substitute a stub.
type Runner interface {
	Run(ctx context.Context, text string, opts pipeline.Options) *model.Report
}

// Server exposes the verification pipeline over HTTP
type Server struct {
	runner Runner
	config *model.Config
	router chi.Router
}

// New creates the HTTP server around a pipeline runner
func New(runner Runner, cfg *model.Config) *Server {
	s := &Server{
		runner: runner,
		config: cfg,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/", s.handleHealth)
	r.With(allowCORS).Post("/verify", s.handleVerify)
	r.With(allowCORS).Options("/verify", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler for mounting or testing
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the server on the given address and blocks until the
// context is cancelled or the listener fails
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// verifyRequest is the POST /verify payload
type verifyRequest struct {
	Text          string `json:"text"`
	Language      string `json:"language,omitempty"`
	PublishDate   string `json:"publishDate,omitempty"` // YYYY-MM-DD reference date for relative time expressions
	TemporalCheck *bool  `json:"temporalCheck,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "veristat",
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text is required"})
		return
	}

	opts := pipeline.Options{
		Language:      s.config.Output.Language,
		TemporalCheck: s.config.Temporal.Enabled,
	}
	if req.Language != "" {
		opts.Language = model.Language(req.Language).Normalize()
	}
	if req.TemporalCheck != nil {
		opts.TemporalCheck = *req.TemporalCheck
	}
	if req.PublishDate != "" {
		refDate, err := time.ParseInLocation("2006-01-02", req.PublishDate, time.UTC)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "publishDate must be YYYY-MM-DD"})
			return
		}
		opts.ReferenceDate = refDate
	}

	report := s.runner.Run(r.Context(), req.Text, opts)
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// allowCORS permits browser clients on the verification endpoint
func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}
