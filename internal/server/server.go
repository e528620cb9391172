// Package server exposes the inference engine over HTTP. The transport is
// deliberately thin: one prediction endpoint plus a readiness probe, with
// all decision logic living in the engine.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/keesa/smsparse/internal/artifact"
	"github.com/keesa/smsparse/internal/common"
	"github.com/keesa/smsparse/internal/engine"
	"github.com/keesa/smsparse/internal/model"
)

// Server serves predictions over HTTP.
type Server struct {
	engine *engine.Engine
	stores *artifact.Provider
	logger *slog.Logger
}

// New creates a Server around the given engine. The provider is consulted
// only by the readiness probe; predictions go through the engine.
func New(eng *engine.Engine, stores *artifact.Provider, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{engine: eng, stores: stores, logger: logger}
}

type predictRequest struct {
	SMS string `json:"sms"`
}

type envelope struct {
	Data    *model.InferenceResult `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Success bool                   `json:"success"`
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /predict", s.handlePredict)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.engine.Infer(r.Context(), req.SMS)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrBadInput):
			s.writeError(w, http.StatusBadRequest, common.ErrBadInput.Error())
		case errors.Is(err, common.ErrArtifactUnavailable):
			s.writeError(w, http.StatusServiceUnavailable, common.ErrArtifactUnavailable.Error())
		default:
			s.logger.Error("inference failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{Success: true, Data: &result})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	if !s.stores.Current().Ready() {
		s.writeError(w, http.StatusServiceUnavailable, "artifacts not loaded")
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{Success: true})
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, envelope{Success: false, Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
