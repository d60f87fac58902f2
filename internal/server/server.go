package server

import (
	"context"
	"net/http"
	"time"

	"meetingflow/internal/jobs"
	"meetingflow/internal/logger"
	"meetingflow/internal/store"
)

// Server exposes the job submission and status HTTP surface.
type Server struct {
	runner   jobs.Runner
	store    *store.Store
	logger   logger.Logger
	inputDir string
	srv      *http.Server
}

// New creates the HTTP server. Uploaded recordings are staged in inputDir.
func New(port string, inputDir string, runner jobs.Runner, st *store.Store, log logger.Logger) *Server {
	s := &Server{
		runner:   runner,
		store:    st,
		logger:   log,
		inputDir: inputDir,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/v1/process", s.handleProcess)
	mux.HandleFunc("GET /api/v1/status/{id}", s.handleStatus)

	s.srv = &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "HTTP server listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
