package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/internal/store"
	"github.com/thep200/trending-crawler/pkg/log"
)

// Server serves the read API over HTTP
type Server struct {
	Logger log.Logger
	Config *cfg.Config
	Store  store.Store
	server *http.Server
	port   int
}

// NewServer creates a new read API server
func NewServer(logger log.Logger, config *cfg.Config, st store.Store, port int) (*Server, error) {
	return &Server{
		Logger: logger,
		Config: config,
		Store:  st,
		port:   port,
	}, nil
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	handler, err := NewHandler(s.Logger, s.Config, s.Store)
	if err != nil {
		return fmt.Errorf("failed to create api handler: %w", err)
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.Logger.Info(context.Background(), "Starting api server on port %d", s.port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
