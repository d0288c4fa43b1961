package http_server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	ports "board-post-service/internal/domain/ports/output"
	"board-post-service/internal/infrastructure/config"
)

type Server struct {
	server  *http.Server
	address string
	port    int
	log     ports.Logger
}

func NewServer(handler http.Handler, cfg config.HTTPServer, log ports.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		address: cfg.Address,
		port:    cfg.Port,
		log:     log,
	}
}

func (s *Server) Run() error {
	s.log.Info("Starting HTTP server", slog.String("address", s.address), slog.Int("port", s.port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
