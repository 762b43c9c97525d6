package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
	"blog-backend/pkg/container"
)

// Server is a running HTTP service together with the storage it owns.
// Start and Stop are symmetric; there is no package-level instance.
type Server struct {
	cfg       *config.Config
	container *container.Container
	http      *http.Server
	listener  net.Listener
	errCh     chan error
}

// Start connects storage, binds the listener and begins serving in the
// background. It returns once the port is bound.
func Start(ctx context.Context, cfg *config.Config) (*Server, error) {
	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize container: %w", err)
	}

	listener, err := net.Listen("tcp", ":"+cfg.App.Port)
	if err != nil {
		c.Cleanup(ctx)
		return nil, fmt.Errorf("failed to listen on port %s: %w", cfg.App.Port, err)
	}

	s := &Server{
		cfg:       cfg,
		container: c,
		listener:  listener,
		errCh:     make(chan error, 1),
		http: &http.Server{
			Handler:           NewRouter(c),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	go func() {
		err := s.http.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.errCh <- err
		close(s.errCh)
	}()

	log.Info().
		Str("addr", s.Addr()).
		Str("environment", cfg.App.Environment).
		Str("driver", string(c.Driver)).
		Msg("server started")

	return s, nil
}

// Addr is the bound listener address, useful when started on port 0.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// URL returns a loopback base URL for the bound port.
func (s *Server) URL() string {
	_, port, _ := net.SplitHostPort(s.Addr())
	return "http://127.0.0.1:" + port
}

// Err delivers the serve error, or nil after a clean Stop.
func (s *Server) Err() <-chan error {
	return s.errCh
}

// Stop drains in-flight requests within SHUTDOWN_TIMEOUT, then closes storage.
func (s *Server) Stop(ctx context.Context) error {
	log.Info().Msg("shutting down server")

	if s.cfg.App.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.App.ShutdownTimeout)
		defer cancel()
	}

	shutdownErr := s.http.Shutdown(ctx)
	if shutdownErr != nil {
		log.Warn().Err(shutdownErr).Msg("server forced to shutdown")
	}

	s.container.Cleanup(ctx)

	if shutdownErr != nil {
		return fmt.Errorf("failed to shut down server: %w", shutdownErr)
	}

	log.Info().Msg("server exited gracefully")
	return nil
}
