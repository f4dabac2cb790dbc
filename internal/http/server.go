package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

type Server struct {
	Engine *gin.Engine
	log    *logger.Logger
	srv    *http.Server
	drain  time.Duration
}

func NewServer(log *logger.Logger, sc ServerConfig, cfg RouterConfig) *Server {
	engine := NewRouter(cfg)
	drain := sc.ShutdownTimeout
	if drain <= 0 {
		drain = 15 * time.Second
	}
	if sc.ReadHeaderTimeout <= 0 {
		sc.ReadHeaderTimeout = 10 * time.Second
	}
	return &Server{
		Engine: engine,
		log:    log.With("service", "HTTPServer"),
		srv: &http.Server{
			Addr:              sc.Addr,
			Handler:           engine,
			ReadHeaderTimeout: sc.ReadHeaderTimeout,
			IdleTimeout:       sc.IdleTimeout,
		},
		drain: drain,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.drain)
	defer cancel()
	s.log.Info("HTTP server shutting down")
	return s.srv.Shutdown(shutdownCtx)
}
