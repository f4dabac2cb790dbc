package app

import (
	"github.com/yungbote/speechcoach-backend/internal/config"
	apphttp "github.com/yungbote/speechcoach-backend/internal/http"
	"github.com/yungbote/speechcoach-backend/internal/observability"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

// Multipart framing adds a little on top of the audio itself.
const bodyOverhead = 1 << 20

func wireServer(log *logger.Logger, cfg *config.Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *apphttp.Server {
	return apphttp.NewServer(log, apphttp.ServerConfig{
		Addr:              cfg.HTTP.Addr,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.HTTP.IdleTimeout.Duration,
		ShutdownTimeout:   cfg.HTTP.ShutdownTimeout.Duration,
	}, apphttp.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		MaxBodyBytes:   cfg.HTTP.MaxUploadBytes*4/3 + bodyOverhead,
		ServiceName:    serviceName,
		AuthMiddleware: middleware.Auth,
		HealthHandler:  handlers.Health,
		OptionsHandler: handlers.Options,
		AuthHandler:    handlers.Auth,
		SessionHandler: handlers.Session,
	})
}
