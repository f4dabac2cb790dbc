package app

import (
	"context"

	"github.com/yungbote/speechcoach-backend/internal/config"
	httpH "github.com/yungbote/speechcoach-backend/internal/http/handlers"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Options *httpH.OptionsHandler
	Auth    *httpH.AuthHandler
	Session *httpH.SessionHandler
}

func wireHandlers(log *logger.Logger, cfg *config.Config, clients Clients, services Services) Handlers {
	log.Info("Wiring handlers...")

	checks := map[string]httpH.Pinger{}
	if clients.Redis != nil {
		rdb := clients.Redis
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	return Handlers{
		Health:  httpH.NewHealthHandler(cfg.Version, checks),
		Options: httpH.NewOptionsHandler(services.Auth.PasswordEnabled()),
		Auth:    httpH.NewAuthHandler(services.Practice),
		Session: httpH.NewSessionHandler(log, services.Practice, cfg.HTTP.MaxUploadBytes),
	}
}
