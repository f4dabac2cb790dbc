package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/speechcoach-backend/internal/config"
	"github.com/yungbote/speechcoach-backend/internal/generation"
	"github.com/yungbote/speechcoach-backend/internal/generation/provider"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
	"github.com/yungbote/speechcoach-backend/internal/session"
)

type Clients struct {
	Generation generation.Factory
	Redis      goredis.UniversalClient
	Store      session.Store
}

func wireClients(ctx context.Context, log *logger.Logger, cfg *config.Config) (Clients, error) {
	log.Info("Wiring clients...")

	factory, err := provider.New(log, cfg.Generation)
	if err != nil {
		return Clients{}, fmt.Errorf("init generation provider: %w", err)
	}

	// Sessions
	var (
		rdb   goredis.UniversalClient
		store session.Store
	)
	switch cfg.Session.Store {
	case "redis":
		client, err := session.NewRedisClient(ctx, cfg.Session.RedisAddr, cfg.Session.RedisPassword, cfg.Session.RedisDB)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
		rdb = client
		store, err = session.NewRedisStore(log, client, cfg.Session.KeyPrefix, cfg.Session.TTL.Duration)
		if err != nil {
			_ = client.Close()
			return Clients{}, fmt.Errorf("init redis session store: %w", err)
		}
	default:
		store = session.NewMemoryStore(log, cfg.Session.TTL.Duration)
	}

	return Clients{Generation: factory, Redis: rdb, Store: store}, nil
}

func (c Clients) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
