package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

const DefaultKeyPrefix = "speechcoach:session:"

type redisStore struct {
	log    *logger.Logger
	rdb    goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore stores each session as one JSON value under prefix+id, refreshed with ttl on every save.
func NewRedisStore(log *logger.Logger, rdb goredis.UniversalClient, prefix string, ttl time.Duration) (Store, error) {
	if rdb == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultKeyPrefix
	}
	return &redisStore{
		log:    log.With("service", "SessionRedisStore"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

func (r *redisStore) key(id string) string { return r.prefix + id }

func (r *redisStore) Get(ctx context.Context, id string) (*State, error) {
	b, err := r.rdb.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	return decode(b)
}

func (r *redisStore) Save(ctx context.Context, s *State) error {
	b, err := encode(s)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, r.key(s.ID), b, r.ttl).Err(); err != nil {
		r.log.Warn("Session save failed", "session_id", s.ID, "error", err)
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

// NewRedisClient dials addr and verifies it with a PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, fmt.Errorf("redis address required")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
