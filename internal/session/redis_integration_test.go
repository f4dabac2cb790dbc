package session

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

func TestRedisStoreIntegration(t *testing.T) {
	addr := os.Getenv("SPEECHCOACH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SPEECHCOACH_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := NewRedisClient(ctx, addr, "", 0)
	if err != nil {
		t.Fatalf("redis: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })

	st, err := NewRedisStore(logger.Nop(), rdb, "speechcoach:test:", time.Minute)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	s := New(time.Now().UTC())
	s.Authenticate("key", "api_key")
	if err := st.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := st.Get(ctx, s.ID)
	if err != nil || got.APIKey != "key" {
		t.Fatalf("get: %+v err=%v", got, err)
	}
	if ttl := rdb.TTL(ctx, "speechcoach:test:"+s.ID).Val(); ttl <= 0 {
		t.Fatalf("ttl not set: %s", ttl)
	}
	_ = st.Delete(ctx, s.ID)
	if _, err := st.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}

func TestNewRedisStoreRequiresClient(t *testing.T) {
	if _, err := NewRedisStore(logger.Nop(), nil, "", 0); err == nil {
		t.Fatalf("expected error")
	}
}
