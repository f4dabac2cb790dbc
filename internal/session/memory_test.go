package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

func TestMemoryStoreRoundTripIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(logger.Nop(), time.Hour)

	s := New(time.Now())
	s.Authenticate("key", "password")
	if err := st.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.APIKey = "mutated"

	got, err := st.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.APIKey != "key" || got.AuthMethod != "password" {
		t.Fatalf("got=%+v", got)
	}

	if err := st.Delete(ctx, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := st.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore(logger.Nop(), time.Minute).(*memoryStore)
	now := time.Unix(1700000000, 0)
	st.now = func() time.Time { return now }

	s := New(now)
	if err := st.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := st.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expiry, got=%v", err)
	}
}
