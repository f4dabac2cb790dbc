package session

import (
	"context"
	"sync"
	"time"

	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

type memoryStore struct {
	log *logger.Logger
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryStore keeps sessions in process memory. Entries are stored encoded so callers
// never share pointers with the store. A zero ttl disables expiry.
func NewMemoryStore(log *logger.Logger, ttl time.Duration) Store {
	return &memoryStore{
		log:     log.With("service", "SessionMemoryStore"),
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]memoryEntry{},
	}
}

func (m *memoryStore) Get(ctx context.Context, id string) (*State, error) {
	m.mu.Lock()
	e, ok := m.entries[id]
	if ok && m.expired(e) {
		delete(m.entries, id)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decode(e.data)
}

func (m *memoryStore) Save(ctx context.Context, s *State) error {
	b, err := encode(s)
	if err != nil {
		return err
	}
	e := memoryEntry{data: b}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	m.entries[s.ID] = e
	m.sweepLocked()
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.entries, id)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && m.now().After(e.expiresAt)
}

func (m *memoryStore) sweepLocked() {
	n := 0
	for id, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, id)
			n++
		}
	}
	if n > 0 {
		m.log.Debug("Expired sessions swept", "count", n)
	}
}
