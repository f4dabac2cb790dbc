package services

import "sync"

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// sessionLocks serialises work per session id within this process only; replicas sharing a
// Redis store rely on sticky routing. Entries are dropped once nobody holds or waits on them.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: map[string]*lockEntry{}}
}

func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	e := l.locks[id]
	if e == nil {
		e = &lockEntry{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *sessionLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
