package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type memoryEntry struct {
	state     entity.GameState
	expiresAt time.Time
}

type memorySession struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionRepository keeps sessions in process memory. A zero ttl never expires them.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return newMemorySession(ttl, time.Now)
}

func newMemorySession(ttl time.Duration, now func() time.Time) *memorySession {
	return &memorySession{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      now,
	}
}

func (that *memorySession) Get(_ context.Context, sessionID string) (entity.GameState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	state, found := that.lookup(sessionID)
	if !found {
		return entity.GameState{}, apperror.ErrSessionNotFound
	}

	return state, nil
}

func (that *memorySession) Save(_ context.Context, sessionID string, state entity.GameState) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.store(sessionID, state)

	return nil
}

func (that *memorySession) Delete(_ context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, found := that.lookup(sessionID); !found {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, sessionID)

	return nil
}

func (that *memorySession) Update(_ context.Context, sessionID string, fn UpdateFunc) (entity.GameState, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	current, found := that.lookup(sessionID)

	next, err := fn(current, found)
	if err != nil {
		return next, err
	}

	that.store(sessionID, next)

	return next, nil
}

// lookup must be called with mu held; expired entries are dropped on access.
func (that *memorySession) lookup(sessionID string) (entity.GameState, bool) {
	entry, found := that.sessions[sessionID]
	if !found {
		return entity.GameState{}, false
	}

	if !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt) {
		delete(that.sessions, sessionID)
		return entity.GameState{}, false
	}

	return entry.state, true
}

func (that *memorySession) store(sessionID string, state entity.GameState) {
	entry := memoryEntry{state: state}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.sessions[sessionID] = entry
}
