package repository

import (
	"context"
	"sync"

	"gojobot/internal/domain"
)

// SessionRepository stores per-user preference sessions. Get returns
// (nil, nil) when no session exists yet; callers create the default
// lazily. Implementations must be safe for concurrent use.
type SessionRepository interface {
	Get(ctx context.Context, telegramID int64) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
}

// MemorySessionRepository is the default backend: an in-process map,
// reset on restart.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[int64]domain.Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[int64]domain.Session),
	}
}

func (r *MemorySessionRepository) Get(ctx context.Context, telegramID int64) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[telegramID]
	if !ok {
		return nil, nil
	}
	// return a copy so callers can't mutate shared state without Save
	out := session
	return &out, nil
}

func (r *MemorySessionRepository) Save(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.TelegramID] = *session
	return nil
}
