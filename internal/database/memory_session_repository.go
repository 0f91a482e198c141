package database

import (
	"context"
	"sync"
	"time"

	"timeless-server/internal/interfaces"
	"timeless-server/internal/models"
)

var _ interfaces.SessionRepository = (*MemorySessionRepository)(nil)

type memorySession struct {
	username  string
	expiresAt time.Time
}

// MemorySessionRepository хранит сессии в памяти процесса. Используется, когда Redis не настроен;
// сессии теряются при перезапуске.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

// NewMemorySessionRepository создает хранилище сессий в памяти.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (r *MemorySessionRepository) SetSession(_ context.Context, sessionID, username string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpiredLocked()
	r.sessions[sessionID] = memorySession{username: username, expiresAt: r.now().Add(ttl)}
	return nil
}

func (r *MemorySessionRepository) GetUsernameBySessionID(_ context.Context, sessionID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return "", models.ErrTokenNotFound
	}
	if !r.now().Before(session.expiresAt) {
		delete(r.sessions, sessionID)
		return "", models.ErrTokenNotFound
	}
	return session.username, nil
}

func (r *MemorySessionRepository) DeleteSession(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

func (r *MemorySessionRepository) evictExpiredLocked() {
	now := r.now()
	for id, session := range r.sessions {
		if !now.Before(session.expiresAt) {
			delete(r.sessions, id)
		}
	}
}
