package interfaces

import (
	"context"
	"time"
)

// SessionRepository хранит активные админские сессии (jti токена -> имя администратора).
// Токен без записи в хранилище считается отозванным.
type SessionRepository interface {
	// SetSession stores the session id with the given TTL.
	SetSession(ctx context.Context, sessionID, username string, ttl time.Duration) error

	// GetUsernameBySessionID returns models.ErrTokenNotFound if the session is unknown or expired.
	GetUsernameBySessionID(ctx context.Context, sessionID string) (string, error)

	// DeleteSession removes the session. Deleting an unknown session is not an error.
	DeleteSession(ctx context.Context, sessionID string) error
}
