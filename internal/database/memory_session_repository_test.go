package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeless-server/internal/models"
)

func TestMemorySessionRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	require.NoError(t, repo.SetSession(ctx, "sid-1", "admin", time.Hour))

	username, err := repo.GetUsernameBySessionID(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	require.NoError(t, repo.DeleteSession(ctx, "sid-1"))
	_, err = repo.GetUsernameBySessionID(ctx, "sid-1")
	assert.ErrorIs(t, err, models.ErrTokenNotFound)

	assert.NoError(t, repo.DeleteSession(ctx, "unknown"), "deleting an unknown session is not an error")
}

func TestMemorySessionRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := NewMemorySessionRepository()
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.SetSession(ctx, "sid", "admin", time.Minute))

	now = now.Add(59 * time.Second)
	_, err := repo.GetUsernameBySessionID(ctx, "sid")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = repo.GetUsernameBySessionID(ctx, "sid")
	assert.ErrorIs(t, err, models.ErrTokenNotFound)
}

func TestMemorySessionRepository_EvictsExpiredOnWrite(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	repo := NewMemorySessionRepository()
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.SetSession(ctx, "old", "admin", time.Second))
	now = now.Add(time.Minute)
	require.NoError(t, repo.SetSession(ctx, "new", "admin", time.Hour))

	assert.Len(t, repo.sessions, 1)
	assert.Contains(t, repo.sessions, "new")
}
