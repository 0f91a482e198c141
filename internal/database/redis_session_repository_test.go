package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.uber.org/zap"

	"timeless-server/internal/database"
	"timeless-server/internal/models"
)

func TestRedisSessionRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	repo := database.NewRedisSessionRepository(client, zap.NewNop())

	require.NoError(t, repo.SetSession(ctx, "s1", "admin", time.Minute))
	username, err := repo.GetUsernameBySessionID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	ttl, err := client.TTL(ctx, "admin_session:s1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, repo.DeleteSession(ctx, "s1"))
	_, err = repo.GetUsernameBySessionID(ctx, "s1")
	assert.ErrorIs(t, err, models.ErrTokenNotFound)

	require.NoError(t, repo.DeleteSession(ctx, "missing"), "deleting an unknown session is not an error")
}
