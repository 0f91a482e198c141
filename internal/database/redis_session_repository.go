package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"timeless-server/internal/interfaces"
	"timeless-server/internal/models"
)

var _ interfaces.SessionRepository = (*redisSessionRepository)(nil)

const sessionKeyPrefix = "admin_session:"

type redisSessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisSessionRepository creates a Redis-backed SessionRepository.
func NewRedisSessionRepository(client *redis.Client, logger *zap.Logger) interfaces.SessionRepository {
	return &redisSessionRepository{
		client: client,
		logger: logger.Named("RedisSessionRepo"),
	}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (r *redisSessionRepository) SetSession(ctx context.Context, sessionID, username string, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKey(sessionID), username, ttl).Err(); err != nil {
		r.logger.Error("Failed to store session in redis", zap.Error(err), zap.String("sessionID", sessionID))
		return fmt.Errorf("failed to store session in redis: %w", err)
	}
	r.logger.Debug("Session stored", zap.String("sessionID", sessionID), zap.Duration("ttl", ttl))
	return nil
}

func (r *redisSessionRepository) GetUsernameBySessionID(ctx context.Context, sessionID string) (string, error) {
	username, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Session not found in redis", zap.String("sessionID", sessionID))
			return "", models.ErrTokenNotFound
		}
		r.logger.Error("Failed to get session from redis", zap.Error(err), zap.String("sessionID", sessionID))
		return "", fmt.Errorf("failed to get session from redis: %w", err)
	}
	return username, nil
}

func (r *redisSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		r.logger.Error("Failed to delete session from redis", zap.Error(err), zap.String("sessionID", sessionID))
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	r.logger.Debug("Session deleted", zap.String("sessionID", sessionID))
	return nil
}
