package messaging

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	defaultConnectRetries    = 5
	defaultConnectRetryDelay = 5 * time.Second
)

// ConnectRabbitMQ устанавливает соединение с брокером, повторяя попытки при неудаче.
func ConnectRabbitMQ(ctx context.Context, uri string, logger *zap.Logger) (*amqp.Connection, error) {
	return connectWithRetry(ctx, uri, defaultConnectRetries, defaultConnectRetryDelay, logger)
}

func connectWithRetry(ctx context.Context, uri string, maxRetries int, retryDelay time.Duration, logger *zap.Logger) (*amqp.Connection, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		connection, err := amqp.Dial(uri)
		if err == nil {
			logger.Info("Connected to RabbitMQ", zap.Int("attempt", attempt))
			go watchConnection(connection, logger)
			return connection, nil
		}
		lastErr = err
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Duration("delay", retryDelay),
		)
		if attempt == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, lastErr)
}

func watchConnection(connection *amqp.Connection, logger *zap.Logger) {
	notifyClose := connection.NotifyClose(make(chan *amqp.Error, 1))
	if closeErr := <-notifyClose; closeErr != nil {
		logger.Error("RabbitMQ connection lost", zap.Error(closeErr))
	}
}
