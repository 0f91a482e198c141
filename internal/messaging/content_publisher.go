package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"timeless-server/internal/interfaces"
)

var _ interfaces.ContentEventPublisher = (*RabbitMQContentPublisher)(nil)

const contentExchangeType = "fanout"

// RabbitMQContentPublisher публикует события изменения контента в fanout exchange.
type RabbitMQContentPublisher struct {
	mu           sync.Mutex
	ch           *amqp.Channel
	exchangeName string
	logger       *zap.Logger
}

// NewRabbitMQContentPublisher открывает канал и объявляет durable fanout exchange.
func NewRabbitMQContentPublisher(conn *amqp.Connection, exchangeName string, logger *zap.Logger) (*RabbitMQContentPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("rabbitmq connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("Failed to open a channel for content events", zap.Error(err))
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchangeName,
		contentExchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		_ = ch.Close()
		logger.Error("Failed to declare content exchange", zap.String("exchange", exchangeName), zap.Error(err))
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", exchangeName, err)
	}

	logger.Info("Content exchange declared", zap.String("exchange", exchangeName), zap.String("type", contentExchangeType))

	return &RabbitMQContentPublisher{
		ch:           ch,
		exchangeName: exchangeName,
		logger:       logger.Named("ContentPublisher"),
	}, nil
}

// PublishContentEvent публикует событие в формате JSON.
func (p *RabbitMQContentPublisher) PublishContentEvent(ctx context.Context, event interfaces.ContentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal content event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		p.exchangeName,
		"", // routing key не используется для fanout
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish content event", zap.Error(err), zap.Any("event", event))
		return fmt.Errorf("failed to publish content event: %w", err)
	}

	p.logger.Debug("Content event published", zap.Any("event", event))
	return nil
}

// Close закрывает канал RabbitMQ.
func (p *RabbitMQContentPublisher) Close() error {
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}

// NopContentPublisher используется, когда RabbitMQ не настроен.
type NopContentPublisher struct{}

var _ interfaces.ContentEventPublisher = NopContentPublisher{}

func (NopContentPublisher) PublishContentEvent(context.Context, interfaces.ContentEvent) error {
	return nil
}
