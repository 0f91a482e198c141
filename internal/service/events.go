package service

import (
	"context"

	"go.uber.org/zap"

	"timeless-server/internal/interfaces"
)

// publishEvent отправляет событие изменения контента. Ошибка публикации только логируется.
func publishEvent(ctx context.Context, publisher interfaces.ContentEventPublisher, logger *zap.Logger, event interfaces.ContentEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishContentEvent(ctx, event); err != nil {
		logger.Error("Failed to publish content event",
			zap.String("eventType", string(event.EventType)),
			zap.String("entity", string(event.Entity)),
			zap.Int64("id", event.ID),
			zap.Error(err),
		)
	}
}
