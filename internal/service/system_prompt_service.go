package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"timeless-server/internal/interfaces"
	"timeless-server/internal/models"
)

// SystemPromptService управляет историей системных промптов.
type SystemPromptService interface {
	ListPrompts(ctx context.Context) ([]*models.SystemPrompt, error)
	GetActivePrompt(ctx context.Context) (*models.SystemPrompt, error)
	CreatePrompt(ctx context.Context, content string) (*models.SystemPrompt, error)
	DeletePrompt(ctx context.Context, id int64) error
}

type SystemPromptServiceImpl struct {
	db        interfaces.DBTX
	repo      interfaces.SystemPromptRepository
	publisher interfaces.ContentEventPublisher
	logger    *zap.Logger
}

func NewSystemPromptService(
	db interfaces.DBTX,
	repo interfaces.SystemPromptRepository,
	publisher interfaces.ContentEventPublisher,
	logger *zap.Logger,
) *SystemPromptServiceImpl {
	return &SystemPromptServiceImpl{
		db:        db,
		repo:      repo,
		publisher: publisher,
		logger:    logger.Named("SystemPromptService"),
	}
}

func (s *SystemPromptServiceImpl) ListPrompts(ctx context.Context) ([]*models.SystemPrompt, error) {
	prompts, err := s.repo.ListAll(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list system prompts: %w", err)
	}
	return prompts, nil
}

// GetActivePrompt возвращает самый новый промпт или models.ErrNotFound.
func (s *SystemPromptServiceImpl) GetActivePrompt(ctx context.Context) (*models.SystemPrompt, error) {
	return s.repo.GetLatest(ctx, s.db)
}

// CreatePrompt сохраняет новую версию промпта; она сразу становится активной.
func (s *SystemPromptServiceImpl) CreatePrompt(ctx context.Context, content string) (*models.SystemPrompt, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError(msgContentRequired)
	}
	if containsNUL(content) {
		return nil, models.NewValidationError(msgNulCharacter)
	}

	prompt, err := s.repo.Create(ctx, s.db, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create system prompt: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, interfaces.ContentEvent{
		EventType: interfaces.ContentEventCreated,
		Entity:    interfaces.EntitySystemPrompt,
		ID:        prompt.ID,
	})
	return prompt, nil
}

func (s *SystemPromptServiceImpl) DeletePrompt(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, s.db, id); err != nil {
		return err
	}

	publishEvent(ctx, s.publisher, s.logger, interfaces.ContentEvent{
		EventType: interfaces.ContentEventDeleted,
		Entity:    interfaces.EntitySystemPrompt,
		ID:        id,
	})
	return nil
}
