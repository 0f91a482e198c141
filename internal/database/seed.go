package database

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"timeless-server/internal/interfaces"
	"timeless-server/internal/models"
)

//go:embed seed/default_system_prompt.md
var defaultSystemPrompt string

// DefaultSystemPrompt возвращает встроенный начальный промпт "Język Bezczasowy".
func DefaultSystemPrompt() string {
	return strings.TrimSpace(defaultSystemPrompt)
}

// SeedDefaultSystemPrompt создает начальный системный промпт, если в базе нет ни одного.
// Возвращает true, если промпт был создан.
func SeedDefaultSystemPrompt(ctx context.Context, querier interfaces.DBTX, repo interfaces.SystemPromptRepository, logger *zap.Logger) (bool, error) {
	_, err := repo.GetLatest(ctx, querier)
	if err == nil {
		logger.Debug("System prompt already present, seed skipped")
		return false, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return false, fmt.Errorf("failed to check existing system prompt: %w", err)
	}

	prompt, err := repo.Create(ctx, querier, DefaultSystemPrompt())
	if err != nil {
		return false, fmt.Errorf("failed to seed default system prompt: %w", err)
	}
	logger.Info("Default system prompt seeded", zap.Int64("id", prompt.ID))
	return true, nil
}
