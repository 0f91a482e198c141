package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"timeless-server/internal/config"
)

// ErrGenerationFailed - провайдер вернул ошибку или меньше вариантов, чем запрошено.
var ErrGenerationFailed = errors.New("completion generation failed")

// CompletionClient генерирует варианты ответа модели.
type CompletionClient interface {
	// GenerateCompletions возвращает ровно n обрезанных вариантов в порядке провайдера.
	// Любая ошибка оборачивает ErrGenerationFailed; частичных результатов нет.
	GenerateCompletions(ctx context.Context, input, systemPrompt string, n int) ([]string, error)
}

// NewCompletionClient создает клиента в зависимости от cfg.ClientType.
func NewCompletionClient(cfg config.AIConfig, logger *zap.Logger) (CompletionClient, error) {
	switch strings.ToLower(cfg.ClientType) {
	case config.AIClientOpenAI:
		return newOpenAIClient(cfg, logger), nil
	case config.AIClientOllama:
		return newOllamaClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported AI client type '%s'", cfg.ClientType)
	}
}

func validateRequest(input string, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: n must be at least 1, got %d", ErrGenerationFailed, n)
	}
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("%w: input is empty", ErrGenerationFailed)
	}
	return nil
}
