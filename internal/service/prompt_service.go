package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"timeless-server/internal/config"
	"timeless-server/internal/interfaces"
	"timeless-server/internal/models"
)

// TokenCounter оценивает размер текста в токенах модели.
type TokenCounter interface {
	Count(text string) int
}

// PromptAssembler собирает системный промпт для модели.
type PromptAssembler interface {
	// PreparePrompt возвращает активный системный промпт с добавленными примерами.
	// Если промпта нет, возвращает models.ErrSystemPromptNotConfigured.
	PreparePrompt(ctx context.Context) (string, error)
	// PreparePromptExcluding собирает промпт без указанного примера.
	PreparePromptExcluding(ctx context.Context, exampleID int64) (string, error)
	// Preview возвращает собранный промпт вместе с оценкой его размера.
	Preview(ctx context.Context) (*models.PromptPreview, error)
}

type PromptAssemblerImpl struct {
	db       interfaces.DBTX
	prompts  interfaces.SystemPromptRepository
	examples interfaces.ExampleRepository
	format   config.PromptConfig
	tokens   TokenCounter
	logger   *zap.Logger
}

func NewPromptAssembler(
	db interfaces.DBTX,
	prompts interfaces.SystemPromptRepository,
	examples interfaces.ExampleRepository,
	format config.PromptConfig,
	tokens TokenCounter,
	logger *zap.Logger,
) *PromptAssemblerImpl {
	return &PromptAssemblerImpl{
		db:       db,
		prompts:  prompts,
		examples: examples,
		format:   format,
		tokens:   tokens,
		logger:   logger.Named("PromptAssembler"),
	}
}

func (s *PromptAssemblerImpl) PreparePrompt(ctx context.Context) (string, error) {
	prompt, _, err := s.assemble(ctx, 0)
	return prompt, err
}

func (s *PromptAssemblerImpl) PreparePromptExcluding(ctx context.Context, exampleID int64) (string, error) {
	prompt, _, err := s.assemble(ctx, exampleID)
	return prompt, err
}

func (s *PromptAssemblerImpl) Preview(ctx context.Context) (*models.PromptPreview, error) {
	prompt, exampleCount, err := s.assemble(ctx, 0)
	if err != nil {
		return nil, err
	}
	return &models.PromptPreview{
		Prompt:       prompt,
		ExampleCount: exampleCount,
		TokenCount:   s.tokens.Count(prompt),
	}, nil
}

// assemble собирает промпт; excludeID > 0 исключает пример с этим id.
func (s *PromptAssemblerImpl) assemble(ctx context.Context, excludeID int64) (string, int, error) {
	active, err := s.prompts.GetLatest(ctx, s.db)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Warn("No system prompt configured")
			return "", 0, models.ErrSystemPromptNotConfigured
		}
		return "", 0, fmt.Errorf("failed to get active system prompt: %w", err)
	}

	examples, err := s.examples.ListInCreationOrder(ctx, s.db)
	if err != nil {
		return "", 0, fmt.Errorf("failed to list examples for prompt: %w", err)
	}
	if excludeID > 0 {
		examples = withoutExample(examples, excludeID)
	}

	prompt := FormatPrompt(s.format, active.Content, examples)
	promptSizeBytes.Observe(float64(len(prompt)))
	s.logger.Debug("System prompt assembled",
		zap.Int64("systemPromptID", active.ID),
		zap.Int("examples", len(examples)),
		zap.Int("bytes", len(prompt)),
	)
	return prompt, len(examples), nil
}

// FormatPrompt дописывает к содержимому промпта блок примеров.
// Без примеров содержимое возвращается как есть.
func FormatPrompt(format config.PromptConfig, content string, examples []*models.Example) string {
	if len(examples) == 0 {
		return content
	}

	var b strings.Builder
	b.WriteString(content)
	b.WriteString("\n\n")
	b.WriteString(format.ExamplesHeader)
	b.WriteString("\n")
	for _, ex := range examples {
		b.WriteString(format.InputLabel)
		b.WriteString("\n")
		b.WriteString(ex.Input)
		b.WriteString("\n")
		b.WriteString(format.OutputLabel)
		b.WriteString("\n")
		b.WriteString(ex.Output)
		b.WriteString("\n")
	}
	return b.String()
}

func withoutExample(examples []*models.Example, id int64) []*models.Example {
	filtered := make([]*models.Example, 0, len(examples))
	for _, ex := range examples {
		if ex.ID != id {
			filtered = append(filtered, ex)
		}
	}
	return filtered
}
