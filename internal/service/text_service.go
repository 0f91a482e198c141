package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"timeless-server/internal/ai"
	"timeless-server/internal/models"
)

// TextService обрабатывает пользовательский ввод на главной странице.
type TextService interface {
	ProcessInput(ctx context.Context, input string) (string, error)
}

type TextServiceImpl struct {
	assembler PromptAssembler
	client    ai.CompletionClient
	logger    *zap.Logger
}

func NewTextService(assembler PromptAssembler, client ai.CompletionClient, logger *zap.Logger) *TextServiceImpl {
	return &TextServiceImpl{
		assembler: assembler,
		client:    client,
		logger:    logger.Named("TextService"),
	}
}

// ProcessInput собирает промпт и запрашивает один вариант ответа.
func (s *TextServiceImpl) ProcessInput(ctx context.Context, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", models.NewValidationError(msgInputRequired)
	}

	systemPrompt, err := s.assembler.PreparePrompt(ctx)
	if err != nil {
		processInputTotal.WithLabelValues("prompt_error").Inc()
		return "", err
	}

	completions, err := s.client.GenerateCompletions(ctx, input, systemPrompt, 1)
	if err != nil {
		processInputTotal.WithLabelValues("generation_error").Inc()
		s.logger.Error("Failed to process input", zap.Int("inputBytes", len(input)), zap.Error(err))
		return "", fmt.Errorf("failed to process input: %w", err)
	}

	processInputTotal.WithLabelValues("success").Inc()
	return completions[0], nil
}
