package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"timeless-server/internal/ai"
	"timeless-server/internal/mocks"
	"timeless-server/internal/models"
	"timeless-server/internal/service"
)

func TestProcessInput(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the single completion", func(t *testing.T) {
		assembler := new(mocks.MockPromptAssembler)
		client := mocks.NewMockCompletionClient(t)
		svc := service.NewTextService(assembler, client, zap.NewNop())

		assembler.On("PreparePrompt", ctx).Return("Translate.", nil).Once()
		client.On("GenerateCompletions", ctx, "hello", "Translate.", 1).Return([]string{"witaj"}, nil).Once()

		text, err := svc.ProcessInput(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, "witaj", text)
	})

	t.Run("Empty input", func(t *testing.T) {
		assembler := new(mocks.MockPromptAssembler)
		client := mocks.NewMockCompletionClient(t)
		svc := service.NewTextService(assembler, client, zap.NewNop())

		_, err := svc.ProcessInput(ctx, "  ")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		assembler.AssertNotCalled(t, "PreparePrompt", mock.Anything)
	})

	t.Run("No system prompt does not call the provider", func(t *testing.T) {
		assembler := new(mocks.MockPromptAssembler)
		client := mocks.NewMockCompletionClient(t)
		svc := service.NewTextService(assembler, client, zap.NewNop())

		assembler.On("PreparePrompt", ctx).Return("", models.ErrSystemPromptNotConfigured).Once()

		_, err := svc.ProcessInput(ctx, "hello")
		assert.ErrorIs(t, err, models.ErrSystemPromptNotConfigured)
		client.AssertNotCalled(t, "GenerateCompletions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Provider failure", func(t *testing.T) {
		assembler := new(mocks.MockPromptAssembler)
		client := mocks.NewMockCompletionClient(t)
		svc := service.NewTextService(assembler, client, zap.NewNop())

		assembler.On("PreparePrompt", ctx).Return("Translate.", nil).Once()
		client.On("GenerateCompletions", ctx, "hello", "Translate.", 1).
			Return(nil, fmt.Errorf("%w: timeout", ai.ErrGenerationFailed)).Once()

		_, err := svc.ProcessInput(ctx, "hello")
		assert.ErrorIs(t, err, ai.ErrGenerationFailed)
	})
}
