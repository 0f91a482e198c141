package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"timeless-server/internal/config"
	"timeless-server/internal/mocks"
	"timeless-server/internal/models"
	"timeless-server/internal/service"
)

var englishFormat = config.PromptConfig{
	ExamplesHeader: "## Examples:",
	InputLabel:     "### Input:",
	OutputLabel:    "### Output:",
}

type lenCounter struct{}

func (lenCounter) Count(text string) int { return len(text) }

func TestFormatPrompt(t *testing.T) {
	t.Run("No examples returns content unchanged", func(t *testing.T) {
		assert.Equal(t, "Translate.", service.FormatPrompt(englishFormat, "Translate.", nil))
	})

	t.Run("Single example", func(t *testing.T) {
		got := service.FormatPrompt(englishFormat, "Translate.", []*models.Example{{Input: "hi", Output: "hello"}})
		assert.Equal(t, "Translate.\n\n## Examples:\n### Input:\nhi\n### Output:\nhello\n", got)
	})

	t.Run("Examples keep given order", func(t *testing.T) {
		got := service.FormatPrompt(englishFormat, "P", []*models.Example{
			{Input: "a", Output: "1"},
			{Input: "b", Output: "2"},
		})
		assert.Equal(t, "P\n\n## Examples:\n### Input:\na\n### Output:\n1\n### Input:\nb\n### Output:\n2\n", got)
	})

	t.Run("Custom labels", func(t *testing.T) {
		format := config.PromptConfig{ExamplesHeader: "## Przykłady:", InputLabel: "### Wejście:", OutputLabel: "### Wyjście:"}
		got := service.FormatPrompt(format, "P", []*models.Example{{Input: "a", Output: "b"}})
		assert.Equal(t, "P\n\n## Przykłady:\n### Wejście:\na\n### Wyjście:\nb\n", got)
	})
}

func TestPromptAssembler(t *testing.T) {
	ctx := context.Background()
	db := &mocks.StubDBTX{Name: "pool"}

	newAssembler := func() (*service.PromptAssemblerImpl, *mocks.MockSystemPromptRepository, *mocks.MockExampleRepository) {
		prompts := new(mocks.MockSystemPromptRepository)
		examples := new(mocks.MockExampleRepository)
		return service.NewPromptAssembler(db, prompts, examples, englishFormat, lenCounter{}, zap.NewNop()), prompts, examples
	}

	t.Run("Uses latest prompt and examples in creation order", func(t *testing.T) {
		assembler, prompts, examples := newAssembler()
		prompts.On("GetLatest", ctx, db).Return(&models.SystemPrompt{ID: 2, Content: "Translate."}, nil).Once()
		examples.On("ListInCreationOrder", ctx, db).Return([]*models.Example{{ID: 1, Input: "hi", Output: "hello"}}, nil).Once()

		prompt, err := assembler.PreparePrompt(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Translate.\n\n## Examples:\n### Input:\nhi\n### Output:\nhello\n", prompt)
		prompts.AssertExpectations(t)
		examples.AssertExpectations(t)
	})

	t.Run("No prompt configured", func(t *testing.T) {
		assembler, prompts, examples := newAssembler()
		prompts.On("GetLatest", ctx, db).Return(nil, models.ErrNotFound).Once()

		_, err := assembler.PreparePrompt(ctx)
		assert.ErrorIs(t, err, models.ErrSystemPromptNotConfigured)
		examples.AssertNotCalled(t, "ListInCreationOrder")
	})

	t.Run("Repository failure is wrapped", func(t *testing.T) {
		assembler, prompts, _ := newAssembler()
		dbErr := errors.New("connection refused")
		prompts.On("GetLatest", ctx, db).Return(nil, dbErr).Once()

		_, err := assembler.PreparePrompt(ctx)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, models.ErrSystemPromptNotConfigured)
	})

	t.Run("Excluding an example", func(t *testing.T) {
		assembler, prompts, examples := newAssembler()
		prompts.On("GetLatest", ctx, db).Return(&models.SystemPrompt{Content: "P"}, nil).Once()
		examples.On("ListInCreationOrder", ctx, db).Return([]*models.Example{
			{ID: 1, Input: "a", Output: "1"},
			{ID: 2, Input: "b", Output: "2"},
		}, nil).Once()

		prompt, err := assembler.PreparePromptExcluding(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "P\n\n## Examples:\n### Input:\nb\n### Output:\n2\n", prompt)
	})

	t.Run("Excluding the only example leaves raw content", func(t *testing.T) {
		assembler, prompts, examples := newAssembler()
		prompts.On("GetLatest", ctx, db).Return(&models.SystemPrompt{Content: "P"}, nil).Once()
		examples.On("ListInCreationOrder", ctx, db).Return([]*models.Example{{ID: 5, Input: "a", Output: "1"}}, nil).Once()

		prompt, err := assembler.PreparePromptExcluding(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "P", prompt)
	})

	t.Run("Preview reports example and token counts", func(t *testing.T) {
		assembler, prompts, examples := newAssembler()
		prompts.On("GetLatest", ctx, db).Return(&models.SystemPrompt{Content: "P"}, nil).Once()
		examples.On("ListInCreationOrder", ctx, db).Return([]*models.Example{{ID: 1, Input: "a", Output: "1"}}, nil).Once()

		preview, err := assembler.Preview(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, preview.ExampleCount)
		assert.Equal(t, len(preview.Prompt), preview.TokenCount)
	})
}
