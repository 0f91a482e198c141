package interfaces

import (
	"context"

	"timeless-server/internal/models"
)

// SystemPromptRepository defines storage operations for system prompts.
type SystemPromptRepository interface {
	// Create inserts a new prompt. Prompts are never edited in place.
	Create(ctx context.Context, querier DBTX, content string) (*models.SystemPrompt, error)

	// GetLatest returns the active prompt (newest by creation time).
	// Returns models.ErrNotFound when the table is empty.
	GetLatest(ctx context.Context, querier DBTX) (*models.SystemPrompt, error)

	// ListAll returns all prompts, newest first.
	ListAll(ctx context.Context, querier DBTX) ([]*models.SystemPrompt, error)

	// DeleteByID removes a prompt. Returns models.ErrNotFound if it does not exist.
	DeleteByID(ctx context.Context, querier DBTX, id int64) error
}

// ExampleRepository defines storage operations for accepted examples.
type ExampleRepository interface {
	Create(ctx context.Context, querier DBTX, input, output string) (*models.Example, error)
	GetByID(ctx context.Context, querier DBTX, id int64) (*models.Example, error)

	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, querier DBTX, id int64) (*models.Example, error)

	// ListAll returns examples newest first (admin listing).
	ListAll(ctx context.Context, querier DBTX) ([]*models.Example, error)

	// ListInCreationOrder returns examples oldest first (prompt assembly order).
	ListInCreationOrder(ctx context.Context, querier DBTX) ([]*models.Example, error)

	Update(ctx context.Context, querier DBTX, id int64, input, output string) (*models.Example, error)
	DeleteByID(ctx context.Context, querier DBTX, id int64) error
}

// ProposedExampleRepository defines storage operations for unreviewed proposals.
type ProposedExampleRepository interface {
	Create(ctx context.Context, querier DBTX, input string, completions []string) (*models.ProposedExample, error)
	GetByID(ctx context.Context, querier DBTX, id int64) (*models.ProposedExample, error)

	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, querier DBTX, id int64) (*models.ProposedExample, error)

	ListAll(ctx context.Context, querier DBTX) ([]*models.ProposedExample, error)

	// UpdateCompletions overwrites the candidate list, keeping the same id.
	UpdateCompletions(ctx context.Context, querier DBTX, id int64, completions []string) (*models.ProposedExample, error)

	DeleteByID(ctx context.Context, querier DBTX, id int64) error
}
