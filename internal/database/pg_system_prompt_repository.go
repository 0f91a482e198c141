package database

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"

	"timeless-server/internal/interfaces"
	"timeless-server/internal/models"
)

var _ interfaces.SystemPromptRepository = (*pgSystemPromptRepository)(nil)

const systemPromptFields = `id, content, created_at`

const (
	createSystemPromptQuery    = `INSERT INTO system_prompts (content) VALUES ($1) RETURNING ` + systemPromptFields
	getLatestSystemPromptQuery = `SELECT ` + systemPromptFields + ` FROM system_prompts ORDER BY created_at DESC, id DESC LIMIT 1`
	listSystemPromptsQuery     = `SELECT ` + systemPromptFields + ` FROM system_prompts ORDER BY created_at DESC, id DESC`
	deleteSystemPromptQuery    = `DELETE FROM system_prompts WHERE id = $1`
)

type pgSystemPromptRepository struct {
	logger *zap.Logger
}

// NewPgSystemPromptRepository создает репозиторий системных промптов.
func NewPgSystemPromptRepository(logger *zap.Logger) interfaces.SystemPromptRepository {
	return &pgSystemPromptRepository{
		logger: logger.Named("SystemPromptRepo"),
	}
}

func (r *pgSystemPromptRepository) Create(ctx context.Context, querier interfaces.DBTX, content string) (*models.SystemPrompt, error) {
	var prompt models.SystemPrompt
	if err := pgxscan.Get(ctx, querier, &prompt, createSystemPromptQuery, content); err != nil {
		if isUntranslatableCharacter(err) {
			return nil, models.NewValidationError(nulTextMessage)
		}
		r.logger.Error("Error creating system prompt", zap.Error(err))
		return nil, fmt.Errorf("failed to create system prompt: %w", err)
	}
	r.logger.Info("System prompt created", zap.Int64("id", prompt.ID))
	return &prompt, nil
}

func (r *pgSystemPromptRepository) GetLatest(ctx context.Context, querier interfaces.DBTX) (*models.SystemPrompt, error) {
	var prompt models.SystemPrompt
	if err := pgxscan.Get(ctx, querier, &prompt, getLatestSystemPromptQuery); err != nil {
		if isNoRows(err) {
			r.logger.Warn("No system prompt configured")
			return nil, models.ErrNotFound
		}
		r.logger.Error("Error getting latest system prompt", zap.Error(err))
		return nil, fmt.Errorf("failed to get latest system prompt: %w", err)
	}
	return &prompt, nil
}

func (r *pgSystemPromptRepository) ListAll(ctx context.Context, querier interfaces.DBTX) ([]*models.SystemPrompt, error) {
	prompts := make([]*models.SystemPrompt, 0)
	if err := pgxscan.Select(ctx, querier, &prompts, listSystemPromptsQuery); err != nil {
		r.logger.Error("Error listing system prompts", zap.Error(err))
		return nil, fmt.Errorf("failed to list system prompts: %w", err)
	}
	return prompts, nil
}

func (r *pgSystemPromptRepository) DeleteByID(ctx context.Context, querier interfaces.DBTX, id int64) error {
	log := r.logger.With(zap.Int64("id", id))
	commandTag, err := querier.Exec(ctx, deleteSystemPromptQuery, id)
	if err != nil {
		log.Error("Error deleting system prompt", zap.Error(err))
		return fmt.Errorf("failed to delete system prompt %d: %w", id, err)
	}
	if commandTag.RowsAffected() == 0 {
		log.Warn("System prompt not found for deletion")
		return models.ErrNotFound
	}
	log.Info("System prompt deleted")
	return nil
}
