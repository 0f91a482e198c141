package database

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"

	"timeless-server/internal/interfaces"
	"timeless-server/internal/models"
)

var _ interfaces.ProposedExampleRepository = (*pgProposedExampleRepository)(nil)

const proposedExampleFields = `id, input, completions, created_at, updated_at`

const (
	createProposedExampleQuery       = `INSERT INTO proposed_examples (input, completions) VALUES ($1, $2) RETURNING ` + proposedExampleFields
	getProposedExampleByIDQuery      = `SELECT ` + proposedExampleFields + ` FROM proposed_examples WHERE id = $1`
	getProposedExampleForUpdateQuery = getProposedExampleByIDQuery + ` FOR UPDATE`
	listProposedExamplesQuery        = `SELECT ` + proposedExampleFields + ` FROM proposed_examples ORDER BY created_at DESC, id DESC`
	updateProposedCompletionsQuery   = `UPDATE proposed_examples SET completions = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + proposedExampleFields
	deleteProposedExampleQuery       = `DELETE FROM proposed_examples WHERE id = $1`
)

type pgProposedExampleRepository struct {
	logger *zap.Logger
}

// NewPgProposedExampleRepository создает репозиторий предложенных примеров.
func NewPgProposedExampleRepository(logger *zap.Logger) interfaces.ProposedExampleRepository {
	return &pgProposedExampleRepository{
		logger: logger.Named("ProposedExampleRepo"),
	}
}

func (r *pgProposedExampleRepository) Create(ctx context.Context, querier interfaces.DBTX, input string, completions []string) (*models.ProposedExample, error) {
	var proposal models.ProposedExample
	if err := pgxscan.Get(ctx, querier, &proposal, createProposedExampleQuery, input, completions); err != nil {
		if isUntranslatableCharacter(err) {
			return nil, models.NewValidationError(nulTextMessage)
		}
		r.logger.Error("Error creating proposed example", zap.Error(err))
		return nil, fmt.Errorf("failed to create proposed example: %w", err)
	}
	r.logger.Info("Proposed example created", zap.Int64("id", proposal.ID), zap.Int("completions", len(proposal.Completions)))
	return &proposal, nil
}

func (r *pgProposedExampleRepository) GetByID(ctx context.Context, querier interfaces.DBTX, id int64) (*models.ProposedExample, error) {
	return r.get(ctx, querier, getProposedExampleByIDQuery, id)
}

func (r *pgProposedExampleRepository) GetByIDForUpdate(ctx context.Context, querier interfaces.DBTX, id int64) (*models.ProposedExample, error) {
	return r.get(ctx, querier, getProposedExampleForUpdateQuery, id)
}

func (r *pgProposedExampleRepository) get(ctx context.Context, querier interfaces.DBTX, query string, id int64) (*models.ProposedExample, error) {
	var proposal models.ProposedExample
	if err := pgxscan.Get(ctx, querier, &proposal, query, id); err != nil {
		if isNoRows(err) {
			r.logger.Warn("Proposed example not found", zap.Int64("id", id))
			return nil, models.ErrNotFound
		}
		r.logger.Error("Error getting proposed example", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get proposed example %d: %w", id, err)
	}
	return &proposal, nil
}

func (r *pgProposedExampleRepository) ListAll(ctx context.Context, querier interfaces.DBTX) ([]*models.ProposedExample, error) {
	proposals := make([]*models.ProposedExample, 0)
	if err := pgxscan.Select(ctx, querier, &proposals, listProposedExamplesQuery); err != nil {
		r.logger.Error("Error listing proposed examples", zap.Error(err))
		return nil, fmt.Errorf("failed to list proposed examples: %w", err)
	}
	return proposals, nil
}

func (r *pgProposedExampleRepository) UpdateCompletions(ctx context.Context, querier interfaces.DBTX, id int64, completions []string) (*models.ProposedExample, error) {
	var proposal models.ProposedExample
	if err := pgxscan.Get(ctx, querier, &proposal, updateProposedCompletionsQuery, id, completions); err != nil {
		if isNoRows(err) {
			r.logger.Warn("Proposed example not found for update", zap.Int64("id", id))
			return nil, models.ErrNotFound
		}
		if isUntranslatableCharacter(err) {
			return nil, models.NewValidationError(nulTextMessage)
		}
		r.logger.Error("Error updating proposed example completions", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update proposed example %d: %w", id, err)
	}
	r.logger.Info("Proposed example regenerated", zap.Int64("id", id))
	return &proposal, nil
}

func (r *pgProposedExampleRepository) DeleteByID(ctx context.Context, querier interfaces.DBTX, id int64) error {
	log := r.logger.With(zap.Int64("id", id))
	commandTag, err := querier.Exec(ctx, deleteProposedExampleQuery, id)
	if err != nil {
		log.Error("Error deleting proposed example", zap.Error(err))
		return fmt.Errorf("failed to delete proposed example %d: %w", id, err)
	}
	if commandTag.RowsAffected() == 0 {
		log.Warn("Proposed example not found for deletion")
		return models.ErrNotFound
	}
	log.Info("Proposed example deleted")
	return nil
}
