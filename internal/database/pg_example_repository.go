package database

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"

	"timeless-server/internal/interfaces"
	"timeless-server/internal/models"
)

var _ interfaces.ExampleRepository = (*pgExampleRepository)(nil)

const exampleFields = `id, input, output, created_at, updated_at`

const (
	createExampleQuery         = `INSERT INTO examples (input, output) VALUES ($1, $2) RETURNING ` + exampleFields
	getExampleByIDQuery        = `SELECT ` + exampleFields + ` FROM examples WHERE id = $1`
	getExampleForUpdateQuery   = getExampleByIDQuery + ` FOR UPDATE`
	listExamplesQuery          = `SELECT ` + exampleFields + ` FROM examples ORDER BY created_at DESC, id DESC`
	listExamplesForPromptQuery = `SELECT ` + exampleFields + ` FROM examples ORDER BY created_at ASC, id ASC`
	updateExampleQuery         = `UPDATE examples SET input = $2, output = $3, updated_at = NOW() WHERE id = $1 RETURNING ` + exampleFields
	deleteExampleQuery         = `DELETE FROM examples WHERE id = $1`
	examplesRequiredMessage    = "Both input and output are required."
)

type pgExampleRepository struct {
	logger *zap.Logger
}

// NewPgExampleRepository создает репозиторий принятых примеров.
func NewPgExampleRepository(logger *zap.Logger) interfaces.ExampleRepository {
	return &pgExampleRepository{
		logger: logger.Named("ExampleRepo"),
	}
}

func (r *pgExampleRepository) Create(ctx context.Context, querier interfaces.DBTX, input, output string) (*models.Example, error) {
	var example models.Example
	if err := pgxscan.Get(ctx, querier, &example, createExampleQuery, input, output); err != nil {
		if isCheckViolation(err) {
			return nil, models.NewValidationError(examplesRequiredMessage)
		}
		if isUntranslatableCharacter(err) {
			return nil, models.NewValidationError(nulTextMessage)
		}
		r.logger.Error("Error creating example", zap.Error(err))
		return nil, fmt.Errorf("failed to create example: %w", err)
	}
	r.logger.Info("Example created", zap.Int64("id", example.ID))
	return &example, nil
}

func (r *pgExampleRepository) GetByID(ctx context.Context, querier interfaces.DBTX, id int64) (*models.Example, error) {
	return r.get(ctx, querier, getExampleByIDQuery, id)
}

func (r *pgExampleRepository) GetByIDForUpdate(ctx context.Context, querier interfaces.DBTX, id int64) (*models.Example, error) {
	return r.get(ctx, querier, getExampleForUpdateQuery, id)
}

func (r *pgExampleRepository) get(ctx context.Context, querier interfaces.DBTX, query string, id int64) (*models.Example, error) {
	var example models.Example
	if err := pgxscan.Get(ctx, querier, &example, query, id); err != nil {
		if isNoRows(err) {
			r.logger.Warn("Example not found", zap.Int64("id", id))
			return nil, models.ErrNotFound
		}
		r.logger.Error("Error getting example by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get example %d: %w", id, err)
	}
	return &example, nil
}

func (r *pgExampleRepository) ListAll(ctx context.Context, querier interfaces.DBTX) ([]*models.Example, error) {
	return r.list(ctx, querier, listExamplesQuery)
}

func (r *pgExampleRepository) ListInCreationOrder(ctx context.Context, querier interfaces.DBTX) ([]*models.Example, error) {
	return r.list(ctx, querier, listExamplesForPromptQuery)
}

func (r *pgExampleRepository) list(ctx context.Context, querier interfaces.DBTX, query string) ([]*models.Example, error) {
	examples := make([]*models.Example, 0)
	if err := pgxscan.Select(ctx, querier, &examples, query); err != nil {
		r.logger.Error("Error listing examples", zap.Error(err))
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}
	return examples, nil
}

func (r *pgExampleRepository) Update(ctx context.Context, querier interfaces.DBTX, id int64, input, output string) (*models.Example, error) {
	var example models.Example
	if err := pgxscan.Get(ctx, querier, &example, updateExampleQuery, id, input, output); err != nil {
		if isNoRows(err) {
			r.logger.Warn("Example not found for update", zap.Int64("id", id))
			return nil, models.ErrNotFound
		}
		if isCheckViolation(err) {
			return nil, models.NewValidationError(examplesRequiredMessage)
		}
		if isUntranslatableCharacter(err) {
			return nil, models.NewValidationError(nulTextMessage)
		}
		r.logger.Error("Error updating example", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update example %d: %w", id, err)
	}
	return &example, nil
}

func (r *pgExampleRepository) DeleteByID(ctx context.Context, querier interfaces.DBTX, id int64) error {
	log := r.logger.With(zap.Int64("id", id))
	commandTag, err := querier.Exec(ctx, deleteExampleQuery, id)
	if err != nil {
		log.Error("Error deleting example", zap.Error(err))
		return fmt.Errorf("failed to delete example %d: %w", id, err)
	}
	if commandTag.RowsAffected() == 0 {
		log.Warn("Example not found for deletion")
		return models.ErrNotFound
	}
	log.Info("Example deleted")
	return nil
}
