package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"timeless-server/internal/interfaces"
	"timeless-server/internal/models"
)

// ExampleService управляет принятыми примерами.
type ExampleService interface {
	ListExamples(ctx context.Context) ([]*models.Example, error)
	GetExample(ctx context.Context, id int64) (*models.Example, error)
	CreateExample(ctx context.Context, input, output string) (*models.Example, error)
	// UpdateExample меняет только переданные поля; итоговые input и output должны быть непустыми.
	UpdateExample(ctx context.Context, id int64, update models.ExampleUpdate) (*models.Example, error)
	DeleteExample(ctx context.Context, id int64) error
}

type ExampleServiceImpl struct {
	db        interfaces.DBTX
	txManager interfaces.TxManager
	repo      interfaces.ExampleRepository
	publisher interfaces.ContentEventPublisher
	logger    *zap.Logger
}

func NewExampleService(
	db interfaces.DBTX,
	txManager interfaces.TxManager,
	repo interfaces.ExampleRepository,
	publisher interfaces.ContentEventPublisher,
	logger *zap.Logger,
) *ExampleServiceImpl {
	return &ExampleServiceImpl{
		db:        db,
		txManager: txManager,
		repo:      repo,
		publisher: publisher,
		logger:    logger.Named("ExampleService"),
	}
}

func (s *ExampleServiceImpl) ListExamples(ctx context.Context) ([]*models.Example, error) {
	examples, err := s.repo.ListAll(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}
	return examples, nil
}

func (s *ExampleServiceImpl) GetExample(ctx context.Context, id int64) (*models.Example, error) {
	return s.repo.GetByID(ctx, s.db, id)
}

func (s *ExampleServiceImpl) CreateExample(ctx context.Context, input, output string) (*models.Example, error) {
	if isBlank(input) || isBlank(output) {
		return nil, models.NewValidationError(msgInputOutputRequired)
	}
	if containsNUL(input, output) {
		return nil, models.NewValidationError(msgNulCharacter)
	}

	example, err := s.repo.Create(ctx, s.db, input, output)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.publisher, s.logger, interfaces.ContentEvent{
		EventType: interfaces.ContentEventCreated,
		Entity:    interfaces.EntityExample,
		ID:        example.ID,
	})
	return example, nil
}

func (s *ExampleServiceImpl) UpdateExample(ctx context.Context, id int64, update models.ExampleUpdate) (*models.Example, error) {
	if update.IsEmpty() {
		return nil, models.NewValidationError(msgNothingToUpdate)
	}
	if (update.Input != nil && isBlank(*update.Input)) || (update.Output != nil && isBlank(*update.Output)) {
		return nil, models.NewValidationError(msgInputOutputRequired)
	}
	if (update.Input != nil && containsNUL(*update.Input)) || (update.Output != nil && containsNUL(*update.Output)) {
		return nil, models.NewValidationError(msgNulCharacter)
	}

	var updated *models.Example
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context, tx interfaces.DBTX) error {
		// Блокировка строки: параллельные автосохранения разных полей не затирают друг друга.
		current, err := s.repo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		input, output := current.Input, current.Output
		if update.Input != nil {
			input = *update.Input
		}
		if update.Output != nil {
			output = *update.Output
		}

		updated, err = s.repo.Update(ctx, tx, id, input, output)
		return err
	})
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, s.publisher, s.logger, interfaces.ContentEvent{
		EventType: interfaces.ContentEventUpdated,
		Entity:    interfaces.EntityExample,
		ID:        updated.ID,
	})
	return updated, nil
}

func (s *ExampleServiceImpl) DeleteExample(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, s.db, id); err != nil {
		return err
	}

	publishEvent(ctx, s.publisher, s.logger, interfaces.ContentEvent{
		EventType: interfaces.ContentEventDeleted,
		Entity:    interfaces.EntityExample,
		ID:        id,
	})
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// containsNUL - PostgreSQL отклоняет байт 0x00 в TEXT (SQLSTATE 22021).
func containsNUL(values ...string) bool {
	for _, v := range values {
		if strings.IndexByte(v, 0) >= 0 {
			return true
		}
	}
	return false
}
