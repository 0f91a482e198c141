package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"timeless-server/internal/ai"
	"timeless-server/internal/interfaces"
	"timeless-server/internal/models"
)

const (
	sourceSingle     = "single"
	sourceBatch      = "batch"
	sourceRegenerate = "regenerate"
	sourceExample    = "example"

	batchGenerationFailedMessage = "An error occurred while generating completions."
	batchInternalErrorMessage    = "Failed to generate proposed example."
	batchCancelledMessage        = "Request cancelled."
)

// ProposedExampleService реализует жизненный цикл предложенных примеров:
// генерация, пакетная генерация, перенос в принятые, перегенерация и удаление.
type ProposedExampleService interface {
	ListProposedExamples(ctx context.Context) ([]*models.ProposedExample, error)
	GetProposedExample(ctx context.Context, id int64) (*models.ProposedExample, error)

	// Generate создает предложенный пример с models.DefaultCandidateCount вариантами.
	Generate(ctx context.Context, input string) (*models.ProposedExample, error)

	// GenerateBatch обрабатывает фразы последовательно и возвращает результат по каждой.
	// Пакет длиннее maxBatchSize (если он > 0) отклоняется до обращения к провайдеру.
	// Ошибка конфигурации (нет системного промпта) прерывает весь пакет.
	GenerateBatch(ctx context.Context, inputs []string) ([]models.BatchItemResult, error)

	// Promote в одной транзакции создает пример из выбранного варианта и удаляет предложение.
	Promote(ctx context.Context, id int64, completion string) (*models.Example, error)

	// Regenerate заменяет варианты новыми, сохраняя id. При ошибке генерации старые варианты остаются.
	Regenerate(ctx context.Context, id int64) (*models.ProposedExample, error)

	Discard(ctx context.Context, id int64) error

	// RegenerateExample возвращает принятый пример на проверку: генерирует новые варианты
	// и в одной транзакции удаляет пример и создает предложение. При ошибке генерации пример не меняется.
	RegenerateExample(ctx context.Context, exampleID int64) (*models.ProposedExample, error)
}

type ProposedExampleServiceImpl struct {
	db             interfaces.DBTX
	txManager      interfaces.TxManager
	proposals      interfaces.ProposedExampleRepository
	examples       interfaces.ExampleRepository
	assembler      PromptAssembler
	client         ai.CompletionClient
	publisher      interfaces.ContentEventPublisher
	candidateCount int
	maxBatchSize   int
	logger         *zap.Logger
}

func NewProposedExampleService(
	db interfaces.DBTX,
	txManager interfaces.TxManager,
	proposals interfaces.ProposedExampleRepository,
	examples interfaces.ExampleRepository,
	assembler PromptAssembler,
	client ai.CompletionClient,
	publisher interfaces.ContentEventPublisher,
	maxBatchSize int,
	logger *zap.Logger,
) *ProposedExampleServiceImpl {
	return &ProposedExampleServiceImpl{
		db:             db,
		txManager:      txManager,
		proposals:      proposals,
		examples:       examples,
		assembler:      assembler,
		client:         client,
		publisher:      publisher,
		candidateCount: models.DefaultCandidateCount,
		maxBatchSize:   maxBatchSize,
		logger:         logger.Named("ProposedExampleService"),
	}
}

func (s *ProposedExampleServiceImpl) ListProposedExamples(ctx context.Context) ([]*models.ProposedExample, error) {
	proposals, err := s.proposals.ListAll(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposed examples: %w", err)
	}
	return proposals, nil
}

func (s *ProposedExampleServiceImpl) GetProposedExample(ctx context.Context, id int64) (*models.ProposedExample, error) {
	return s.proposals.GetByID(ctx, s.db, id)
}

func (s *ProposedExampleServiceImpl) Generate(ctx context.Context, input string) (*models.ProposedExample, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, models.NewValidationError(msgInputRequired)
	}
	if containsNUL(input) {
		return nil, models.NewValidationError(msgNulCharacter)
	}
	return s.generate(ctx, input, sourceSingle)
}

func (s *ProposedExampleServiceImpl) generate(ctx context.Context, input, source string) (*models.ProposedExample, error) {
	completions, err := s.completionsFor(ctx, input, 0)
	if err != nil {
		proposalsGeneratedTotal.WithLabelValues(source, "error").Inc()
		return nil, err
	}

	proposal, err := s.proposals.Create(ctx, s.db, input, completions)
	if err != nil {
		proposalsGeneratedTotal.WithLabelValues(source, "error").Inc()
		return nil, fmt.Errorf("failed to save proposed example: %w", err)
	}
	proposalsGeneratedTotal.WithLabelValues(source, "success").Inc()

	publishEvent(ctx, s.publisher, s.logger, interfaces.ContentEvent{
		EventType: interfaces.ContentEventCreated,
		Entity:    interfaces.EntityProposedExample,
		ID:        proposal.ID,
	})
	return proposal, nil
}

// completionsFor собирает промпт (без примера excludeExampleID, если он > 0) и запрашивает варианты.
func (s *ProposedExampleServiceImpl) completionsFor(ctx context.Context, input string, excludeExampleID int64) ([]string, error) {
	var (
		systemPrompt string
		err          error
	)
	if excludeExampleID > 0 {
		systemPrompt, err = s.assembler.PreparePromptExcluding(ctx, excludeExampleID)
	} else {
		systemPrompt, err = s.assembler.PreparePrompt(ctx)
	}
	if err != nil {
		return nil, err
	}

	completions, err := s.client.GenerateCompletions(ctx, input, systemPrompt, s.candidateCount)
	if err != nil {
		s.logger.Error("Failed to generate completions", zap.Int("inputBytes", len(input)), zap.Error(err))
		return nil, fmt.Errorf("failed to generate completions: %w", err)
	}
	return completions, nil
}

func (s *ProposedExampleServiceImpl) GenerateBatch(ctx context.Context, inputs []string) ([]models.BatchItemResult, error) {
	phrases := NormalizePhrases(inputs)
	if len(phrases) == 0 {
		return nil, models.NewValidationError(msgNoBatchInputs)
	}
	if s.maxBatchSize > 0 && len(phrases) > s.maxBatchSize {
		return nil, models.NewValidationError(fmt.Sprintf(msgTooManyBatchInputs, s.maxBatchSize))
	}
	if containsNUL(phrases...) {
		return nil, models.NewValidationError(msgNulCharacter)
	}

	s.logger.Info("Starting batch generation", zap.Int("phrases", len(phrases)))
	results := make([]models.BatchItemResult, 0, len(phrases))
	for i, phrase := range phrases {
		if ctx.Err() != nil {
			s.logger.Warn("Batch generation cancelled", zap.Int("processed", i), zap.Int("phrases", len(phrases)))
			for _, rest := range phrases[i:] {
				results = append(results, models.BatchItemResult{Input: rest, Error: batchCancelledMessage})
			}
			break
		}

		proposal, err := s.generate(ctx, phrase, sourceBatch)
		if err != nil {
			if errors.Is(err, models.ErrSystemPromptNotConfigured) {
				return nil, err
			}
			s.logger.Warn("Batch phrase failed", zap.Int("index", i), zap.Error(err))
			results = append(results, models.BatchItemResult{Input: phrase, Error: batchErrorMessage(err)})
			continue
		}
		results = append(results, models.BatchItemResult{Input: phrase, ProposedExample: proposal})
	}
	return results, nil
}

func batchErrorMessage(err error) string {
	if errors.Is(err, ai.ErrGenerationFailed) {
		return batchGenerationFailedMessage
	}
	return batchInternalErrorMessage
}

func (s *ProposedExampleServiceImpl) Promote(ctx context.Context, id int64, completion string) (*models.Example, error) {
	if isBlank(completion) {
		return nil, models.NewValidationError(msgCompletionRequired)
	}
	if containsNUL(completion) {
		return nil, models.NewValidationError(msgNulCharacter)
	}

	var example *models.Example
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context, tx interfaces.DBTX) error {
		proposal, err := s.proposals.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		example, err = s.examples.Create(ctx, tx, proposal.Input, completion)
		if err != nil {
			return err
		}
		return s.proposals.DeleteByID(ctx, tx, proposal.ID)
	})
	if err != nil {
		return nil, err
	}

	examplesPromotedTotal.Inc()
	s.logger.Info("Proposed example promoted", zap.Int64("proposalID", id), zap.Int64("exampleID", example.ID))
	publishEvent(ctx, s.publisher, s.logger, interfaces.ContentEvent{
		EventType: interfaces.ContentEventPromoted,
		Entity:    interfaces.EntityExample,
		ID:        example.ID,
		SourceID:  id,
	})
	return example, nil
}

func (s *ProposedExampleServiceImpl) Regenerate(ctx context.Context, id int64) (*models.ProposedExample, error) {
	proposal, err := s.proposals.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	completions, err := s.completionsFor(ctx, proposal.Input, 0)
	if err != nil {
		proposalsGeneratedTotal.WithLabelValues(sourceRegenerate, "error").Inc()
		return nil, err
	}

	updated, err := s.proposals.UpdateCompletions(ctx, s.db, id, completions)
	if err != nil {
		proposalsGeneratedTotal.WithLabelValues(sourceRegenerate, "error").Inc()
		return nil, err
	}
	proposalsGeneratedTotal.WithLabelValues(sourceRegenerate, "success").Inc()

	publishEvent(ctx, s.publisher, s.logger, interfaces.ContentEvent{
		EventType: interfaces.ContentEventUpdated,
		Entity:    interfaces.EntityProposedExample,
		ID:        updated.ID,
	})
	return updated, nil
}

func (s *ProposedExampleServiceImpl) Discard(ctx context.Context, id int64) error {
	if err := s.proposals.DeleteByID(ctx, s.db, id); err != nil {
		return err
	}

	publishEvent(ctx, s.publisher, s.logger, interfaces.ContentEvent{
		EventType: interfaces.ContentEventDeleted,
		Entity:    interfaces.EntityProposedExample,
		ID:        id,
	})
	return nil
}

func (s *ProposedExampleServiceImpl) RegenerateExample(ctx context.Context, exampleID int64) (*models.ProposedExample, error) {
	example, err := s.examples.GetByID(ctx, s.db, exampleID)
	if err != nil {
		return nil, err
	}

	completions, err := s.completionsFor(ctx, example.Input, example.ID)
	if err != nil {
		proposalsGeneratedTotal.WithLabelValues(sourceExample, "error").Inc()
		return nil, err
	}

	var proposal *models.ProposedExample
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context, tx interfaces.DBTX) error {
		if err := s.examples.DeleteByID(ctx, tx, example.ID); err != nil {
			return err
		}
		created, err := s.proposals.Create(ctx, tx, example.Input, completions)
		if err != nil {
			return err
		}
		proposal = created
		return nil
	})
	if err != nil {
		proposalsGeneratedTotal.WithLabelValues(sourceExample, "error").Inc()
		return nil, err
	}
	proposalsGeneratedTotal.WithLabelValues(sourceExample, "success").Inc()

	s.logger.Info("Example returned for review", zap.Int64("exampleID", exampleID), zap.Int64("proposalID", proposal.ID))
	publishEvent(ctx, s.publisher, s.logger, interfaces.ContentEvent{
		EventType: interfaces.ContentEventDeleted,
		Entity:    interfaces.EntityExample,
		ID:        exampleID,
	})
	publishEvent(ctx, s.publisher, s.logger, interfaces.ContentEvent{
		EventType: interfaces.ContentEventCreated,
		Entity:    interfaces.EntityProposedExample,
		ID:        proposal.ID,
	})
	return proposal, nil
}

// NormalizePhrases обрезает фразы и пропускает пустые.
func NormalizePhrases(inputs []string) []string {
	phrases := make([]string, 0, len(inputs))
	for _, input := range inputs {
		if phrase := strings.TrimSpace(input); phrase != "" {
			phrases = append(phrases, phrase)
		}
	}
	return phrases
}

// SplitLines разбивает текст "по фразе на строку".
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
