package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"timeless-server/internal/interfaces"
	"timeless-server/internal/models"
)

// MockSystemPromptRepository is a mock type for the SystemPromptRepository type
type MockSystemPromptRepository struct {
	mock.Mock
}

var _ interfaces.SystemPromptRepository = (*MockSystemPromptRepository)(nil)

func (_m *MockSystemPromptRepository) Create(ctx context.Context, querier interfaces.DBTX, content string) (*models.SystemPrompt, error) {
	ret := _m.Called(ctx, querier, content)
	return systemPromptOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockSystemPromptRepository) GetLatest(ctx context.Context, querier interfaces.DBTX) (*models.SystemPrompt, error) {
	ret := _m.Called(ctx, querier)
	return systemPromptOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockSystemPromptRepository) ListAll(ctx context.Context, querier interfaces.DBTX) ([]*models.SystemPrompt, error) {
	ret := _m.Called(ctx, querier)
	var r0 []*models.SystemPrompt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.SystemPrompt)
	}
	return r0, ret.Error(1)
}

func (_m *MockSystemPromptRepository) DeleteByID(ctx context.Context, querier interfaces.DBTX, id int64) error {
	ret := _m.Called(ctx, querier, id)
	return ret.Error(0)
}

func systemPromptOrNil(v interface{}) *models.SystemPrompt {
	if v == nil {
		return nil
	}
	return v.(*models.SystemPrompt)
}

// MockExampleRepository is a mock type for the ExampleRepository type
type MockExampleRepository struct {
	mock.Mock
}

var _ interfaces.ExampleRepository = (*MockExampleRepository)(nil)

func (_m *MockExampleRepository) Create(ctx context.Context, querier interfaces.DBTX, input, output string) (*models.Example, error) {
	ret := _m.Called(ctx, querier, input, output)
	return exampleOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockExampleRepository) GetByID(ctx context.Context, querier interfaces.DBTX, id int64) (*models.Example, error) {
	ret := _m.Called(ctx, querier, id)
	return exampleOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockExampleRepository) GetByIDForUpdate(ctx context.Context, querier interfaces.DBTX, id int64) (*models.Example, error) {
	ret := _m.Called(ctx, querier, id)
	return exampleOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockExampleRepository) ListAll(ctx context.Context, querier interfaces.DBTX) ([]*models.Example, error) {
	ret := _m.Called(ctx, querier)
	return examplesOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockExampleRepository) ListInCreationOrder(ctx context.Context, querier interfaces.DBTX) ([]*models.Example, error) {
	ret := _m.Called(ctx, querier)
	return examplesOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockExampleRepository) Update(ctx context.Context, querier interfaces.DBTX, id int64, input, output string) (*models.Example, error) {
	ret := _m.Called(ctx, querier, id, input, output)
	return exampleOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockExampleRepository) DeleteByID(ctx context.Context, querier interfaces.DBTX, id int64) error {
	ret := _m.Called(ctx, querier, id)
	return ret.Error(0)
}

func exampleOrNil(v interface{}) *models.Example {
	if v == nil {
		return nil
	}
	return v.(*models.Example)
}

func examplesOrNil(v interface{}) []*models.Example {
	if v == nil {
		return nil
	}
	return v.([]*models.Example)
}

// MockProposedExampleRepository is a mock type for the ProposedExampleRepository type
type MockProposedExampleRepository struct {
	mock.Mock
}

var _ interfaces.ProposedExampleRepository = (*MockProposedExampleRepository)(nil)

func (_m *MockProposedExampleRepository) Create(ctx context.Context, querier interfaces.DBTX, input string, completions []string) (*models.ProposedExample, error) {
	ret := _m.Called(ctx, querier, input, completions)
	return proposalOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockProposedExampleRepository) GetByID(ctx context.Context, querier interfaces.DBTX, id int64) (*models.ProposedExample, error) {
	ret := _m.Called(ctx, querier, id)
	return proposalOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockProposedExampleRepository) GetByIDForUpdate(ctx context.Context, querier interfaces.DBTX, id int64) (*models.ProposedExample, error) {
	ret := _m.Called(ctx, querier, id)
	return proposalOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockProposedExampleRepository) ListAll(ctx context.Context, querier interfaces.DBTX) ([]*models.ProposedExample, error) {
	ret := _m.Called(ctx, querier)
	var r0 []*models.ProposedExample
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.ProposedExample)
	}
	return r0, ret.Error(1)
}

func (_m *MockProposedExampleRepository) UpdateCompletions(ctx context.Context, querier interfaces.DBTX, id int64, completions []string) (*models.ProposedExample, error) {
	ret := _m.Called(ctx, querier, id, completions)
	return proposalOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockProposedExampleRepository) DeleteByID(ctx context.Context, querier interfaces.DBTX, id int64) error {
	ret := _m.Called(ctx, querier, id)
	return ret.Error(0)
}

func proposalOrNil(v interface{}) *models.ProposedExample {
	if v == nil {
		return nil
	}
	return v.(*models.ProposedExample)
}

// MockSessionRepository is a mock type for the SessionRepository type
type MockSessionRepository struct {
	mock.Mock
}

var _ interfaces.SessionRepository = (*MockSessionRepository)(nil)

func (_m *MockSessionRepository) SetSession(ctx context.Context, sessionID, username string, ttl time.Duration) error {
	ret := _m.Called(ctx, sessionID, username, ttl)
	return ret.Error(0)
}

func (_m *MockSessionRepository) GetUsernameBySessionID(ctx context.Context, sessionID string) (string, error) {
	ret := _m.Called(ctx, sessionID)
	return ret.String(0), ret.Error(1)
}

func (_m *MockSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	ret := _m.Called(ctx, sessionID)
	return ret.Error(0)
}
