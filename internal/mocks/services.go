package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"timeless-server/internal/models"
	"timeless-server/internal/service"
)

// MockPromptAssembler is a mock type for the PromptAssembler type
type MockPromptAssembler struct {
	mock.Mock
}

var _ service.PromptAssembler = (*MockPromptAssembler)(nil)

func (_m *MockPromptAssembler) PreparePrompt(ctx context.Context) (string, error) {
	ret := _m.Called(ctx)
	return ret.String(0), ret.Error(1)
}

func (_m *MockPromptAssembler) PreparePromptExcluding(ctx context.Context, exampleID int64) (string, error) {
	ret := _m.Called(ctx, exampleID)
	return ret.String(0), ret.Error(1)
}

func (_m *MockPromptAssembler) Preview(ctx context.Context) (*models.PromptPreview, error) {
	ret := _m.Called(ctx)
	var r0 *models.PromptPreview
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.PromptPreview)
	}
	return r0, ret.Error(1)
}

// MockTextService is a mock type for the TextService type
type MockTextService struct {
	mock.Mock
}

var _ service.TextService = (*MockTextService)(nil)

func (_m *MockTextService) ProcessInput(ctx context.Context, input string) (string, error) {
	ret := _m.Called(ctx, input)
	return ret.String(0), ret.Error(1)
}

// MockSystemPromptService is a mock type for the SystemPromptService type
type MockSystemPromptService struct {
	mock.Mock
}

var _ service.SystemPromptService = (*MockSystemPromptService)(nil)

func (_m *MockSystemPromptService) ListPrompts(ctx context.Context) ([]*models.SystemPrompt, error) {
	ret := _m.Called(ctx)
	var r0 []*models.SystemPrompt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.SystemPrompt)
	}
	return r0, ret.Error(1)
}

func (_m *MockSystemPromptService) GetActivePrompt(ctx context.Context) (*models.SystemPrompt, error) {
	ret := _m.Called(ctx)
	return systemPromptOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockSystemPromptService) CreatePrompt(ctx context.Context, content string) (*models.SystemPrompt, error) {
	ret := _m.Called(ctx, content)
	return systemPromptOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockSystemPromptService) DeletePrompt(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// MockExampleService is a mock type for the ExampleService type
type MockExampleService struct {
	mock.Mock
}

var _ service.ExampleService = (*MockExampleService)(nil)

func (_m *MockExampleService) ListExamples(ctx context.Context) ([]*models.Example, error) {
	ret := _m.Called(ctx)
	return examplesOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockExampleService) GetExample(ctx context.Context, id int64) (*models.Example, error) {
	ret := _m.Called(ctx, id)
	return exampleOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockExampleService) CreateExample(ctx context.Context, input, output string) (*models.Example, error) {
	ret := _m.Called(ctx, input, output)
	return exampleOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockExampleService) UpdateExample(ctx context.Context, id int64, update models.ExampleUpdate) (*models.Example, error) {
	ret := _m.Called(ctx, id, update)
	return exampleOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockExampleService) DeleteExample(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// MockProposedExampleService is a mock type for the ProposedExampleService type
type MockProposedExampleService struct {
	mock.Mock
}

var _ service.ProposedExampleService = (*MockProposedExampleService)(nil)

func (_m *MockProposedExampleService) ListProposedExamples(ctx context.Context) ([]*models.ProposedExample, error) {
	ret := _m.Called(ctx)
	var r0 []*models.ProposedExample
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*models.ProposedExample)
	}
	return r0, ret.Error(1)
}

func (_m *MockProposedExampleService) GetProposedExample(ctx context.Context, id int64) (*models.ProposedExample, error) {
	ret := _m.Called(ctx, id)
	return proposalOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockProposedExampleService) Generate(ctx context.Context, input string) (*models.ProposedExample, error) {
	ret := _m.Called(ctx, input)
	return proposalOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockProposedExampleService) GenerateBatch(ctx context.Context, inputs []string) ([]models.BatchItemResult, error) {
	ret := _m.Called(ctx, inputs)
	var r0 []models.BatchItemResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.BatchItemResult)
	}
	return r0, ret.Error(1)
}

func (_m *MockProposedExampleService) Promote(ctx context.Context, id int64, completion string) (*models.Example, error) {
	ret := _m.Called(ctx, id, completion)
	return exampleOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockProposedExampleService) Regenerate(ctx context.Context, id int64) (*models.ProposedExample, error) {
	ret := _m.Called(ctx, id)
	return proposalOrNil(ret.Get(0)), ret.Error(1)
}

func (_m *MockProposedExampleService) Discard(ctx context.Context, id int64) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *MockProposedExampleService) RegenerateExample(ctx context.Context, exampleID int64) (*models.ProposedExample, error) {
	ret := _m.Called(ctx, exampleID)
	return proposalOrNil(ret.Get(0)), ret.Error(1)
}
