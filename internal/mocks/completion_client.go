package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"timeless-server/internal/ai"
)

// MockCompletionClient is a mock type for the CompletionClient type
type MockCompletionClient struct {
	mock.Mock
}

var _ ai.CompletionClient = (*MockCompletionClient)(nil)

// GenerateCompletions provides a mock function with given fields: ctx, input, systemPrompt, n
func (_m *MockCompletionClient) GenerateCompletions(ctx context.Context, input, systemPrompt string, n int) ([]string, error) {
	ret := _m.Called(ctx, input, systemPrompt, n)

	var r0 []string
	if rf, ok := ret.Get(0).(func(context.Context, string, string, int) []string); ok {
		r0 = rf(ctx, input, systemPrompt, n)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}

	return r0, ret.Error(1)
}

// NewMockCompletionClient creates a new instance of MockCompletionClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockCompletionClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCompletionClient {
	m := &MockCompletionClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
