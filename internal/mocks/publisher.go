package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"timeless-server/internal/interfaces"
)

// MockContentEventPublisher is a mock type for the ContentEventPublisher type
type MockContentEventPublisher struct {
	mock.Mock
}

var _ interfaces.ContentEventPublisher = (*MockContentEventPublisher)(nil)

func (_m *MockContentEventPublisher) PublishContentEvent(ctx context.Context, event interfaces.ContentEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}
