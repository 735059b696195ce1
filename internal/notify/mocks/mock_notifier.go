package mocks

import (
	"context"

	"stmtapi/internal/notify"

	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ProcessingComplete(ctx context.Context, res notify.ProcessingResult) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}
