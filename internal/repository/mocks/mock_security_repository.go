package mocks

import (
	"context"

	"stmtapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockSecurityRepository struct {
	mock.Mock
}

func (m *MockSecurityRepository) ReplaceForDocument(ctx context.Context, documentID string, secs []model.Security) error {
	args := m.Called(ctx, documentID, secs)
	return args.Error(0)
}

func (m *MockSecurityRepository) ListByDocument(ctx context.Context, documentID string) ([]model.Security, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Security), args.Error(1)
}
