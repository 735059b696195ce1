package mocks

import (
	"context"

	"stmtapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAnswerCache struct {
	mock.Mock
}

func (m *MockAnswerCache) Get(ctx context.Context, documentID, question string) (*model.Answer, error) {
	args := m.Called(ctx, documentID, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Answer), args.Error(1)
}

func (m *MockAnswerCache) Set(ctx context.Context, ans *model.Answer) error {
	args := m.Called(ctx, ans)
	return args.Error(0)
}
