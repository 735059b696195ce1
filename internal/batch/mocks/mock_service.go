package mocks

import (
	"context"

	"stmtapi/internal/batch"
	"stmtapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Submit(ctx context.Context, jobType model.BatchJobType, documentIDs []string) (*model.BatchJob, error) {
	args := m.Called(ctx, jobType, documentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BatchJob), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id string) (*model.BatchJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BatchJob), args.Error(1)
}

func (m *MockService) List(ctx context.Context, limit, offset int) (*batch.BatchJobListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*batch.BatchJobListResult), args.Error(1)
}

func (m *MockService) Cancel(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
