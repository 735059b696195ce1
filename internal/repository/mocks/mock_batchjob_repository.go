package mocks

import (
	"context"
	"time"

	"stmtapi/internal/model"
	"stmtapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockBatchJobRepository struct {
	mock.Mock
}

func (m *MockBatchJobRepository) Create(ctx context.Context, job *model.BatchJob) (*model.BatchJob, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BatchJob), args.Error(1)
}

func (m *MockBatchJobRepository) FindByID(ctx context.Context, id string) (*model.BatchJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BatchJob), args.Error(1)
}

func (m *MockBatchJobRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.BatchJob], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.BatchJob]), args.Error(1)
}

func (m *MockBatchJobRepository) UpdateProgress(ctx context.Context, id string, processed, failed, progress int) error {
	args := m.Called(ctx, id, processed, failed, progress)
	return args.Error(0)
}

func (m *MockBatchJobRepository) UpdateStatus(ctx context.Context, id string, status model.BatchStatus, errMsg string, startedAt, finishedAt *time.Time) error {
	args := m.Called(ctx, id, status, errMsg, startedAt, finishedAt)
	return args.Error(0)
}

func (m *MockBatchJobRepository) Cancel(ctx context.Context, id string, finishedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, finishedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockBatchJobRepository) Status(ctx context.Context, id string) (model.BatchStatus, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.BatchStatus), args.Error(1)
}
