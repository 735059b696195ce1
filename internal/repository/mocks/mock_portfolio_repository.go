package mocks

import (
	"context"

	"stmtapi/internal/model"
	"stmtapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockPortfolioRepository struct {
	mock.Mock
}

func (m *MockPortfolioRepository) Upsert(ctx context.Context, p *model.Portfolio) (*model.Portfolio, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Portfolio), args.Error(1)
}

func (m *MockPortfolioRepository) FindByID(ctx context.Context, id string) (*model.Portfolio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Portfolio), args.Error(1)
}

func (m *MockPortfolioRepository) FindByDocument(ctx context.Context, documentID string) (*model.Portfolio, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Portfolio), args.Error(1)
}

func (m *MockPortfolioRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Portfolio], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Portfolio]), args.Error(1)
}
