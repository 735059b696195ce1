package service

import (
	"context"
	"database/sql"
	"errors"

	"stmtapi/internal/model"
	"stmtapi/internal/repository"
)

// topHoldingsCount is how many positions a portfolio summary lists.
const topHoldingsCount = 5

// PortfolioListResult is the service-level DTO for paginated portfolios.
type PortfolioListResult struct {
	Items []model.Portfolio `json:"data"`
	Total int               `json:"total"`
}

// PortfolioService exposes read access to per-document portfolio aggregates.
type PortfolioService interface {
	// List returns portfolios using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*PortfolioListResult, error)

	// Get returns a portfolio summary with top holdings and currency breakdown.
	Get(ctx context.Context, id string) (*model.PortfolioSummary, error)
}

type portfolioService struct {
	portfolios repository.PortfolioRepository
	secs       repository.SecurityRepository
}

// NewPortfolioService constructs a PortfolioService.
func NewPortfolioService(portfolios repository.PortfolioRepository, secs repository.SecurityRepository) PortfolioService {
	return &portfolioService{portfolios: portfolios, secs: secs}
}

func (s *portfolioService) List(ctx context.Context, limit, offset int) (*PortfolioListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.portfolios.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &PortfolioListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *portfolioService) Get(ctx context.Context, id string) (*model.PortfolioSummary, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	p, err := s.portfolios.FindByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err)
	}

	secs, err := s.secs.ListByDocument(ctx, p.DocumentID)
	if err != nil {
		return nil, err
	}

	top := secs
	if len(top) > topHoldingsCount {
		top = top[:topHoldingsCount]
	}

	byCurrency := make(map[string]float64)
	for _, sec := range secs {
		byCurrency[sec.Currency] += sec.Value
	}

	return &model.PortfolioSummary{
		Portfolio:   *p,
		TopHoldings: top,
		ByCurrency:  byCurrency,
	}, nil
}

// mapNoRows translates sql.ErrNoRows into the service-level not-found error.
func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
