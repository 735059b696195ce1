package repository

import (
	"context"

	"stmtapi/internal/model"
)

// PortfolioRepository defines data access for per-document portfolio aggregates.
type PortfolioRepository interface {
	// Upsert inserts the portfolio row for a document or updates it if one exists.
	Upsert(ctx context.Context, p *model.Portfolio) (*model.Portfolio, error)

	// FindByID returns a portfolio by its ID.
	FindByID(ctx context.Context, id string) (*model.Portfolio, error)

	// FindByDocument returns the portfolio of a document.
	FindByDocument(ctx context.Context, documentID string) (*model.Portfolio, error)

	// List returns a paginated list of portfolios and total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Portfolio], error)
}
