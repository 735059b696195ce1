package postgres

import (
	"context"
	"database/sql"

	"stmtapi/internal/model"
	"stmtapi/internal/repository"
)

// PortfolioPostgres is a PostgreSQL implementation of repository.PortfolioRepository.
type PortfolioPostgres struct {
	db *sql.DB
}

// NewPortfolioPostgres creates a new PortfolioPostgres repository.
func NewPortfolioPostgres(db *sql.DB) *PortfolioPostgres {
	return &PortfolioPostgres{db: db}
}

var _ repository.PortfolioRepository = (*PortfolioPostgres)(nil)

const portfolioColumns = `id, document_id, name, total_value, currency, holdings, created_at`

func scanPortfolio(row interface{ Scan(...any) error }) (*model.Portfolio, error) {
	var p model.Portfolio
	if err := row.Scan(
		&p.ID,
		&p.DocumentID,
		&p.Name,
		&p.TotalValue,
		&p.Currency,
		&p.Holdings,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert inserts the document's portfolio row or refreshes it on conflict.
func (r *PortfolioPostgres) Upsert(ctx context.Context, p *model.Portfolio) (*model.Portfolio, error) {
	const q = `
		INSERT INTO portfolios (id, document_id, name, total_value, currency, holdings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (document_id) DO UPDATE
		SET name = EXCLUDED.name,
		    total_value = EXCLUDED.total_value,
		    currency = EXCLUDED.currency,
		    holdings = EXCLUDED.holdings
		RETURNING ` + portfolioColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.DocumentID,
		p.Name,
		p.TotalValue,
		p.Currency,
		p.Holdings,
		p.CreatedAt,
	)
	return scanPortfolio(row)
}

// FindByID fetches a portfolio by its ID.
func (r *PortfolioPostgres) FindByID(ctx context.Context, id string) (*model.Portfolio, error) {
	const q = `SELECT ` + portfolioColumns + ` FROM portfolios WHERE id = $1`
	return scanPortfolio(r.db.QueryRowContext(ctx, q, id))
}

// FindByDocument fetches the portfolio belonging to a document.
func (r *PortfolioPostgres) FindByDocument(ctx context.Context, documentID string) (*model.Portfolio, error) {
	const q = `SELECT ` + portfolioColumns + ` FROM portfolios WHERE document_id = $1`
	return scanPortfolio(r.db.QueryRowContext(ctx, q, documentID))
}

// List returns portfolios using LIMIT/OFFSET pagination and a total count.
func (r *PortfolioPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Portfolio], error) {
	const qCount = `SELECT COUNT(*) FROM portfolios`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + portfolioColumns + `
		FROM portfolios
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Portfolio, 0)
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Portfolio]{
		Items: items,
		Total: total,
	}, nil
}
