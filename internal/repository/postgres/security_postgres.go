package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"stmtapi/internal/model"
	"stmtapi/internal/repository"
)

// SecurityPostgres is a PostgreSQL implementation of repository.SecurityRepository.
type SecurityPostgres struct {
	db *sql.DB
}

// NewSecurityPostgres creates a new SecurityPostgres repository.
func NewSecurityPostgres(db *sql.DB) *SecurityPostgres {
	return &SecurityPostgres{db: db}
}

var _ repository.SecurityRepository = (*SecurityPostgres)(nil)

// ReplaceForDocument deletes all existing securities of the document and
// inserts the new set inside a single transaction.
func (r *SecurityPostgres) ReplaceForDocument(ctx context.Context, documentID string, secs []model.Security) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const qDel = `DELETE FROM securities WHERE document_id = $1`
	if _, err := tx.ExecContext(ctx, qDel, documentID); err != nil {
		return fmt.Errorf("delete securities: %w", err)
	}

	const qIns = `
		INSERT INTO securities (id, document_id, isin, name, quantity, price, value, currency, weight)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	for _, s := range secs {
		id := s.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := tx.ExecContext(ctx, qIns,
			id,
			documentID,
			s.ISIN,
			s.Name,
			s.Quantity,
			s.Price,
			s.Value,
			s.Currency,
			s.Weight,
		); err != nil {
			return fmt.Errorf("insert security %s: %w", s.ISIN, err)
		}
	}

	return tx.Commit()
}

// ListByDocument returns the securities of a document ordered by value descending.
func (r *SecurityPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.Security, error) {
	const q = `
		SELECT id, document_id, isin, name, quantity, price, value, currency, weight
		FROM securities
		WHERE document_id = $1
		ORDER BY value DESC, isin ASC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Security, 0)
	for rows.Next() {
		var s model.Security
		if err := rows.Scan(
			&s.ID,
			&s.DocumentID,
			&s.ISIN,
			&s.Name,
			&s.Quantity,
			&s.Price,
			&s.Value,
			&s.Currency,
			&s.Weight,
		); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}
