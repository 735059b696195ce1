package postgres

import (
	"context"
	"database/sql"

	"stmtapi/internal/model"
	"stmtapi/internal/repository"
)

// FeedbackPostgres is a PostgreSQL implementation of repository.FeedbackRepository.
type FeedbackPostgres struct {
	db *sql.DB
}

// NewFeedbackPostgres creates a new FeedbackPostgres repository.
func NewFeedbackPostgres(db *sql.DB) *FeedbackPostgres {
	return &FeedbackPostgres{db: db}
}

var _ repository.FeedbackRepository = (*FeedbackPostgres)(nil)

// Create inserts a feedback row and returns the stored record.
func (r *FeedbackPostgres) Create(ctx context.Context, fb *model.Feedback) (*model.Feedback, error) {
	const q = `
		INSERT INTO feedback (id, document_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, document_id, rating, comment, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		fb.ID,
		fb.DocumentID,
		fb.Rating,
		fb.Comment,
		fb.CreatedAt,
	)
	var out model.Feedback
	if err := row.Scan(
		&out.ID,
		&out.DocumentID,
		&out.Rating,
		&out.Comment,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByDocument returns all feedback for a document, newest first.
func (r *FeedbackPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.Feedback, error) {
	const q = `
		SELECT id, document_id, rating, comment, created_at
		FROM feedback
		WHERE document_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Feedback, 0)
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(
			&f.ID,
			&f.DocumentID,
			&f.Rating,
			&f.Comment,
			&f.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}
