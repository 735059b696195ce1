package repository

import (
	"context"

	"stmtapi/internal/model"
)

// FeedbackRepository defines data access for document feedback.
type FeedbackRepository interface {
	// Create inserts a feedback record and returns the stored row.
	Create(ctx context.Context, fb *model.Feedback) (*model.Feedback, error)

	// ListByDocument returns all feedback for a document, newest first.
	ListByDocument(ctx context.Context, documentID string) ([]model.Feedback, error)
}
