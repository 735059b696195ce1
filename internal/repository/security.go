package repository

import (
	"context"

	"stmtapi/internal/model"
)

// SecurityRepository defines data access for extracted holdings.
type SecurityRepository interface {
	// ReplaceForDocument atomically replaces all securities of a document
	// with the given set (delete + insert in one transaction).
	ReplaceForDocument(ctx context.Context, documentID string, secs []model.Security) error

	// ListByDocument returns all securities of a document ordered by value descending.
	ListByDocument(ctx context.Context, documentID string) ([]model.Security, error)
}
