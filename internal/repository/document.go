package repository

import (
	"context"
	"time"

	"stmtapi/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a paginated list of documents and total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// ListIDs returns all document IDs ordered by upload time. Used by batch jobs.
	ListIDs(ctx context.Context) ([]string, error)

	// UpdateStatus sets status, page count, error message and processed_at for a document.
	// processedAt may be nil for non-terminal statuses.
	UpdateStatus(ctx context.Context, id string, status model.DocumentStatus, pageCount int, errMsg string, processedAt *time.Time) error

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
