package repository

import (
	"context"
	"time"

	"stmtapi/internal/model"
)

// BatchJobRepository defines data access for batch jobs.
type BatchJobRepository interface {
	// Create inserts a new job row and returns the stored record.
	Create(ctx context.Context, job *model.BatchJob) (*model.BatchJob, error)

	// FindByID returns a job by its ID.
	FindByID(ctx context.Context, id string) (*model.BatchJob, error)

	// List returns a paginated list of jobs, newest first.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.BatchJob], error)

	// UpdateProgress persists per-item counters after each processed item.
	UpdateProgress(ctx context.Context, id string, processed, failed, progress int) error

	// UpdateStatus sets the job status and optional error/timestamps.
	UpdateStatus(ctx context.Context, id string, status model.BatchStatus, errMsg string, startedAt, finishedAt *time.Time) error

	// Cancel marks a pending or running job cancelled. It reports whether a
	// row changed, so a finished job cannot be cancelled retroactively.
	Cancel(ctx context.Context, id string, finishedAt time.Time) (bool, error)

	// Status returns only the current status of a job. The batch runner polls
	// this between items to honour externally requested cancellation.
	Status(ctx context.Context, id string) (model.BatchStatus, error)
}
