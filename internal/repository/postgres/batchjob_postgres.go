package postgres

import (
	"context"
	"database/sql"
	"time"

	"stmtapi/internal/model"
	"stmtapi/internal/repository"
)

// BatchJobPostgres is a PostgreSQL implementation of repository.BatchJobRepository.
type BatchJobPostgres struct {
	db *sql.DB
}

// NewBatchJobPostgres creates a new BatchJobPostgres repository.
func NewBatchJobPostgres(db *sql.DB) *BatchJobPostgres {
	return &BatchJobPostgres{db: db}
}

var _ repository.BatchJobRepository = (*BatchJobPostgres)(nil)

const batchJobColumns = `id, type, status, total_items, processed_items, failed_items, progress, error, created_at, started_at, finished_at`

func scanBatchJob(row interface{ Scan(...any) error }) (*model.BatchJob, error) {
	var j model.BatchJob
	var errMsg sql.NullString
	var startedAt, finishedAt sql.NullTime
	if err := row.Scan(
		&j.ID,
		&j.Type,
		&j.Status,
		&j.Total,
		&j.Processed,
		&j.Failed,
		&j.Progress,
		&errMsg,
		&j.CreatedAt,
		&startedAt,
		&finishedAt,
	); err != nil {
		return nil, err
	}
	j.Error = errMsg.String
	if startedAt.Valid {
		t := startedAt.Time
		j.StartedAt = &t
	}
	if finishedAt.Valid {
		t := finishedAt.Time
		j.FinishedAt = &t
	}
	return &j, nil
}

// Create inserts a new batch job row and returns the stored record.
func (r *BatchJobPostgres) Create(ctx context.Context, job *model.BatchJob) (*model.BatchJob, error) {
	const q = `
		INSERT INTO batch_jobs (id, type, status, total_items, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + batchJobColumns
	row := r.db.QueryRowContext(ctx, q,
		job.ID,
		job.Type,
		job.Status,
		job.Total,
		job.CreatedAt,
	)
	return scanBatchJob(row)
}

// FindByID fetches a batch job by its ID.
func (r *BatchJobPostgres) FindByID(ctx context.Context, id string) (*model.BatchJob, error) {
	const q = `SELECT ` + batchJobColumns + ` FROM batch_jobs WHERE id = $1`
	return scanBatchJob(r.db.QueryRowContext(ctx, q, id))
}

// List returns batch jobs using LIMIT/OFFSET pagination and a total count.
func (r *BatchJobPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.BatchJob], error) {
	const qCount = `SELECT COUNT(*) FROM batch_jobs`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + batchJobColumns + `
		FROM batch_jobs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.BatchJob, 0)
	for rows.Next() {
		j, err := scanBatchJob(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.BatchJob]{
		Items: items,
		Total: total,
	}, nil
}

// UpdateProgress persists per-item counters.
func (r *BatchJobPostgres) UpdateProgress(ctx context.Context, id string, processed, failed, progress int) error {
	const q = `
		UPDATE batch_jobs
		SET processed_items = $2, failed_items = $3, progress = $4
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, q, id, processed, failed, progress)
	return err
}

// UpdateStatus sets the job status and optional error/timestamps.
func (r *BatchJobPostgres) UpdateStatus(ctx context.Context, id string, status model.BatchStatus, errMsg string, startedAt, finishedAt *time.Time) error {
	const q = `
		UPDATE batch_jobs
		SET status = $2,
		    error = $3,
		    started_at = COALESCE($4, started_at),
		    finished_at = COALESCE($5, finished_at)
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, id, status, errMsg, startedAt, finishedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Cancel marks a pending or running job cancelled. The WHERE clause is the
// compare-and-set: a job already in a terminal state is left untouched.
func (r *BatchJobPostgres) Cancel(ctx context.Context, id string, finishedAt time.Time) (bool, error) {
	const q = `
		UPDATE batch_jobs
		SET status = $2, finished_at = $3
		WHERE id = $1 AND status IN ('pending', 'running')
	`
	res, err := r.db.ExecContext(ctx, q, id, model.BatchStatusCancelled, finishedAt)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Status returns the persisted status of a job.
func (r *BatchJobPostgres) Status(ctx context.Context, id string) (model.BatchStatus, error) {
	const q = `SELECT status FROM batch_jobs WHERE id = $1`
	var s model.BatchStatus
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&s); err != nil {
		return "", err
	}
	return s, nil
}
