// Package batch runs background jobs over the document corpus.
//
// Items are processed sequentially, one job at a time. Progress is persisted
// after every item, and before every item the runner checks both its context
// and the persisted job status, so cancellation requested over HTTP (or by a
// previous process, after a restart) takes effect at the next item boundary.
package batch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"stmtapi/internal/logx"
	"stmtapi/internal/model"
	"stmtapi/internal/repository"
	"stmtapi/internal/service"
)

var (
	ErrJobActive   = errors.New("a batch job is already running")
	ErrNoItems     = errors.New("no documents to process")
	ErrUnknownType = errors.New("unknown batch job type")
	ErrJobNotFound = errors.New("batch job not found")
)

// BatchJobListResult is the DTO for paginated batch jobs.
type BatchJobListResult struct {
	Items []model.BatchJob `json:"data"`
	Total int              `json:"total"`
}

// Service is what HTTP handlers see of the batch subsystem.
type Service interface {
	// Submit creates and starts a job over the given documents (all
	// documents when empty). Rejects a concurrent job with ErrJobActive.
	Submit(ctx context.Context, jobType model.BatchJobType, documentIDs []string) (*model.BatchJob, error)

	// Get returns a job by ID.
	Get(ctx context.Context, id string) (*model.BatchJob, error)

	// List returns jobs, newest first.
	List(ctx context.Context, limit, offset int) (*BatchJobListResult, error)

	// Cancel flags a pending or running job cancelled.
	Cancel(ctx context.Context, id string) (bool, error)
}

// Runner owns the single background goroutine that executes batch jobs.
type Runner struct {
	jobs      repository.BatchJobRepository
	docs      repository.DocumentRepository
	processor service.ProcessingService

	mu     sync.Mutex
	active bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner constructs a Runner. Call Shutdown to stop the in-flight job.
func NewRunner(jobs repository.BatchJobRepository, docs repository.DocumentRepository, processor service.ProcessingService) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		jobs:      jobs,
		docs:      docs,
		processor: processor,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Submit creates a job and starts it in the background. Only one job runs
// at a time; a second submission fails with ErrJobActive.
// An empty documentIDs selects every document.
func (r *Runner) Submit(ctx context.Context, jobType model.BatchJobType, documentIDs []string) (*model.BatchJob, error) {
	if jobType != model.BatchJobReprocess {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, jobType)
	}

	if len(documentIDs) == 0 {
		ids, err := r.docs.ListIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		documentIDs = ids
	}
	if len(documentIDs) == 0 {
		return nil, ErrNoItems
	}

	r.mu.Lock()
	if r.active {
		r.mu.Unlock()
		return nil, ErrJobActive
	}
	r.active = true
	r.mu.Unlock()

	job, err := r.jobs.Create(ctx, &model.BatchJob{
		ID:        uuid.New().String(),
		Type:      jobType,
		Status:    model.BatchStatusPending,
		Total:     len(documentIDs),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		r.release()
		return nil, fmt.Errorf("create job: %w", err)
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.release()
		r.run(job.ID, documentIDs)
	}()

	return job, nil
}

// Get returns a job by ID.
func (r *Runner) Get(ctx context.Context, id string) (*model.BatchJob, error) {
	job, err := r.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// List returns jobs, newest first.
func (r *Runner) List(ctx context.Context, limit, offset int) (*BatchJobListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := r.jobs.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &BatchJobListResult{Items: res.Items, Total: res.Total}, nil
}

// Cancel flags a pending or running job cancelled. The running loop observes
// the flag before its next item. Cancelling a finished job returns false.
func (r *Runner) Cancel(ctx context.Context, id string) (bool, error) {
	if _, err := r.jobs.FindByID(ctx, id); err != nil {
		return false, ErrJobNotFound
	}
	return r.jobs.Cancel(ctx, id, time.Now().UTC())
}

// Shutdown stops the in-flight job at its next item boundary and waits for
// the worker goroutine to exit.
func (r *Runner) Shutdown() {
	r.cancel()
	r.wg.Wait()
}

func (r *Runner) release() {
	r.mu.Lock()
	r.active = false
	r.mu.Unlock()
}

func (r *Runner) run(jobID string, documentIDs []string) {
	ctx := r.ctx
	now := time.Now().UTC()

	if err := r.jobs.UpdateStatus(ctx, jobID, model.BatchStatusRunning, "", &now, nil); err != nil {
		logx.Error("batch_job_start_failed", err, map[string]any{"component": "batch", "job_id": jobID})
		return
	}
	logx.Info("batch_job_started", map[string]any{
		"component": "batch",
		"job_id":    jobID,
		"total":     len(documentIDs),
	})

	processed, failed := 0, 0
	for _, docID := range documentIDs {
		if stopped, reason := r.shouldStop(ctx, jobID); stopped {
			r.finish(jobID, model.BatchStatusCancelled, reason, processed, failed, len(documentIDs))
			return
		}

		if _, err := r.processor.Process(ctx, docID); err != nil {
			// An item interrupted by shutdown is a cancellation, not a failure.
			if ctx.Err() != nil {
				r.finish(jobID, model.BatchStatusCancelled, "runner shutting down", processed, failed, len(documentIDs))
				return
			}
			failed++
			logx.Error("batch_item_failed", err, map[string]any{
				"component":   "batch",
				"job_id":      jobID,
				"document_id": docID,
			})
		} else {
			processed++
		}

		progress := int(math.Round(100 * float64(processed+failed) / float64(len(documentIDs))))
		if err := r.jobs.UpdateProgress(ctx, jobID, processed, failed, progress); err != nil {
			if ctx.Err() != nil {
				r.finish(jobID, model.BatchStatusCancelled, "runner shutting down", processed, failed, len(documentIDs))
				return
			}
			r.finish(jobID, model.BatchStatusFailed, fmt.Sprintf("persist progress: %v", err), processed, failed, len(documentIDs))
			return
		}
	}

	r.finish(jobID, model.BatchStatusCompleted, "", processed, failed, len(documentIDs))
}

// shouldStop reports whether the job must stop before the next item.
func (r *Runner) shouldStop(ctx context.Context, jobID string) (bool, string) {
	if ctx.Err() != nil {
		return true, "runner shutting down"
	}
	// The status check uses a fresh context: the row must stay reachable
	// even while the runner context is being torn down.
	statusCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	status, err := r.jobs.Status(statusCtx, jobID)
	if err != nil {
		return true, fmt.Sprintf("read job status: %v", err)
	}
	if status == model.BatchStatusCancelled {
		return true, ""
	}
	return false, ""
}

func (r *Runner) finish(jobID string, status model.BatchStatus, errMsg string, processed, failed, total int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// For cancellations the row may already carry the status via the CAS
	// update; rewriting it records the finish time and reason as well.
	now := time.Now().UTC()
	if err := r.jobs.UpdateStatus(ctx, jobID, status, errMsg, nil, &now); err != nil {
		logx.Error("batch_job_finish_failed", err, map[string]any{"component": "batch", "job_id": jobID})
	}

	logx.Info("batch_job_finished", map[string]any{
		"component": "batch",
		"job_id":    jobID,
		"status":    string(status),
		"processed": processed,
		"failed":    failed,
		"total":     total,
	})
}
