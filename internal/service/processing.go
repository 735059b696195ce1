package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stmtapi/internal/extract"
	"stmtapi/internal/model"
	"stmtapi/internal/notify"
	"stmtapi/internal/repository"
)

// ErrAlreadyProcessing is returned when a document is mid-extraction.
var ErrAlreadyProcessing = errors.New("document is already being processed")

// ProcessingService runs extraction over an uploaded statement and persists
// the resulting holdings and portfolio aggregate.
type ProcessingService interface {
	// Process extracts holdings for a document and moves it to processed,
	// or to failed with the error recorded on the row.
	Process(ctx context.Context, documentID string) (*model.Document, error)
}

type processingService struct {
	docs      repository.DocumentRepository
	secs      repository.SecurityRepository
	portfolio repository.PortfolioRepository
	extractor extract.Extractor
	notifier  notify.Notifier
}

// NewProcessingService constructs a ProcessingService. notifier may be nil.
func NewProcessingService(
	docs repository.DocumentRepository,
	secs repository.SecurityRepository,
	portfolio repository.PortfolioRepository,
	extractor extract.Extractor,
	notifier notify.Notifier,
) ProcessingService {
	return &processingService{
		docs:      docs,
		secs:      secs,
		portfolio: portfolio,
		extractor: extractor,
		notifier:  notifier,
	}
}

func (s *processingService) Process(ctx context.Context, documentID string) (*model.Document, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}

	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if doc.Status == model.DocumentStatusProcessing {
		return nil, ErrAlreadyProcessing
	}
	if !doc.Status.CanTransitionTo(model.DocumentStatusProcessing) {
		return nil, fmt.Errorf("document %s cannot be processed from status %s", documentID, doc.Status)
	}

	if err := s.docs.UpdateStatus(ctx, documentID, model.DocumentStatusProcessing, doc.PageCount, "", nil); err != nil {
		return nil, fmt.Errorf("mark processing: %w", err)
	}

	res, err := s.extractor.Extract(doc)
	if err != nil {
		return nil, s.fail(ctx, doc, fmt.Errorf("extract: %w", err))
	}

	if err := s.secs.ReplaceForDocument(ctx, documentID, res.Securities); err != nil {
		return nil, s.fail(ctx, doc, fmt.Errorf("store securities: %w", err))
	}

	now := time.Now().UTC()
	if _, err := s.portfolio.Upsert(ctx, &model.Portfolio{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		Name:       doc.Filename,
		TotalValue: res.TotalValue,
		Currency:   res.Currency,
		Holdings:   len(res.Securities),
		CreatedAt:  now,
	}); err != nil {
		return nil, s.fail(ctx, doc, fmt.Errorf("store portfolio: %w", err))
	}

	if err := s.docs.UpdateStatus(ctx, documentID, model.DocumentStatusProcessed, res.PageCount, "", &now); err != nil {
		return nil, fmt.Errorf("mark processed: %w", err)
	}

	if s.notifier != nil {
		// Notification failure must not fail processing.
		_ = s.notifier.ProcessingComplete(ctx, notify.ProcessingResult{
			DocumentID: documentID,
			Filename:   doc.Filename,
			Holdings:   len(res.Securities),
			TotalValue: res.TotalValue,
			Currency:   res.Currency,
		})
	}

	return s.docs.FindByID(ctx, documentID)
}

// fail moves the document to failed, recording the cause; the original
// error is returned either way.
func (s *processingService) fail(ctx context.Context, doc *model.Document, cause error) error {
	if err := s.docs.UpdateStatus(ctx, doc.ID, model.DocumentStatusFailed, doc.PageCount, cause.Error(), nil); err != nil {
		return fmt.Errorf("%v; additionally failed to mark document failed: %w", cause, err)
	}
	return cause
}
