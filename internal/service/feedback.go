package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"stmtapi/internal/model"
	"stmtapi/internal/repository"
)

var (
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong = errors.New("comment exceeds 2000 characters")
)

const maxCommentLen = 2000

// FeedbackService records user ratings for processed documents.
type FeedbackService interface {
	// Create validates and stores a feedback record for an existing document.
	Create(ctx context.Context, documentID string, rating int, comment string) (*model.Feedback, error)

	// ListByDocument returns all feedback for a document, newest first.
	ListByDocument(ctx context.Context, documentID string) ([]model.Feedback, error)
}

type feedbackService struct {
	docs     repository.DocumentRepository
	feedback repository.FeedbackRepository
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(docs repository.DocumentRepository, feedback repository.FeedbackRepository) FeedbackService {
	return &feedbackService{docs: docs, feedback: feedback}
}

func (s *feedbackService) Create(ctx context.Context, documentID string, rating int, comment string) (*model.Feedback, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if len(comment) > maxCommentLen {
		return nil, ErrCommentTooLong
	}

	// The FK would catch a missing document too, but checking here keeps
	// the not-found contract uniform across services.
	if _, err := s.docs.FindByID(ctx, documentID); err != nil {
		return nil, mapNoRows(err)
	}

	return s.feedback.Create(ctx, &model.Feedback{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now().UTC(),
	})
}

func (s *feedbackService) ListByDocument(ctx context.Context, documentID string) ([]model.Feedback, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.docs.FindByID(ctx, documentID); err != nil {
		return nil, mapNoRows(err)
	}
	return s.feedback.ListByDocument(ctx, documentID)
}
