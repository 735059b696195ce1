package service

import (
	"context"
	"fmt"
	"strings"

	"stmtapi/internal/agent"
	"stmtapi/internal/cache"
	"stmtapi/internal/logx"
	"stmtapi/internal/model"
	"stmtapi/internal/repository"
)

// QueryService answers questions about documents and compares them.
type QueryService interface {
	// Answer returns the LLM's answer for a question about one document,
	// served from the cache when possible.
	Answer(ctx context.Context, documentID, question string) (*model.Answer, error)

	// Compare diffs the holdings of two documents with an optional narrative.
	Compare(ctx context.Context, documentA, documentB string) (*model.Comparison, error)
}

type queryService struct {
	docs    repository.DocumentRepository
	secs    repository.SecurityRepository
	query   *agent.QueryAgent
	compare *agent.ComparisonAgent
	answers cache.AnswerCache
}

// NewQueryService constructs a QueryService. answers may be nil, in which
// case every question goes to the LLM.
func NewQueryService(
	docs repository.DocumentRepository,
	secs repository.SecurityRepository,
	query *agent.QueryAgent,
	compare *agent.ComparisonAgent,
	answers cache.AnswerCache,
) QueryService {
	return &queryService{
		docs:    docs,
		secs:    secs,
		query:   query,
		compare: compare,
		answers: answers,
	}
}

func (s *queryService) Answer(ctx context.Context, documentID, question string) (*model.Answer, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}

	// The cache is keyed on the question exactly as stored in the answer,
	// so normalize before the lookup.
	question = strings.TrimSpace(question)

	if s.answers != nil {
		hit, err := s.answers.Get(ctx, documentID, question)
		if err != nil {
			// Cache trouble degrades to a direct LLM call.
			logx.Error("answer_cache_get_failed", err, map[string]any{
				"component":   "query",
				"document_id": documentID,
			})
		} else if hit != nil {
			hit.Cached = true
			return hit, nil
		}
	}

	secs, err := s.holdings(ctx, documentID)
	if err != nil {
		return nil, err
	}

	ans, err := s.query.Answer(ctx, documentID, question, secs)
	if err != nil {
		return nil, err
	}

	if s.answers != nil {
		if err := s.answers.Set(ctx, ans); err != nil {
			logx.Error("answer_cache_set_failed", err, map[string]any{
				"component":   "query",
				"document_id": documentID,
			})
		}
	}

	return ans, nil
}

func (s *queryService) Compare(ctx context.Context, documentA, documentB string) (*model.Comparison, error) {
	if documentA == "" || documentB == "" {
		return nil, ErrIDRequired
	}
	if documentA == documentB {
		return nil, fmt.Errorf("cannot compare a document with itself")
	}

	secsA, err := s.holdings(ctx, documentA)
	if err != nil {
		return nil, err
	}
	secsB, err := s.holdings(ctx, documentB)
	if err != nil {
		return nil, err
	}

	return s.compare.Compare(ctx, documentA, documentB, secsA, secsB)
}

// holdings loads a document's securities, requiring the document to exist
// and to have been processed.
func (s *queryService) holdings(ctx context.Context, documentID string) ([]model.Security, error) {
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if doc.Status != model.DocumentStatusProcessed {
		return nil, fmt.Errorf("document %s is not processed (status %s)", documentID, doc.Status)
	}
	return s.secs.ListByDocument(ctx, documentID)
}
