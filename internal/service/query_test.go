package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stmtapi/internal/agent"
	cachemocks "stmtapi/internal/cache/mocks"
	"stmtapi/internal/llm"
	llmmocks "stmtapi/internal/llm/mocks"
	"stmtapi/internal/model"
	repomocks "stmtapi/internal/repository/mocks"
)

func newQueryService() (QueryService, *repomocks.MockDocumentRepository, *repomocks.MockSecurityRepository, *llmmocks.MockClient, *cachemocks.MockAnswerCache) {
	docs := new(repomocks.MockDocumentRepository)
	secs := new(repomocks.MockSecurityRepository)
	client := new(llmmocks.MockClient)
	answers := new(cachemocks.MockAnswerCache)
	svc := NewQueryService(docs, secs, agent.NewQueryAgent(client), agent.NewComparisonAgent(client), answers)
	return svc, docs, secs, client, answers
}

func processedDoc(id string) *model.Document {
	return &model.Document{ID: id, Status: model.DocumentStatusProcessed}
}

func holdingsFor(value float64) []model.Security {
	return []model.Security{
		{ISIN: "US0378331005", Name: "Apple Inc", Value: value, Currency: "USD", Weight: 1},
	}
}

func TestQueryServiceAnswer(t *testing.T) {
	t.Run("cache hit skips the LLM", func(t *testing.T) {
		svc, _, _, client, answers := newQueryService()

		answers.On("Get", mock.Anything, "doc-1", "what is the total?").
			Return(&model.Answer{DocumentID: "doc-1", Answer: "15000 USD"}, nil)

		ans, err := svc.Answer(context.Background(), "doc-1", "what is the total?")
		require.NoError(t, err)
		assert.True(t, ans.Cached)
		assert.Equal(t, "15000 USD", ans.Answer)
		client.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
	})

	t.Run("question is trimmed before the cache lookup", func(t *testing.T) {
		svc, _, _, client, answers := newQueryService()

		answers.On("Get", mock.Anything, "doc-1", "what is the total?").
			Return(&model.Answer{DocumentID: "doc-1", Answer: "15000 USD"}, nil)

		ans, err := svc.Answer(context.Background(), "doc-1", "  what is the total?  ")
		require.NoError(t, err)
		assert.True(t, ans.Cached)
		client.AssertNotCalled(t, "Chat", mock.Anything, mock.Anything)
		answers.AssertExpectations(t)
	})

	t.Run("cache miss asks the LLM and stores the answer", func(t *testing.T) {
		svc, docs, secs, client, answers := newQueryService()

		answers.On("Get", mock.Anything, "doc-1", "what is the total?").Return(nil, nil)
		docs.On("FindByID", mock.Anything, "doc-1").Return(processedDoc("doc-1"), nil)
		secs.On("ListByDocument", mock.Anything, "doc-1").Return(holdingsFor(15000), nil)
		client.On("Chat", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
			return req.UserPrompt != "" && req.SystemPrompt != ""
		})).Return(&llm.Response{Content: "The total is 15000 USD.", PromptTokens: 120, CompletionTokens: 9}, nil)
		client.On("Model").Return("test-model")
		answers.On("Set", mock.Anything, mock.MatchedBy(func(a *model.Answer) bool {
			return a.DocumentID == "doc-1" && !a.Cached
		})).Return(nil)

		ans, err := svc.Answer(context.Background(), "doc-1", "what is the total?")
		require.NoError(t, err)
		assert.False(t, ans.Cached)
		assert.Equal(t, "The total is 15000 USD.", ans.Answer)
		assert.Equal(t, "test-model", ans.Model)
		answers.AssertExpectations(t)
	})

	t.Run("cache errors degrade to a direct call", func(t *testing.T) {
		svc, docs, secs, client, answers := newQueryService()

		answers.On("Get", mock.Anything, "doc-1", "q").Return(nil, errors.New("redis down"))
		docs.On("FindByID", mock.Anything, "doc-1").Return(processedDoc("doc-1"), nil)
		secs.On("ListByDocument", mock.Anything, "doc-1").Return(holdingsFor(100), nil)
		client.On("Chat", mock.Anything, mock.Anything).
			Return(&llm.Response{Content: "answer"}, nil)
		client.On("Model").Return("test-model")
		answers.On("Set", mock.Anything, mock.Anything).Return(errors.New("redis still down"))

		ans, err := svc.Answer(context.Background(), "doc-1", "q")
		require.NoError(t, err)
		assert.Equal(t, "answer", ans.Answer)
	})

	t.Run("unprocessed document is rejected", func(t *testing.T) {
		svc, docs, _, _, answers := newQueryService()

		answers.On("Get", mock.Anything, "doc-1", "q").Return(nil, nil)
		docs.On("FindByID", mock.Anything, "doc-1").
			Return(&model.Document{ID: "doc-1", Status: model.DocumentStatusUploaded}, nil)

		_, err := svc.Answer(context.Background(), "doc-1", "q")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not processed")
	})

	t.Run("missing document", func(t *testing.T) {
		svc, docs, _, _, answers := newQueryService()

		answers.On("Get", mock.Anything, "missing", "q").Return(nil, nil)
		docs.On("FindByID", mock.Anything, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Answer(context.Background(), "missing", "q")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		svc, _, _, _, _ := newQueryService()
		_, err := svc.Answer(context.Background(), "", "q")
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestQueryServiceCompare(t *testing.T) {
	t.Run("diffs two processed documents", func(t *testing.T) {
		svc, docs, secs, client, _ := newQueryService()

		docs.On("FindByID", mock.Anything, "doc-a").Return(processedDoc("doc-a"), nil)
		docs.On("FindByID", mock.Anything, "doc-b").Return(processedDoc("doc-b"), nil)
		secs.On("ListByDocument", mock.Anything, "doc-a").Return([]model.Security{
			{ISIN: "US0378331005", Name: "Apple Inc", Value: 9000},
			{ISIN: "GB0002634946", Name: "BAE Systems", Value: 2000},
		}, nil)
		secs.On("ListByDocument", mock.Anything, "doc-b").Return([]model.Security{
			{ISIN: "US0378331005", Name: "Apple Inc", Value: 10000},
			{ISIN: "DE0007164600", Name: "SAP SE", Value: 3000},
		}, nil)
		client.On("Chat", mock.Anything, mock.Anything).
			Return(&llm.Response{Content: "Apple grew, BAE was sold, SAP was added."}, nil)

		cmp, err := svc.Compare(context.Background(), "doc-a", "doc-b")
		require.NoError(t, err)
		require.Len(t, cmp.Added, 1)
		require.Len(t, cmp.Removed, 1)
		require.Len(t, cmp.Changed, 1)
		assert.Equal(t, "DE0007164600", cmp.Added[0].ISIN)
		assert.Equal(t, "GB0002634946", cmp.Removed[0].ISIN)
		assert.InDelta(t, 11.11, cmp.Changed[0].DeltaPct, 0.01)
		assert.NotEmpty(t, cmp.Summary)
	})

	t.Run("summary failure does not fail the comparison", func(t *testing.T) {
		svc, docs, secs, client, _ := newQueryService()

		docs.On("FindByID", mock.Anything, mock.Anything).Return(processedDoc("x"), nil)
		secs.On("ListByDocument", mock.Anything, mock.Anything).Return(holdingsFor(100), nil)
		client.On("Chat", mock.Anything, mock.Anything).Return(nil, errors.New("rate limited"))

		cmp, err := svc.Compare(context.Background(), "doc-a", "doc-b")
		require.NoError(t, err)
		assert.Empty(t, cmp.Summary)
	})

	t.Run("same document on both sides", func(t *testing.T) {
		svc, _, _, _, _ := newQueryService()
		_, err := svc.Compare(context.Background(), "doc-a", "doc-a")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "itself")
	})

	t.Run("empty ids", func(t *testing.T) {
		svc, _, _, _, _ := newQueryService()
		_, err := svc.Compare(context.Background(), "", "doc-b")
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}
