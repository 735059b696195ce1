// Package agent contains the query engine's agents. An agent formats a
// prompt from a document's extracted holdings and forwards it to the LLM;
// all financial figures in the prompt come from our own database, never
// from the model.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stmtapi/internal/llm"
	"stmtapi/internal/model"
)

var (
	ErrQuestionRequired = errors.New("question is required")
	ErrNoHoldings       = errors.New("document has no extracted holdings")
	ErrLLMUnavailable   = errors.New("no LLM client configured")
)

// maxPromptHoldings caps the holdings table embedded in a prompt; the
// largest positions are listed first so truncation drops the tail.
const maxPromptHoldings = 50

const querySystemPrompt = `You are a financial statement assistant. Answer questions using only the holdings table provided. Report currency amounts with their currency code. If the table does not contain the answer, say so plainly.`

// QueryAgent answers natural-language questions about one document.
type QueryAgent struct {
	llm llm.Client
}

// NewQueryAgent creates a QueryAgent using the given LLM client.
func NewQueryAgent(c llm.Client) *QueryAgent {
	return &QueryAgent{llm: c}
}

// Answer builds a grounded prompt from secs and asks the LLM.
func (a *QueryAgent) Answer(ctx context.Context, documentID, question string, secs []model.Security) (*model.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrQuestionRequired
	}
	if len(secs) == 0 {
		return nil, ErrNoHoldings
	}
	if a.llm == nil {
		return nil, ErrLLMUnavailable
	}

	resp, err := a.llm.Chat(ctx, llm.Request{
		SystemPrompt: querySystemPrompt,
		UserPrompt:   BuildQueryPrompt(question, secs),
		Temperature:  llm.Temp(0),
	})
	if err != nil {
		return nil, fmt.Errorf("query agent: %w", err)
	}

	return &model.Answer{
		DocumentID:       documentID,
		Question:         question,
		Answer:           strings.TrimSpace(resp.Content),
		Model:            a.llm.Model(),
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// BuildQueryPrompt renders the user prompt: a pipe-separated holdings table
// followed by the question. Exported for the comparison agent and tests.
func BuildQueryPrompt(question string, secs []model.Security) string {
	var b strings.Builder
	b.WriteString("Holdings:\n")
	b.WriteString(formatHoldings(secs))
	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

func formatHoldings(secs []model.Security) string {
	var b strings.Builder
	b.WriteString("ISIN | Name | Quantity | Price | Value | Currency | Weight\n")
	n := len(secs)
	if n > maxPromptHoldings {
		n = maxPromptHoldings
	}
	for _, s := range secs[:n] {
		fmt.Fprintf(&b, "%s | %s | %.2f | %.2f | %.2f | %s | %.2f%%\n",
			s.ISIN, s.Name, s.Quantity, s.Price, s.Value, s.Currency, s.Weight*100)
	}
	if len(secs) > n {
		fmt.Fprintf(&b, "(%d further holdings omitted)\n", len(secs)-n)
	}
	return b.String()
}
