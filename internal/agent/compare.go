package agent

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"stmtapi/internal/llm"
	"stmtapi/internal/model"
)

const compareSystemPrompt = `You are a financial statement assistant. Summarize the differences between two statements of the same portfolio in at most five sentences. Mention the largest additions, removals and value changes. Use only the diff provided.`

// ComparisonAgent diffs the holdings of two documents and asks the LLM for
// a short narrative. The diff itself is computed locally; the narrative is
// garnish and its failure never fails the comparison.
type ComparisonAgent struct {
	llm llm.Client
}

// NewComparisonAgent creates a ComparisonAgent using the given LLM client.
func NewComparisonAgent(c llm.Client) *ComparisonAgent {
	return &ComparisonAgent{llm: c}
}

// Compare returns the structured holdings diff between two documents.
// When the LLM is reachable, Summary carries its narrative.
func (a *ComparisonAgent) Compare(ctx context.Context, docA, docB string, secsA, secsB []model.Security) (*model.Comparison, error) {
	cmp := Diff(docA, docB, secsA, secsB)

	if a.llm != nil {
		resp, err := a.llm.Chat(ctx, llm.Request{
			SystemPrompt: compareSystemPrompt,
			UserPrompt:   buildComparePrompt(cmp),
			Temperature:  llm.Temp(0),
		})
		if err == nil {
			cmp.Summary = strings.TrimSpace(resp.Content)
		}
	}

	return cmp, nil
}

// Diff computes added/removed/changed holdings by ISIN. A holding counts as
// changed when its value moved by more than 0.01 in either direction.
func Diff(docA, docB string, secsA, secsB []model.Security) *model.Comparison {
	byISIN := func(secs []model.Security) map[string]model.Security {
		m := make(map[string]model.Security, len(secs))
		for _, s := range secs {
			m[s.ISIN] = s
		}
		return m
	}
	mapA, mapB := byISIN(secsA), byISIN(secsB)

	cmp := &model.Comparison{
		DocumentA: docA,
		DocumentB: docB,
		Added:     []model.HoldingChange{},
		Removed:   []model.HoldingChange{},
		Changed:   []model.HoldingChange{},
	}

	for isin, b := range mapB {
		a, ok := mapA[isin]
		if !ok {
			cmp.Added = append(cmp.Added, model.HoldingChange{
				ISIN: isin, Name: b.Name, NewValue: b.Value, DeltaPct: 100,
			})
			continue
		}
		if math.Abs(b.Value-a.Value) > 0.01 {
			deltaPct := 0.0
			if a.Value != 0 {
				deltaPct = round2((b.Value - a.Value) / a.Value * 100)
			}
			cmp.Changed = append(cmp.Changed, model.HoldingChange{
				ISIN: isin, Name: b.Name, OldValue: a.Value, NewValue: b.Value, DeltaPct: deltaPct,
			})
		}
	}
	for isin, a := range mapA {
		if _, ok := mapB[isin]; !ok {
			cmp.Removed = append(cmp.Removed, model.HoldingChange{
				ISIN: isin, Name: a.Name, OldValue: a.Value, DeltaPct: -100,
			})
		}
	}

	sortChanges(cmp.Added)
	sortChanges(cmp.Removed)
	sortChanges(cmp.Changed)

	return cmp
}

// sortChanges orders by absolute value moved, largest first, ISIN as tiebreak.
func sortChanges(changes []model.HoldingChange) {
	sort.Slice(changes, func(i, j int) bool {
		di := math.Abs(changes[i].NewValue - changes[i].OldValue)
		dj := math.Abs(changes[j].NewValue - changes[j].OldValue)
		if di != dj {
			return di > dj
		}
		return changes[i].ISIN < changes[j].ISIN
	})
}

func buildComparePrompt(cmp *model.Comparison) string {
	var b strings.Builder
	writeSection := func(name string, changes []model.HoldingChange) {
		fmt.Fprintf(&b, "%s (%d):\n", name, len(changes))
		for _, c := range changes {
			fmt.Fprintf(&b, "%s | %s | %.2f -> %.2f (%.2f%%)\n", c.ISIN, c.Name, c.OldValue, c.NewValue, c.DeltaPct)
		}
	}
	writeSection("Added", cmp.Added)
	writeSection("Removed", cmp.Removed)
	writeSection("Changed", cmp.Changed)
	return b.String()
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
