package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"stmtapi/internal/model"
)

// AnswerCache stores query-engine answers keyed by document and question.
// A miss returns (nil, nil); only backend failures are errors.
type AnswerCache interface {
	Get(ctx context.Context, documentID, question string) (*model.Answer, error)
	Set(ctx context.Context, ans *model.Answer) error
}

// Key builds the cache key for a document/question pair. The question is
// hashed so arbitrary user input never ends up in a Redis key.
func Key(documentID, question string) string {
	sum := sha256.Sum256([]byte(question))
	return fmt.Sprintf("answer:%s:%s", documentID, hex.EncodeToString(sum[:]))
}
