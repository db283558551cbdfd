package driving

import (
	"context"

	"github.com/custodia-labs/docvault-cli/internal/core/domain"
)

// ChatService is the conversational retrieval orchestrator: it owns
// one conversation and answers questions from retrieved context plus
// history.
//
// Implementations are not re-entrant for a single conversation;
// concurrent Query calls must be serialized by the caller.
type ChatService interface {
	// Query retrieves context for question, requests a completion,
	// and on success appends the human and assistant turns to the
	// conversation. On failure the history is left untouched.
	Query(ctx context.Context, question string) (string, error)

	// Reset clears the conversation. The document store is not
	// affected.
	Reset()

	// History returns a copy of the conversation turns so far.
	History() []domain.Turn
}
