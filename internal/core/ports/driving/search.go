package driving

import (
	"context"

	"github.com/custodia-labs/docvault-cli/internal/core/domain"
)

// SearchService answers similarity queries over stored chunks.
type SearchService interface {
	// Search embeds the query text and returns the top-k chunks
	// ranked by cosine similarity. An empty corpus yields an empty
	// result, not an error; a missing embedding service is a hard
	// error (domain.ErrEmbeddingUnavailable).
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// SearchVector ranks stored chunks against an already-computed
	// query vector.
	SearchVector(ctx context.Context, query domain.Vector, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
