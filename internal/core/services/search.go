package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/docvault-cli/internal/core/domain"
	"github.com/custodia-labs/docvault-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docvault-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docvault-cli/internal/logger"
)

// Ensure Searcher implements the interface.
var _ driving.SearchService = (*Searcher)(nil)

// DefaultTopK is the number of chunks returned when the caller does
// not specify one.
const DefaultTopK = 3

// Searcher answers similarity queries with a linear cosine scan over
// the stored chunks. The corpus is small enough that no approximate
// index is involved; every stored vector is compared on every query.
type Searcher struct {
	store    driven.DocumentStore
	embedder driven.EmbeddingService
}

// NewSearcher creates a new search service.
func NewSearcher(store driven.DocumentStore, embedder driven.EmbeddingService) *Searcher {
	return &Searcher{
		store:    store,
		embedder: embedder,
	}
}

// Search embeds the query text and ranks stored chunks against it.
// A missing embedding service is a hard error; there is no degraded
// text-only mode.
func (s *Searcher) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	if s.embedder == nil {
		return nil, fmt.Errorf("%w: no embedding service configured", domain.ErrEmbeddingUnavailable)
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return s.SearchVector(ctx, vector, opts)
}

// SearchVector ranks stored chunks against an already-computed query
// vector. An empty corpus yields an empty result, not an error.
func (s *Searcher) SearchVector(ctx context.Context, query domain.Vector, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	logger.Debug("TopK: %d, collection filter: %q", topK, opts.Collection)

	chunks, err := s.store.Chunks(ctx, opts.Collection)
	if err != nil {
		return nil, err
	}
	logger.Debug("Scanning %d stored chunks", len(chunks))

	results := make([]domain.SearchResult, 0, len(chunks))
	for _, chunk := range chunks {
		results = append(results, domain.SearchResult{
			Content:    chunk.Content,
			Collection: chunk.Collection,
			Score:      domain.CosineSimilarity(query, chunk.Embedding),
		})
	}

	// Stable sort keeps row order for equal scores.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}

	logger.Info("Returning %d results", len(results))
	return results, nil
}
