package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// The service performs no retries; callers decide whether to retry.
// A failure must propagate as domain.ErrEmbeddingUnavailable because
// persisting a chunk without a usable embedding corrupts its
// collection.
//
// Implementations include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float64, error)

	// EmbedBatch generates embeddings for multiple texts in input
	// order. More efficient than calling Embed in a loop for
	// providers with a batch API.
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)

	// Dimensions returns the embedding vector size (e.g. 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request, without running inference.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
