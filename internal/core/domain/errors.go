package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable indicates the document store cannot be
	// opened or created. Fatal to any ingestion or query operation
	// until resolved.
	ErrStorageUnavailable = errors.New("document store unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured, unreachable, or returned malformed output. Search
	// and materialization cannot proceed without embeddings; the error
	// is never substituted with a default vector.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrCompletionUnavailable indicates the completion service failed
	// or returned malformed output. Surfaced to the caller, never
	// substituted with a default answer.
	ErrCompletionUnavailable = errors.New("completion service unavailable")

	// ErrCollectionCollision indicates two differently-named documents
	// sanitize to the same collection name. The second document is
	// rejected rather than silently merged into the first.
	ErrCollectionCollision = errors.New("collection name collision")

	// ErrTooManyChunks indicates a document produced more chunks than
	// the row-ID packing scheme can address within one collection.
	ErrTooManyChunks = errors.New("document exceeds chunk limit")
)
