package driven

import (
	"context"

	"github.com/custodia-labs/docvault-cli/internal/core/domain"
)

// DocumentStore persists one collection per source document in a
// single SQLite file. Collection names are already sanitized by the
// time they reach this interface.
//
// The underlying file is a single-writer resource: ReplaceDocument
// and InsertChunks must not run concurrently against the same
// collection. The ingest service serializes a full reindex pass.
type DocumentStore interface {
	// ReplaceDocument creates the collection if absent, deletes all
	// existing rows (full replace, no merge), and inserts a single
	// placeholder row holding the raw document text.
	ReplaceDocument(ctx context.Context, collection, text string) error

	// PendingDocuments returns the placeholder rows of a collection,
	// i.e. rows saved but not yet chunked and embedded.
	PendingDocuments(ctx context.Context, collection string) ([]domain.PendingDocument, error)

	// InsertChunks atomically inserts the final chunk rows derived
	// from the given placeholder and deletes the placeholder. Row IDs
	// follow domain.ChunkRowID. All-or-nothing: a failure leaves the
	// placeholder in place.
	InsertChunks(ctx context.Context, collection string, placeholderID int64, chunks []domain.ChunkRecord) error

	// ListCollections enumerates the named collections present.
	ListCollections(ctx context.Context) ([]string, error)

	// Chunks returns the final rows of the given collection with
	// decoded embeddings, in row order. An empty collection name
	// scans every collection that has the chunk schema; tables
	// without it are skipped, not errors.
	Chunks(ctx context.Context, collection string) ([]domain.ChunkRecord, error)

	// HasChunks reports whether any collection holds at least one
	// final row.
	HasChunks(ctx context.Context) (bool, error)

	// Close releases the database handle.
	Close() error
}
