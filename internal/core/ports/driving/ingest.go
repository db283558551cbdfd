package driving

import (
	"context"

	"github.com/custodia-labs/docvault-cli/internal/core/domain"
)

// IngestService indexes a directory of documents into the store.
type IngestService interface {
	// Ingest discovers .txt/.md files under dir, saves each document
	// (full replace), then materializes embeddings for every pending
	// document. Per-document failures are isolated and reported in
	// the aggregate; the returned error covers only pass-level
	// failures such as an unreadable directory.
	Ingest(ctx context.Context, dir string) (domain.IngestReport, error)

	// SaveDocument resolves the collection for name and replaces its
	// content with text, leaving a placeholder row for the next
	// materialization pass.
	SaveDocument(ctx context.Context, name, text string) error

	// MaterializeEmbeddings chunks and embeds every pending document
	// across all collections. Failures are isolated per collection.
	MaterializeEmbeddings(ctx context.Context) (domain.IngestReport, error)

	// ListCollections enumerates stored collections.
	ListCollections(ctx context.Context) ([]string, error)

	// HasContent reports whether any collection holds materialized
	// chunks, used to decide whether startup needs an index pass.
	HasContent(ctx context.Context) (bool, error)
}
