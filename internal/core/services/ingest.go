package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docvault-cli/internal/chunker"
	"github.com/custodia-labs/docvault-cli/internal/core/domain"
	"github.com/custodia-labs/docvault-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docvault-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docvault-cli/internal/logger"
)

// Ensure Ingester implements the interface.
var _ driving.IngestService = (*Ingester)(nil)

// documentExtensions are the file types picked up by directory ingestion.
var documentExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// Ingester indexes documents: it saves raw text into per-document
// collections and materializes chunk embeddings for pending documents.
type Ingester struct {
	store    driven.DocumentStore
	embedder driven.EmbeddingService
	splitter *chunker.Splitter
	limiter  *rate.Limiter
}

// IngesterOption configures the ingester.
type IngesterOption func(*Ingester)

// WithEmbedRateLimit caps embedding requests at rps per second. Useful
// against metered providers; zero or negative disables the cap.
func WithEmbedRateLimit(rps float64) IngesterOption {
	return func(i *Ingester) {
		if rps > 0 {
			i.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewIngester creates a new ingester.
func NewIngester(store driven.DocumentStore, embedder driven.EmbeddingService, splitter *chunker.Splitter, opts ...IngesterOption) *Ingester {
	ing := &Ingester{
		store:    store,
		embedder: embedder,
		splitter: splitter,
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// Ingest discovers .txt/.md files under dir, saves each as a
// collection, then materializes embeddings for everything pending.
// Two files mapping to the same sanitized collection name is a
// collision: the first file wins, the rest are reported as failures.
func (i *Ingester) Ingest(ctx context.Context, dir string) (domain.IngestReport, error) {
	logger.Section("Ingestion")
	logger.Debug("Scanning %s", dir)

	var report domain.IngestReport

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, fmt.Errorf("read documents directory %s: %w", dir, err)
	}

	claimed := make(map[string]string) // sanitized name -> source file
	for _, entry := range entries {
		if entry.IsDir() || !documentExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		collection := domain.SanitizeCollectionName(stem)

		if first, taken := claimed[collection]; taken {
			logger.Warn("Skipping %s: collection %q already claimed by %s", entry.Name(), collection, first)
			report.Failures = append(report.Failures, domain.IngestFailure{
				Document:   entry.Name(),
				Collection: collection,
				Err: fmt.Errorf("%w: %q collides with %s",
					domain.ErrCollectionCollision, collection, first),
			})
			continue
		}

		text, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			report.Failures = append(report.Failures, domain.IngestFailure{
				Document:   entry.Name(),
				Collection: collection,
				Err:        err,
			})
			continue
		}

		if err := i.store.ReplaceDocument(ctx, collection, string(text)); err != nil {
			report.Failures = append(report.Failures, domain.IngestFailure{
				Document:   entry.Name(),
				Collection: collection,
				Err:        err,
			})
			continue
		}

		claimed[collection] = entry.Name()
		logger.Debug("Saved %s as collection %q", entry.Name(), collection)
	}

	materialized, err := i.MaterializeEmbeddings(ctx)
	if err != nil {
		return report, err
	}

	report.Indexed = append(report.Indexed, materialized.Indexed...)
	report.Failures = append(report.Failures, materialized.Failures...)
	return report, nil
}

// SaveDocument replaces the collection derived from name with text.
// The document stays pending until the next materialization pass.
func (i *Ingester) SaveDocument(ctx context.Context, name, text string) error {
	collection := domain.SanitizeCollectionName(name)
	if collection == "" {
		return fmt.Errorf("%w: document name %q yields an empty collection name", domain.ErrInvalidInput, name)
	}
	return i.store.ReplaceDocument(ctx, collection, text)
}

// MaterializeEmbeddings chunks and embeds every pending document.
// Failures are isolated per collection: a bad document never aborts
// the rest of the pass.
func (i *Ingester) MaterializeEmbeddings(ctx context.Context) (domain.IngestReport, error) {
	logger.Section("Materialization")

	var report domain.IngestReport

	if i.embedder == nil {
		return report, fmt.Errorf("%w: no embedding service configured", domain.ErrEmbeddingUnavailable)
	}

	collections, err := i.store.ListCollections(ctx)
	if err != nil {
		return report, err
	}

	for _, collection := range collections {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		indexed, err := i.materializeCollection(ctx, collection)
		if err != nil {
			logger.Warn("Collection %q failed: %v", collection, err)
			report.Failures = append(report.Failures, domain.IngestFailure{
				Document:   collection,
				Collection: collection,
				Err:        err,
			})
			continue
		}
		if indexed {
			report.Indexed = append(report.Indexed, collection)
		}
	}

	logger.Info("Materialized %d collections, %d failures", len(report.Indexed), len(report.Failures))
	return report, nil
}

// materializeCollection embeds every pending document of one
// collection. Returns true if at least one document was materialized.
func (i *Ingester) materializeCollection(ctx context.Context, collection string) (bool, error) {
	pending, err := i.store.PendingDocuments(ctx, collection)
	if err != nil {
		return false, err
	}
	if len(pending) == 0 {
		return false, nil
	}

	for _, doc := range pending {
		chunks := i.splitter.Split(doc.RawText)
		logger.Debug("Collection %q: %d chunks", collection, len(chunks))

		records := make([]domain.ChunkRecord, len(chunks))
		for idx, chunk := range chunks {
			if i.limiter != nil {
				if err := i.limiter.Wait(ctx); err != nil {
					return false, err
				}
			}

			embedding, err := i.embedder.Embed(ctx, chunk)
			if err != nil {
				return false, fmt.Errorf("embed chunk %d: %w", idx, err)
			}
			if want := i.embedder.Dimensions(); want > 0 && len(embedding) != want {
				return false, fmt.Errorf("%w: model %s returned a %d-dimension embedding for chunk %d, want %d",
					domain.ErrEmbeddingUnavailable, i.embedder.ModelName(), len(embedding), idx, want)
			}
			records[idx] = domain.ChunkRecord{Content: chunk, Embedding: embedding}
		}

		if err := i.store.InsertChunks(ctx, collection, doc.ID, records); err != nil {
			return false, err
		}
	}

	return true, nil
}

// ListCollections enumerates stored collections.
func (i *Ingester) ListCollections(ctx context.Context) ([]string, error) {
	return i.store.ListCollections(ctx)
}

// HasContent reports whether any collection holds materialized chunks.
func (i *Ingester) HasContent(ctx context.Context) (bool, error) {
	return i.store.HasChunks(ctx)
}
