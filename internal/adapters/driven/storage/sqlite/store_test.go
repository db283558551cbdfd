package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvault-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "docvault-test-*")
	require.NoError(t, err)

	store, err := NewStore(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

// materialize saves a document and embeds it with the given vectors,
// one chunk per vector.
func materialize(t *testing.T, store *Store, collection, text string, vectors []domain.Vector) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.ReplaceDocument(ctx, collection, text))

	pending, err := store.PendingDocuments(ctx, collection)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	chunks := make([]domain.ChunkRecord, len(vectors))
	for i, vec := range vectors {
		chunks[i] = domain.ChunkRecord{Content: text, Embedding: vec}
	}
	require.NoError(t, store.InsertChunks(ctx, collection, pending[0].ID, chunks))
}

func TestReplaceDocumentCreatesPlaceholder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	err := store.ReplaceDocument(ctx, "migraine_guide", "full document text")
	require.NoError(t, err)

	pending, err := store.PendingDocuments(ctx, "migraine_guide")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "full document text", pending[0].RawText)
	assert.Positive(t, pending[0].ID)
}

func TestReplaceDocumentClearsExistingRows(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.ReplaceDocument(ctx, "notes", "first version"))
	require.NoError(t, store.ReplaceDocument(ctx, "notes", "second version"))

	pending, err := store.PendingDocuments(ctx, "notes")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "second version", pending[0].RawText)
}

func TestReplaceDocumentRejectsInvalidName(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.ReplaceDocument(context.Background(), "bad name; DROP TABLE x", "text")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInsertChunksMaterializesCollection(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.ReplaceDocument(ctx, "notes", "chunk one chunk two"))
	pending, err := store.PendingDocuments(ctx, "notes")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	placeholderID := pending[0].ID

	chunks := []domain.ChunkRecord{
		{Content: "chunk one", Embedding: domain.Vector{1, 0}},
		{Content: "chunk two", Embedding: domain.Vector{0, 1}},
	}
	require.NoError(t, store.InsertChunks(ctx, "notes", placeholderID, chunks))

	// Placeholder is gone, only final rows remain.
	pending, err = store.PendingDocuments(ctx, "notes")
	require.NoError(t, err)
	assert.Empty(t, pending)

	records, err := store.Chunks(ctx, "notes")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, domain.ChunkRowID(placeholderID, 0), records[0].ID)
	assert.Equal(t, domain.ChunkRowID(placeholderID, 1), records[1].ID)
	assert.Equal(t, "chunk one", records[0].Content)
	assert.Equal(t, domain.Vector{1, 0}, records[0].Embedding)
	assert.Equal(t, "notes", records[0].Collection)
}

func TestInsertChunksEnforcesChunkLimit(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.ReplaceDocument(ctx, "huge", "text"))

	err := store.InsertChunks(ctx, "huge", 1, make([]domain.ChunkRecord, domain.ChunkIDStride))
	assert.ErrorIs(t, err, domain.ErrTooManyChunks)
}

func TestChunksScansAllCollections(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	materialize(t, store, "alpha", "alpha text", []domain.Vector{{1, 0}})
	materialize(t, store, "beta", "beta text", []domain.Vector{{0, 1}})

	records, err := store.Chunks(ctx, "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "alpha", records[0].Collection)
	assert.Equal(t, "beta", records[1].Collection)
}

func TestChunksSkipsTablesWithoutChunkSchema(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	materialize(t, store, "alpha", "alpha text", []domain.Vector{{1, 0}})

	// An unrelated table in the same file must not break the scan.
	_, err := store.db.ExecContext(ctx, `CREATE TABLE unrelated (k TEXT, v TEXT)`)
	require.NoError(t, err)

	records, err := store.Chunks(ctx, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "alpha", records[0].Collection)
}

func TestChunksMissingCollection(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.Chunks(context.Background(), "no_such_collection")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCollections(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	names, err := store.ListCollections(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, store.ReplaceDocument(ctx, "zeta", "z"))
	require.NoError(t, store.ReplaceDocument(ctx, "alpha", "a"))

	names, err = store.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, names)
}

func TestHasChunks(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	has, err := store.HasChunks(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	// A placeholder alone is not materialized content.
	require.NoError(t, store.ReplaceDocument(ctx, "notes", "text"))
	has, err = store.HasChunks(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	materialize(t, store, "notes", "text", []domain.Vector{{0.5}})
	has, err = store.HasChunks(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestReindexIsIdempotent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	vectors := []domain.Vector{{0.1, 0.2}, {0.3, 0.4}}

	materialize(t, store, "notes", "same content", vectors)
	first, err := store.Chunks(ctx, "notes")
	require.NoError(t, err)

	materialize(t, store, "notes", "same content", vectors)
	second, err := store.Chunks(ctx, "notes")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEmbeddingEncodingRoundTripsThroughStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	vec := domain.Vector{0.1234567890123456, -1e-17, 42}
	materialize(t, store, "precision", "text", []domain.Vector{vec})

	records, err := store.Chunks(ctx, "precision")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, vec, records[0].Embedding)
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "docvault-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(filepath.Join(tempDir, "nested", "dir", "db.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(tempDir, "nested", "dir"))
	assert.NoError(t, err)
}
