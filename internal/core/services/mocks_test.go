package services

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/docvault-cli/internal/core/domain"
	"github.com/custodia-labs/docvault-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockDocumentStore is an in-memory driven.DocumentStore for testing.
type mockDocumentStore struct {
	mu         sync.Mutex
	nextID     int64
	pending    map[string][]domain.PendingDocument
	chunks     map[string][]domain.ChunkRecord
	replaceErr error
	chunksErr  error
	insertErr  error
}

func newMockDocumentStore() *mockDocumentStore {
	return &mockDocumentStore{
		pending: make(map[string][]domain.PendingDocument),
		chunks:  make(map[string][]domain.ChunkRecord),
	}
}

func (m *mockDocumentStore) ReplaceDocument(_ context.Context, collection, text string) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.pending[collection] = []domain.PendingDocument{{ID: m.nextID, RawText: text}}
	m.chunks[collection] = nil
	return nil
}

func (m *mockDocumentStore) PendingDocuments(_ context.Context, collection string) ([]domain.PendingDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending[collection], nil
}

func (m *mockDocumentStore) InsertChunks(_ context.Context, collection string, placeholderID int64, chunks []domain.ChunkRecord) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]domain.ChunkRecord, len(chunks))
	for i, chunk := range chunks {
		chunk.ID = domain.ChunkRowID(placeholderID, i)
		chunk.Collection = collection
		records[i] = chunk
	}
	m.chunks[collection] = records
	m.pending[collection] = nil
	return nil
}

func (m *mockDocumentStore) ListCollections(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.pending))
	for name := range m.pending {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *mockDocumentStore) Chunks(_ context.Context, collection string) ([]domain.ChunkRecord, error) {
	if m.chunksErr != nil {
		return nil, m.chunksErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if collection != "" {
		if _, ok := m.chunks[collection]; !ok {
			return nil, domain.ErrNotFound
		}
		return m.chunks[collection], nil
	}

	names := make([]string, 0, len(m.chunks))
	for name := range m.chunks {
		names = append(names, name)
	}
	sort.Strings(names)

	var all []domain.ChunkRecord
	for _, name := range names {
		all = append(all, m.chunks[name]...)
	}
	return all, nil
}

func (m *mockDocumentStore) HasChunks(_ context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, records := range m.chunks {
		if len(records) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockDocumentStore) Close() error {
	return nil
}

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Texts embed to a fixed vector unless overridden per text.
type mockEmbeddingService struct {
	mu       sync.Mutex
	vectors  map[string][]float64
	fallback []float64
	embedErr error
	calls    int
}

func newMockEmbeddingService() *mockEmbeddingService {
	return &mockEmbeddingService{
		vectors:  make(map[string][]float64),
		fallback: []float64{1, 0},
	}
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if vec, ok := m.vectors[text]; ok {
		return vec, nil
	}
	return m.fallback, nil
}

func (m *mockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		vec, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int            { return 2 }
func (m *mockEmbeddingService) ModelName() string          { return "mock-embed" }
func (m *mockEmbeddingService) Ping(context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error               { return nil }

// mockCompletionService implements driven.CompletionService for testing.
type mockCompletionService struct {
	answer       string
	chatErr      error
	lastMessages []driven.ChatMessage
}

func (m *mockCompletionService) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.lastMessages = messages
	if m.chatErr != nil {
		return "", m.chatErr
	}
	return m.answer, nil
}

func (m *mockCompletionService) ModelName() string          { return "mock-llm" }
func (m *mockCompletionService) Ping(context.Context) error { return nil }
func (m *mockCompletionService) Close() error               { return nil }

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	loadErr error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	return m.prompts[name], nil
}

func (m *mockPromptStore) Reload() {}
