package cli

import (
	"context"

	"github.com/custodia-labs/docvault-cli/internal/core/domain"
)

// --- Fake services injected into the package-level wiring ---

// fakeDocStore implements driven.DocumentStore for command tests.
type fakeDocStore struct {
	collections []string
}

func (f *fakeDocStore) ReplaceDocument(context.Context, string, string) error { return nil }

func (f *fakeDocStore) PendingDocuments(context.Context, string) ([]domain.PendingDocument, error) {
	return nil, nil
}

func (f *fakeDocStore) InsertChunks(context.Context, string, int64, []domain.ChunkRecord) error {
	return nil
}

func (f *fakeDocStore) ListCollections(context.Context) ([]string, error) {
	return f.collections, nil
}

func (f *fakeDocStore) Chunks(context.Context, string) ([]domain.ChunkRecord, error) {
	return nil, nil
}

func (f *fakeDocStore) HasChunks(context.Context) (bool, error) { return false, nil }

func (f *fakeDocStore) Close() error { return nil }

// fakeSearchService implements driving.SearchService.
type fakeSearchService struct {
	results   []domain.SearchResult
	err       error
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (f *fakeSearchService) Search(_ context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	f.lastQuery = query
	f.lastOpts = opts
	return f.results, f.err
}

func (f *fakeSearchService) SearchVector(context.Context, domain.Vector, domain.SearchOptions) ([]domain.SearchResult, error) {
	return f.results, f.err
}

// fakeChatService implements driving.ChatService.
type fakeChatService struct {
	answer    string
	err       error
	questions []string
	resets    int
}

func (f *fakeChatService) Query(_ context.Context, question string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.questions = append(f.questions, question)
	return f.answer, nil
}

func (f *fakeChatService) Reset() { f.resets++ }

func (f *fakeChatService) History() []domain.Turn { return nil }

// fakeIngestService implements driving.IngestService.
type fakeIngestService struct {
	report     domain.IngestReport
	hasContent bool
	ingested   []string
}

func (f *fakeIngestService) Ingest(_ context.Context, dir string) (domain.IngestReport, error) {
	f.ingested = append(f.ingested, dir)
	return f.report, nil
}

func (f *fakeIngestService) SaveDocument(context.Context, string, string) error { return nil }

func (f *fakeIngestService) MaterializeEmbeddings(context.Context) (domain.IngestReport, error) {
	return f.report, nil
}

func (f *fakeIngestService) ListCollections(context.Context) ([]string, error) { return nil, nil }

func (f *fakeIngestService) HasContent(context.Context) (bool, error) { return f.hasContent, nil }

// resetServices clears injected services and flag state after a test.
func resetServices() {
	docStore = nil
	promptStore = nil
	ingestService = nil
	searchService = nil
	chatService = nil
	settingsLoaded = false

	searchTopK = 3
	searchJSON = false
	searchCollection = ""
	indexReindex = false
	indexWatch = false

	rootCmd.SetArgs(nil)
	rootCmd.SetIn(nil)
}
