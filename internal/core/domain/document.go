package domain

// PendingDocument is a placeholder row: the full raw text of a saved
// document that has not been chunked and embedded yet. Exactly one
// placeholder exists per collection between a save and the next
// materialization pass.
type PendingDocument struct {
	// ID is the store-assigned row ID of the placeholder.
	ID int64

	// RawText is the complete original document text.
	RawText string
}

// ChunkRecord is a final row: one text segment of a document together
// with its embedding. After a successful materialization a collection
// contains only chunk records, one per chunk, in document order.
type ChunkRecord struct {
	// ID is the packed row ID (see ChunkRowID).
	ID int64

	// Collection is the sanitized collection the chunk belongs to.
	Collection string

	// Content is the chunk text.
	Content string

	// Embedding is the decoded vector for Content.
	Embedding Vector
}

// SearchOptions configures a similarity query.
type SearchOptions struct {
	// TopK is the number of highest-scoring chunks to return.
	TopK int

	// Collection restricts the scan to a single collection.
	// Empty means every collection with the chunk schema.
	Collection string
}

// SearchResult is a single ranked chunk from a similarity query.
type SearchResult struct {
	// Content is the chunk text.
	Content string

	// Collection identifies the source document's collection.
	Collection string

	// Score is the cosine similarity against the query vector.
	Score float64
}

// IngestFailure records one document that could not be ingested.
type IngestFailure struct {
	// Document is the source name (filename stem or path).
	Document string

	// Collection is the sanitized collection name, when resolved.
	Collection string

	// Err is the failure cause.
	Err error
}

// IngestReport aggregates the outcome of a bulk ingestion pass.
// Failures are isolated per document: one bad file never aborts
// indexing of the rest.
type IngestReport struct {
	// Indexed lists collections that were fully materialized.
	Indexed []string

	// Failures lists documents that were skipped or partially
	// processed, with causes.
	Failures []IngestFailure
}

// OK reports whether every document in the pass succeeded.
func (r IngestReport) OK() bool {
	return len(r.Failures) == 0
}
