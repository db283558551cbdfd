package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docvault-cli/internal/core/domain"
	"github.com/custodia-labs/docvault-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docvault-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// DefaultFileName is the database file created when no path is
// configured.
const DefaultFileName = "docvault.db"

// validCollection matches identifiers produced by
// domain.SanitizeCollectionName. Collection names are interpolated
// into DDL (SQLite cannot parameterize table names), so anything else
// is rejected before it reaches a statement.
var validCollection = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Store is a SQLite-backed document store holding one table per
// collection, schema: id INTEGER PRIMARY KEY, raw_text TEXT NULL,
// chunk_text TEXT, embeddings BLOB.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database at dbPath. If dbPath is
// empty, defaults to ~/.docvault/data/docvault.db. Failures wrap
// domain.ErrStorageUnavailable.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%w: getting home directory: %w", domain.ErrStorageUnavailable, err)
		}
		dbPath = filepath.Join(home, ".docvault", "data", DefaultFileName)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %w", domain.ErrStorageUnavailable, err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", domain.ErrStorageUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling foreign keys: %w", domain.ErrStorageUnavailable, err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ReplaceDocument creates the collection table if absent, clears any
// existing rows, and inserts a single placeholder row holding the raw
// document text. The whole replace runs in one transaction.
func (s *Store) ReplaceDocument(ctx context.Context, collection, text string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (
		id INTEGER PRIMARY KEY,
		raw_text TEXT NULL,
		chunk_text TEXT,
		embeddings BLOB
	)`, collection)
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create collection %s: %w", collection, err)
	}

	res, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %q`, collection))
	if err != nil {
		return fmt.Errorf("clear collection %s: %w", collection, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		logger.Info("Collection %s cleared for update (%d rows)", collection, n)
	}

	insert := fmt.Sprintf(`INSERT INTO %q (raw_text) VALUES (?)`, collection)
	if _, err := tx.ExecContext(ctx, insert, text); err != nil {
		return fmt.Errorf("save document to %s: %w", collection, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}

	logger.Debug("Document saved to collection %s (%d bytes)", collection, len(text))
	return nil
}

// PendingDocuments returns the placeholder rows of a collection.
func (s *Store) PendingDocuments(ctx context.Context, collection string) ([]domain.PendingDocument, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT id, raw_text FROM %q WHERE embeddings IS NULL AND raw_text IS NOT NULL ORDER BY id`,
		collection,
	)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pending documents in %s: %w", collection, err)
	}
	defer rows.Close()

	var pending []domain.PendingDocument
	for rows.Next() {
		var p domain.PendingDocument
		if err := rows.Scan(&p.ID, &p.RawText); err != nil {
			return nil, fmt.Errorf("scan pending document: %w", err)
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// InsertChunks inserts the final rows derived from the placeholder
// and deletes the placeholder, all in one transaction. Row IDs follow
// domain.ChunkRowID, so a document may produce at most
// domain.ChunkIDStride-1 chunks.
func (s *Store) InsertChunks(
	ctx context.Context, collection string, placeholderID int64, chunks []domain.ChunkRecord,
) error {
	if err := checkCollection(collection); err != nil {
		return err
	}
	if len(chunks) >= domain.ChunkIDStride {
		return fmt.Errorf("%w: %d chunks in %s", domain.ErrTooManyChunks, len(chunks), collection)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin materialize: %w", err)
	}
	defer tx.Rollback()

	insert, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %q (id, raw_text, chunk_text, embeddings) VALUES (?, NULL, ?, ?)`,
		collection,
	))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer insert.Close()

	for i, chunk := range chunks {
		id := domain.ChunkRowID(placeholderID, i)
		if _, err := insert.ExecContext(ctx, id, chunk.Content, chunk.Embedding.Encode()); err != nil {
			return fmt.Errorf("insert chunk %d into %s: %w", i, collection, err)
		}
	}

	if _, err := tx.ExecContext(
		ctx, fmt.Sprintf(`DELETE FROM %q WHERE id = ?`, collection), placeholderID,
	); err != nil {
		return fmt.Errorf("delete placeholder %d in %s: %w", placeholderID, collection, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit materialize: %w", err)
	}

	logger.Info("Collection %s materialized: %d chunks", collection, len(chunks))
	return nil
}

// ListCollections enumerates all user tables.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan collection name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Chunks returns the final rows with decoded embeddings, in row
// order. With an empty collection every table carrying the chunk
// schema is scanned; tables without it (or mid-rebuild placeholders)
// are skipped.
func (s *Store) Chunks(ctx context.Context, collection string) ([]domain.ChunkRecord, error) {
	var collections []string

	if collection != "" {
		if err := checkCollection(collection); err != nil {
			return nil, err
		}
		exists, err := s.tableExists(ctx, collection)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("collection %s: %w", collection, domain.ErrNotFound)
		}
		collections = []string{collection}
	} else {
		var err error
		collections, err = s.ListCollections(ctx)
		if err != nil {
			return nil, err
		}
	}

	var records []domain.ChunkRecord
	for _, name := range collections {
		ok, err := s.hasChunkSchema(ctx, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Debug("Skipping table %s: no chunk schema", name)
			continue
		}

		if err := s.scanChunks(ctx, name, &records); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// HasChunks reports whether any collection holds a final row.
func (s *Store) HasChunks(ctx context.Context) (bool, error) {
	collections, err := s.ListCollections(ctx)
	if err != nil {
		return false, err
	}

	for _, name := range collections {
		ok, err := s.hasChunkSchema(ctx, name)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}

		var n int
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %q WHERE embeddings IS NOT NULL`, name)
		if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
			return false, fmt.Errorf("count chunks in %s: %w", name, err)
		}
		if n > 0 {
			return true, nil
		}
	}

	return false, nil
}

// scanChunks appends the final rows of one collection to records.
func (s *Store) scanChunks(ctx context.Context, collection string, records *[]domain.ChunkRecord) error {
	query := fmt.Sprintf(
		`SELECT id, chunk_text, embeddings FROM %q
		 WHERE chunk_text IS NOT NULL AND embeddings IS NOT NULL ORDER BY id`,
		collection,
	)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("read chunks in %s: %w", collection, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec  domain.ChunkRecord
			blob []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Content, &blob); err != nil {
			return fmt.Errorf("scan chunk in %s: %w", collection, err)
		}

		rec.Collection = collection
		rec.Embedding, err = domain.DecodeVector(blob)
		if err != nil {
			return fmt.Errorf("decode embedding for row %d in %s: %w", rec.ID, collection, err)
		}

		*records = append(*records, rec)
	}
	return rows.Err()
}

// hasChunkSchema reports whether a table carries the chunk_text and
// embeddings columns. Guards the all-collection scan against
// unrelated tables in the same file.
func (s *Store) hasChunkSchema(ctx context.Context, table string) (bool, error) {
	if err := checkCollection(table); err != nil {
		// Tables we could not have created are not collections.
		return false, nil
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%q)`, table))
	if err != nil {
		return false, fmt.Errorf("table info for %s: %w", table, err)
	}
	defer rows.Close()

	var hasChunkText, hasEmbeddings bool
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, fmt.Errorf("scan table info: %w", err)
		}
		switch name {
		case "chunk_text":
			hasChunkText = true
		case "embeddings":
			hasEmbeddings = true
		}
	}
	return hasChunkText && hasEmbeddings, rows.Err()
}

// tableExists reports whether a table is present in the database.
func (s *Store) tableExists(ctx context.Context, table string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = ?`, table).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return n > 0, nil
}

// checkCollection rejects identifiers the sanitizer could not have
// produced.
func checkCollection(collection string) error {
	if !validCollection.MatchString(collection) {
		return fmt.Errorf("%w: invalid collection name %q", domain.ErrInvalidInput, collection)
	}
	return nil
}
