package domain

import (
	"regexp"
	"strings"
	"unicode"
)

// maxNameTokens is the number of name tokens kept when deriving a
// collection name from a document name.
const maxNameTokens = 3

// ChunkIDStride is the ID range reserved per placeholder row. Final
// chunk rows are assigned ChunkRowID(placeholderID, index), which
// cannot collide with any SQLite-assigned row ID as long as a single
// document never produces ChunkIDStride or more chunks.
const ChunkIDStride = 10000

// nameSeparators matches runs of whitespace, hyphens, and underscores.
var nameSeparators = regexp.MustCompile(`[\s_-]+`)

// SanitizeCollectionName maps an arbitrary document name (typically a
// filename stem) to a storage-safe collection identifier: the first
// three separator-delimited tokens, lowercased and joined with
// underscores. A result starting with a digit is prefixed with "doc_"
// so it remains a valid table name.
//
// The mapping is deterministic and idempotent, which is what makes
// reindexing target the same collection. It is not injective; callers
// that care about collisions must detect them (see services.Ingester).
func SanitizeCollectionName(name string) string {
	parts := nameSeparators.Split(name, -1)
	if len(parts) > maxNameTokens {
		parts = parts[:maxNameTokens]
	}

	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			tokens = append(tokens, part)
		}
	}

	sanitized := strings.Join(tokens, "_")
	if sanitized != "" && unicode.IsDigit(rune(sanitized[0])) {
		sanitized = "doc_" + sanitized
	}

	return sanitized
}

// ChunkRowID computes the row ID for the chunk at the given index,
// derived from the placeholder row the chunk was split from. The
// packing keeps chunk rows clear of the ID range SQLite hands out to
// placeholder rows without declaring AUTOINCREMENT.
func ChunkRowID(placeholderID int64, index int) int64 {
	return placeholderID*ChunkIDStride + int64(index) + 1
}
