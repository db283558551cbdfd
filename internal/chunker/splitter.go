// Package chunker splits document text into overlapping chunks using
// a separator-priority algorithm: text is split on the most preferred
// separator first, oversize pieces recurse on the next separator, and
// the resulting pieces are greedily packed up to the chunk size with
// a configurable overlap carried between consecutive chunks.
//
// All sizes are counted in runes, not bytes, so multibyte text is
// never cut mid-character.
package chunker

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping characters,
// 20% of the default chunk size.
const DefaultOverlap = 200

// DefaultSeparators is the default split priority list. The trailing
// empty string is the universal character-level fallback.
func DefaultSeparators() []string {
	return []string{"\n\n", "\n", ".", " ", ""}
}

// Splitter splits text into overlapping chunks.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// WithSeparators sets the separator priority list, most preferred
// first. An empty string is appended when missing so splitting can
// always fall back to character windows.
func WithSeparators(separators []string) Option {
	return func(s *Splitter) {
		if len(separators) > 0 {
			s.separators = separators
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultOverlap,
		separators: DefaultSeparators(),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 5
	}

	// Ensure the universal fallback terminates the list
	if len(s.separators) == 0 || s.separators[len(s.separators)-1] != "" {
		s.separators = append(append([]string{}, s.separators...), "")
	}

	return s
}

// ChunkSize returns the configured chunk size.
func (s *Splitter) ChunkSize() int {
	return s.chunkSize
}

// Overlap returns the configured overlap.
func (s *Splitter) Overlap() int {
	return s.overlap
}

// Split breaks text into ordered chunks. Empty text yields no chunks;
// text no longer than the chunk size yields exactly one chunk. Order
// is preserved end to end: the chunk index feeds the row-ID scheme.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	return s.split(text, s.separators)
}

// split recursively splits text on the highest-priority separator
// present, then packs the pieces.
func (s *Splitter) split(text string, separators []string) []string {
	sep := ""
	var rest []string
	for i, candidate := range separators {
		if candidate == "" {
			break
		}
		if strings.Contains(text, candidate) {
			sep = candidate
			rest = separators[i+1:]
			break
		}
	}

	// No usable separator left: fall back to fixed character windows.
	if sep == "" {
		return s.windows(text)
	}

	var final []string
	var fitting []string

	for _, piece := range splitAfter(text, sep) {
		if utf8.RuneCountInString(piece) <= s.chunkSize {
			fitting = append(fitting, piece)
			continue
		}

		// Flush pieces gathered so far, then recurse into the
		// oversize piece with the lower-priority separators.
		if len(fitting) > 0 {
			final = append(final, s.pack(fitting)...)
			fitting = nil
		}
		final = append(final, s.split(piece, rest)...)
	}

	if len(fitting) > 0 {
		final = append(final, s.pack(fitting)...)
	}

	return final
}

// windows slices text into chunkSize rune windows stepping by
// chunkSize-overlap. Slicing happens on rune boundaries so the
// fallback never produces invalid UTF-8.
func (s *Splitter) windows(text string) []string {
	runes := []rune(text)
	if len(runes) <= s.chunkSize {
		return []string{text}
	}

	step := s.chunkSize - s.overlap
	if step < 1 {
		step = 1
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + s.chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// pack greedily joins pieces into chunks up to the size limit,
// carrying up to overlap characters of trailing pieces into the next
// chunk. Pieces keep their separators attached, so joining chunks
// minus the overlap reassembles the original text.
func (s *Splitter) pack(pieces []string) []string {
	var chunks []string
	var current []string
	total := 0

	for _, piece := range pieces {
		pieceLen := utf8.RuneCountInString(piece)
		if total+pieceLen > s.chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, ""))

			// Drop leading pieces until the retained tail fits the
			// overlap budget and leaves room for the next piece.
			for len(current) > 0 && (total > s.overlap || total+pieceLen > s.chunkSize) {
				total -= utf8.RuneCountInString(current[0])
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += pieceLen
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, ""))
	}

	return chunks
}

// splitAfter splits text on sep keeping the separator attached to the
// preceding piece, dropping the empty trailing piece when text ends
// with sep.
func splitAfter(text, sep string) []string {
	pieces := strings.SplitAfter(text, sep)
	if n := len(pieces); n > 0 && pieces[n-1] == "" {
		pieces = pieces[:n-1]
	}
	return pieces
}
