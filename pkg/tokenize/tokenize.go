// Package tokenize extracts every non-overlapping pattern match from a chunk.
package tokenize

import "github.com/yaklabco/mtfind/pkg/search"

// Tokenizer walks a chunk with a searcher, emitting all non-overlapping
// matches left to right. After each match the cursor advances to the match
// end, so overlapping occurrences are skipped by pattern length.
type Tokenizer struct {
	searcher search.Searcher
}

// New builds a tokenizer around s.
func New(s search.Searcher) Tokenizer {
	return Tokenizer{searcher: s}
}

// Scan finds every match in chunk and passes each to emit with offsets
// relative to the chunk start.
func (t Tokenizer) Scan(chunk []byte, emit func(m search.Match)) {
	for cursor := 0; cursor < len(chunk); {
		m := t.searcher.Find(chunk[cursor:])
		if m.Empty() {
			return
		}
		emit(search.Match{Start: cursor + m.Start, End: cursor + m.End})
		cursor += m.End
	}
}
