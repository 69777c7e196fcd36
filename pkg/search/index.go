package search

import (
	"bytes"

	"github.com/yaklabco/mtfind/pkg/pattern"
)

// Index delegates plain-pattern search to bytes.Index, which uses the
// runtime's vectorized substring primitives. Behaviorally identical to
// BoyerMoore for patterns without wildcards; kept as the fast path candidate
// and as a cross-check in tests and benchmarks.
type Index struct {
	pat []byte
}

// NewIndex builds a stdlib-delegated searcher for p. The pattern must not
// contain wildcards.
func NewIndex(p pattern.Pattern) *Index {
	return &Index{pat: p.Bytes()}
}

// Len returns the pattern length.
func (s *Index) Len() int {
	return len(s.pat)
}

// Find returns the first match in data, or an empty match at the end.
func (s *Index) Find(data []byte) Match {
	i := bytes.Index(data, s.pat)
	if i < 0 {
		return miss(len(data))
	}
	return Match{Start: i, End: i + len(s.pat)}
}
