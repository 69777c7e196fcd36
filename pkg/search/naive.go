package search

import "github.com/yaklabco/mtfind/pkg/pattern"

// Naive is a linear-scan searcher: every starting position is compared
// against the whole pattern under the wildcard equivalence. O(n*m) worst
// case, useful as the reference implementation the fast searchers are
// checked against.
type Naive struct {
	pat []byte
}

// NewNaive builds a naive searcher for p.
func NewNaive(p pattern.Pattern) *Naive {
	return &Naive{pat: p.Bytes()}
}

// Len returns the pattern length.
func (s *Naive) Len() int {
	return len(s.pat)
}

// Find returns the first match in data, or an empty match at the end.
func (s *Naive) Find(data []byte) Match {
	n, m := len(data), len(s.pat)

	for i := 0; i+m <= n; i++ {
		j := 0
		for j < m && pattern.Equiv(data[i+j], s.pat[j]) {
			j++
		}
		if j == m {
			return Match{Start: i, End: i + m}
		}
	}

	return miss(n)
}
