// Package search locates the first occurrence of a fixed-length pattern in a
// byte range. Two algorithm families are provided: a naive linear scan,
// which always compares under the wildcard equivalence, and a Boyer–Moore
// scan with the bad-character heuristic in a plain variant and a
// wildcard-aware variant. Index delegates plain patterns to bytes.Index.
package search

import "github.com/yaklabco/mtfind/pkg/pattern"

// Match is a half-open [Start, End) subrange of the searched data. A missed
// search is represented by an empty match positioned at the end of the data.
type Match struct {
	Start int
	End   int
}

// Empty reports whether the match holds no bytes.
func (m Match) Empty() bool {
	return m.Start >= m.End
}

// Len returns the number of bytes the match covers.
func (m Match) Len() int {
	return m.End - m.Start
}

// Searcher finds the first pattern occurrence in a byte range.
type Searcher interface {
	// Find returns the first match in data, or an empty match at the end of
	// data when the pattern does not occur.
	Find(data []byte) Match

	// Len returns the pattern length. Every non-empty match spans exactly
	// this many bytes.
	Len() int
}

// New returns the production searcher for p: Boyer–Moore with the
// bad-character table for plain patterns, or the wildcard-aware Boyer–Moore
// variant when p contains '?'.
func New(p pattern.Pattern) Searcher {
	if p.Wildcard() {
		return NewWildcardBoyerMoore(p)
	}
	return NewBoyerMoore(p)
}

// miss builds the canonical no-match result for data of length n.
func miss(n int) Match {
	return Match{Start: n, End: n}
}
