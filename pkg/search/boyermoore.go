package search

import "github.com/yaklabco/mtfind/pkg/pattern"

// BoyerMoore searches with the classic bad-character heuristic: the pattern
// is compared right to left against the current window, and on a mismatch the
// window jumps past positions that cannot match the offending source byte.
// Sublinear on typical text, never worse than O(n*m).
type BoyerMoore struct {
	pat []byte

	// last[b] is the rightmost index of byte b in the pattern, or -1.
	last [256]int
}

// NewBoyerMoore builds a bad-character searcher for p. The pattern must not
// contain wildcards; use NewWildcardBoyerMoore for those.
func NewBoyerMoore(p pattern.Pattern) *BoyerMoore {
	s := &BoyerMoore{pat: p.Bytes()}
	for i := range s.last {
		s.last[i] = -1
	}
	for i, b := range s.pat {
		s.last[b] = i
	}
	return s
}

// Len returns the pattern length.
func (s *BoyerMoore) Len() int {
	return len(s.pat)
}

// Find returns the first match in data, or an empty match at the end.
func (s *BoyerMoore) Find(data []byte) Match {
	n, m := len(data), len(s.pat)

	for i := 0; i+m <= n; {
		j := m - 1
		for j >= 0 && data[i+j] == s.pat[j] {
			j--
		}
		if j < 0 {
			return Match{Start: i, End: i + m}
		}

		shift := j - s.last[data[i+j]]
		if shift < 1 {
			shift = 1
		}
		i += shift
	}

	return miss(n)
}

// WildcardBoyerMoore is the Boyer–Moore variant for patterns containing '?'.
// The precomputed bad-character table does not apply under the wildcard
// equivalence (the wildcard accepts every byte), so on a mismatch the shift
// is derived by scanning earlier pattern positions for the first one that
// accepts the offending source byte.
type WildcardBoyerMoore struct {
	pat []byte
}

// NewWildcardBoyerMoore builds the wildcard-aware searcher for p.
func NewWildcardBoyerMoore(p pattern.Pattern) *WildcardBoyerMoore {
	return &WildcardBoyerMoore{pat: p.Bytes()}
}

// Len returns the pattern length.
func (s *WildcardBoyerMoore) Len() int {
	return len(s.pat)
}

// Find returns the first match in data, or an empty match at the end.
func (s *WildcardBoyerMoore) Find(data []byte) Match {
	n, m := len(data), len(s.pat)

	for i := 0; i+m <= n; {
		j := m - 1
		for j >= 0 && pattern.Equiv(data[i+j], s.pat[j]) {
			j--
		}
		if j < 0 {
			return Match{Start: i, End: i + m}
		}

		// Align the mismatched source byte with the nearest pattern position
		// to its left that accepts it. Falling off the pattern (j2 == -1)
		// shifts the window past the byte entirely.
		b := data[i+j]
		j2 := j - 1
		for j2 >= 0 && !pattern.Equiv(b, s.pat[j2]) {
			j2--
		}
		i += j - j2
	}

	return miss(n)
}
