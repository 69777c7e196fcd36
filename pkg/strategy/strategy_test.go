package strategy_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mtfind/pkg/findings"
	"github.com/yaklabco/mtfind/pkg/pattern"
	"github.com/yaklabco/mtfind/pkg/search"
	"github.com/yaklabco/mtfind/pkg/split"
	"github.com/yaklabco/mtfind/pkg/strategy"
	"github.com/yaklabco/mtfind/pkg/tokenize"
)

// capture records everything a strategy emits, plus ordering facts the
// sink contract promises.
type capture struct {
	total      int
	countCalls int
	items      []findings.Finding
}

func (c *capture) countSink(total int) {
	c.countCalls++
	c.total = total
}

func (c *capture) sink(f findings.Finding) {
	c.items = append(c.items, f)
}

// render formats captured output the way the CLI prints it, which keeps the
// expectations readable.
func (c *capture) render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d\n", c.total)
	for _, f := range c.items {
		fmt.Fprintf(&sb, "%d %d %s\n", f.Chunk, f.Column, f.Match)
	}
	return sb.String()
}

func newTokenizer(t *testing.T, pat string) tokenize.Tokenizer {
	t.Helper()

	p, err := pattern.Parse(pat)
	require.NoError(t, err)
	return tokenize.New(search.New(p))
}

// runDivide runs divide-and-conquer over input with the given worker count.
func runDivide(t *testing.T, input, pat string, workers int) *capture {
	t.Helper()

	c := &capture{}
	tok := newTokenizer(t, pat)
	require.NoError(t, strategy.DivideAndConquer([]byte(input), '\n', tok, workers, c.countSink, c.sink))
	return c
}

// runRoundRobin runs round-robin over a region splitter.
func runRoundRobin(t *testing.T, input, pat string, workers int) *capture {
	t.Helper()

	c := &capture{}
	tok := newTokenizer(t, pat)
	sp := split.NewRegionSplitter([]byte(input), '\n')
	require.NoError(t, strategy.RoundRobin(sp, tok, workers, c.countSink, c.sink))
	return c
}

// runRoundRobinStream runs round-robin over a stream splitter.
func runRoundRobinStream(t *testing.T, input, pat string, workers int) *capture {
	t.Helper()

	c := &capture{}
	tok := newTokenizer(t, pat)
	sp := split.NewStreamSplitter(strings.NewReader(input), '\n')
	require.NoError(t, strategy.RoundRobin(sp, tok, workers, c.countSink, c.sink))
	return c
}

func TestScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		pattern string
		want    string
	}{
		{
			name:    "single finding",
			input:   "Look up a pattern in this text\n",
			pattern: "pattern",
			want:    "1\n1 11 pattern\n",
		},
		{
			name:    "wildcard across lines",
			input:   "bad\nmad\nsad\n",
			pattern: "?ad",
			want:    "3\n1 1 bad\n2 1 mad\n3 1 sad\n",
		},
		{
			name:    "contiguous matches",
			input:   "abcabcabc\n",
			pattern: "abc",
			want:    "3\n1 1 abc\n1 4 abc\n1 7 abc\n",
		},
		{
			name:    "overlaps skipped by length",
			input:   "aaaaa\n",
			pattern: "aa",
			want:    "2\n1 1 aa\n1 3 aa\n",
		},
		{
			name:    "wildcard tolerates non-ascii source bytes",
			input:   "\xFF\xFE\x80\x81good\n",
			pattern: "?ood",
			want:    "1\n1 5 good\n",
		},
		{
			name:    "empty lines shift line numbers",
			input:   "\n\nhit\n\nhit\n",
			pattern: "hit",
			want:    "2\n3 1 hit\n5 1 hit\n",
		},
		{
			name:    "no findings",
			input:   "nothing here\n",
			pattern: "absent",
			want:    "0\n",
		},
		{
			name:    "unterminated final line",
			input:   "one\ntwo",
			pattern: "two",
			want:    "1\n2 1 two\n",
		},
	}

	workerCounts := []int{1, 2, 4, 16}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, w := range workerCounts {
				assert.Equal(t, tt.want, runDivide(t, tt.input, tt.pattern, w).render(),
					"divide-and-conquer, %d workers", w)
				assert.Equal(t, tt.want, runRoundRobin(t, tt.input, tt.pattern, w).render(),
					"round-robin region, %d workers", w)
				assert.Equal(t, tt.want, runRoundRobinStream(t, tt.input, tt.pattern, w).render(),
					"round-robin stream, %d workers", w)
			}
		})
	}
}

// buildCorpus produces the scenario-5 style fixture: lines of filler, a
// known subset of which contain the needle at varying columns.
func buildCorpus(needle string, lines, hits int) (string, int) {
	rng := rand.New(rand.NewSource(42))

	var sb strings.Builder
	planted := 0
	for i := 0; i < lines; i++ {
		filler := strings.Repeat("x", 1+rng.Intn(40))
		if i%(lines/hits) == 0 && planted < hits {
			col := rng.Intn(len(filler))
			sb.WriteString(filler[:col])
			sb.WriteString(needle)
			sb.WriteString(filler[col:])
			planted++
		} else {
			sb.WriteString(filler)
		}
		sb.WriteByte('\n')
	}
	return sb.String(), planted
}

func TestWorkerCountInvariance(t *testing.T) {
	t.Parallel()

	input, hits := buildCorpus("vitae", 40, 30)

	reference := runDivide(t, input, "vitae", 1)
	require.Equal(t, hits, reference.total)

	for _, w := range []int{1, 4, 16} {
		assert.Equal(t, reference.render(), runDivide(t, input, "vitae", w).render(),
			"divide-and-conquer with %d workers", w)
		assert.Equal(t, reference.render(), runRoundRobin(t, input, "vitae", w).render(),
			"round-robin with %d workers", w)
		assert.Equal(t, reference.render(), runRoundRobinStream(t, input, "vitae", w).render(),
			"round-robin stream with %d workers", w)
	}
}

// Strategies must agree with each other on randomized inputs, including
// inputs engineered to stress partition boundaries: long delimiter runs,
// tiny lines, lines far larger than the per-worker span.
func TestStrategyEquivalence(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	alphabet := "ab\n"

	for round := 0; round < 200; round++ {
		n := rng.Intn(300)
		data := make([]byte, n)
		for i := range data {
			data[i] = alphabet[rng.Intn(len(alphabet))]
		}
		input := string(data)

		pat := []string{"a", "ab", "?b", "aa?", "b?a"}[rng.Intn(5)]
		workers := 1 + rng.Intn(7)

		want := runDivide(t, input, pat, 1).render()
		require.Equal(t, want, runDivide(t, input, pat, workers).render(),
			"divide-and-conquer disagrees, input %q pattern %q workers %d", input, pat, workers)
		require.Equal(t, want, runRoundRobin(t, input, pat, workers).render(),
			"round-robin disagrees, input %q pattern %q workers %d", input, pat, workers)
	}
}

// Uneven partitioning: more workers than bytes, delimiter runs at the cut
// points, and a worker count exceeding the line count must not shift global
// chunk indices.
func TestUnevenPartitioning(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"a\n",
		"\n\n\n\n\n",
		"hit\n\n\n\nhit\n",
		"\n\nhit",
		strings.Repeat("\n", 64) + "hit\n",
		"hit" + strings.Repeat("\n", 64) + "hit",
	}

	for _, input := range inputs {
		want := runDivide(t, input, "hit", 1).render()
		for _, w := range []int{2, 3, 5, 16, 64} {
			assert.Equal(t, want, runDivide(t, input, "hit", w).render(),
				"input %q workers %d", input, w)
			assert.Equal(t, want, runRoundRobin(t, input, "hit", w).render(),
				"input %q workers %d", input, w)
		}
	}
}

func TestSinkContract(t *testing.T) {
	t.Parallel()

	input, _ := buildCorpus("vitae", 40, 30)
	tok := newTokenizer(t, "vitae")

	var order []string
	countSink := func(total int) { order = append(order, fmt.Sprintf("count:%d", total)) }
	sink := func(_ findings.Finding) { order = append(order, "item") }

	require.NoError(t, strategy.DivideAndConquer([]byte(input), '\n', tok, 4, countSink, sink))

	require.NotEmpty(t, order)
	assert.Equal(t, "count:30", order[0], "count is emitted exactly once, before any item")
	for _, entry := range order[1:] {
		assert.Equal(t, "item", entry)
	}
}

// Emitted findings obey the universal laws: pattern-length matches, pattern
// consistency, position recovery against the source, non-overlap within a
// chunk, and global (chunk, column) ordering.
func TestFindingLaws(t *testing.T) {
	t.Parallel()

	input, _ := buildCorpus("vi?ae", 40, 30)
	pat := "vi?ae"
	p, err := pattern.Parse(pat)
	require.NoError(t, err)

	c := runDivide(t, input, pat, 8)
	require.Equal(t, c.total, len(c.items))

	lines := strings.Split(strings.TrimSuffix(input, "\n"), "\n")

	var prev findings.Finding
	for i, f := range c.items {
		require.Len(t, f.Match, p.Len(), "length law")

		for j, pb := range p.Bytes() {
			if pb != pattern.Wildcard {
				require.Equal(t, pb, f.Match[j], "pattern consistency at %d", j)
			}
		}

		require.GreaterOrEqual(t, f.Chunk, uint64(1))
		require.GreaterOrEqual(t, f.Column, 1)
		line := lines[f.Chunk-1]
		require.Equal(t, line[f.Column-1:f.Column-1+p.Len()], string(f.Match), "position law")

		if i > 0 {
			if f.Chunk == prev.Chunk {
				require.GreaterOrEqual(t, f.Column, prev.Column+p.Len(), "non-overlap within chunk")
			} else {
				require.Greater(t, f.Chunk, prev.Chunk, "global chunk ordering")
			}
		}
		prev = f
	}
}
