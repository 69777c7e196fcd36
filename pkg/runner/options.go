// Package runner orchestrates a single search run: it opens the source,
// selects the execution strategy, and streams results to the caller's sinks.
package runner

import (
	"io"
	"os"

	"github.com/yaklabco/mtfind/pkg/config"
	"github.com/yaklabco/mtfind/pkg/pattern"
)

// StdinPath is the input argument that selects standard input.
const StdinPath = "-"

// Options controls a run.
type Options struct {
	// Input is the file to search, or StdinPath for standard input.
	Input string

	// Pattern is the validated search pattern.
	Pattern pattern.Pattern

	// Jobs is the worker count. 0 or negative means "auto"
	// (hardware concurrency).
	Jobs int

	// Strategy selects the execution plan. StrategyAuto picks
	// divide-and-conquer for files (mapped or read into memory) and
	// round-robin for streams.
	Strategy config.Strategy

	// Delimiter separates chunks. Zero means newline.
	Delimiter byte

	// Stdin is the stream used when Input is StdinPath. Defaults to
	// os.Stdin.
	Stdin io.Reader
}

// effectiveDelimiter returns the chunk separator to use.
func (o Options) effectiveDelimiter() byte {
	if o.Delimiter == 0 {
		return '\n'
	}
	return o.Delimiter
}

// effectiveStdin returns the stream to read when the input is StdinPath.
func (o Options) effectiveStdin() io.Reader {
	if o.Stdin == nil {
		return os.Stdin
	}
	return o.Stdin
}
