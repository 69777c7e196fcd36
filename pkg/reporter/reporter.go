// Package reporter formats and writes findings. A reporter is the concrete
// implementation of the two result sinks: the total count arrives first,
// then every finding in order, then Flush.
package reporter

import (
	"fmt"

	"github.com/yaklabco/mtfind/pkg/findings"
)

// Compile-time interface checks.
var (
	_ Reporter = (*TextReporter)(nil)
	_ Reporter = (*JSONReporter)(nil)
)

// Reporter receives a run's results and writes them out.
type Reporter interface {
	// Count receives the total number of findings. Called exactly once,
	// before the first Finding call.
	Count(total int)

	// Finding receives one finding. Calls arrive in ascending
	// (chunk, column) order. The Match bytes are only valid during the
	// call.
	Finding(f findings.Finding)

	// Flush completes the output and returns any write error encountered.
	Flush() error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
