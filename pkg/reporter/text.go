package reporter

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/yaklabco/mtfind/internal/ui/pretty"
	"github.com/yaklabco/mtfind/pkg/findings"
)

// TextReporter writes the classic line-oriented output: the total count on
// its own line, then "<line> <column> <match>" per finding. With color
// disabled (the default for pipes) the bytes written are exactly that, so
// the output is script-safe.
type TextReporter struct {
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Count implements Reporter.
func (r *TextReporter) Count(total int) {
	fmt.Fprintln(r.bw, r.styles.Count.Render(strconv.Itoa(total)))
}

// Finding implements Reporter.
func (r *TextReporter) Finding(f findings.Finding) {
	fmt.Fprintf(r.bw, "%s %s %s\n",
		r.styles.LineNumber.Render(strconv.FormatUint(f.Chunk, 10)),
		r.styles.Column.Render(strconv.Itoa(f.Column)),
		r.styles.Match.Render(string(f.Match)),
	)
}

// Flush implements Reporter.
func (r *TextReporter) Flush() error {
	if err := r.bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
