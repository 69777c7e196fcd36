package reporter

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mtfind/pkg/findings"
)

// JSONReporter writes a single JSON document with the total and the ordered
// findings. Findings are encoded as they stream in, so memory stays flat on
// match-heavy inputs.
type JSONReporter struct {
	bw      *bufio.Writer
	started bool
	err     error
}

// jsonFinding is the wire shape of one finding.
type jsonFinding struct {
	Line   uint64 `json:"line"`
	Column int    `json:"column"`
	Match  string `json:"match"`
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		bw: bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Count implements Reporter.
func (r *JSONReporter) Count(total int) {
	fmt.Fprintf(r.bw, "{\"total\":%d,\"findings\":[", total)
}

// Finding implements Reporter.
func (r *JSONReporter) Finding(f findings.Finding) {
	if r.err != nil {
		return
	}

	item, err := json.Marshal(jsonFinding{
		Line:   f.Chunk,
		Column: f.Column,
		Match:  string(f.Match),
	})
	if err != nil {
		r.err = fmt.Errorf("encode finding: %w", err)
		return
	}

	if r.started {
		r.bw.WriteByte(',')
	}
	r.started = true
	r.bw.Write(item)
}

// Flush implements Reporter.
func (r *JSONReporter) Flush() error {
	if r.err != nil {
		return r.err
	}
	r.bw.WriteString("]}\n")
	if err := r.bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
