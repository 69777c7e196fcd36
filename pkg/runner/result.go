package runner

import (
	"time"

	"github.com/yaklabco/mtfind/pkg/config"
)

// Result captures aggregate information about a completed run.
type Result struct {
	// Findings is the total number of matches emitted.
	Findings int

	// Bytes is the size of the searched input, when known. Zero for
	// streams.
	Bytes int

	// Strategy is the execution plan that actually ran (never
	// StrategyAuto).
	Strategy config.Strategy

	// Mapped reports whether the source was memory-mapped.
	Mapped bool

	// Duration is the wall-clock time of the search itself, excluding
	// source open and close.
	Duration time.Duration
}

// HasFindings reports whether any match was found.
func (r *Result) HasFindings() bool {
	return r != nil && r.Findings > 0
}
