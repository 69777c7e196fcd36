package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mtfind/internal/logging"
	"github.com/yaklabco/mtfind/pkg/config"
	"github.com/yaklabco/mtfind/pkg/findings"
	"github.com/yaklabco/mtfind/pkg/search"
	"github.com/yaklabco/mtfind/pkg/source"
	"github.com/yaklabco/mtfind/pkg/split"
	"github.com/yaklabco/mtfind/pkg/strategy"
	"github.com/yaklabco/mtfind/pkg/tokenize"
)

// Run executes one search and streams results to the sinks: the total count
// first, then every finding in ascending (chunk, column) order. The sinks
// are only invoked on a run that completes successfully.
//
// Findings may borrow from the mapped source, which is closed when Run
// returns; sinks must consume the Match bytes within the callback.
func Run(ctx context.Context, opts Options, countSink findings.CountSink, sink findings.Sink) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	logger := logging.FromContext(ctx)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs < 1 {
		jobs = 1
	}

	strat := opts.Strategy
	if strat == "" {
		strat = config.StrategyAuto
	}

	tok := tokenize.New(search.New(opts.Pattern))
	delim := opts.effectiveDelimiter()

	logger.Debug("starting run",
		logging.FieldInput, opts.Input,
		logging.FieldPattern, opts.Pattern.String(),
		logging.FieldWildcard, opts.Pattern.Wildcard(),
		logging.FieldJobs, jobs,
		logging.FieldStrategy, strat.String(),
	)

	// Wrap the caller's sinks so the result carries the totals.
	result := &Result{}
	countingCount := func(total int) {
		result.Findings = total
		countSink(total)
	}

	if opts.Input == StdinPath {
		return runStream(opts, tok, delim, jobs, logger, result, countingCount, sink)
	}
	return runFile(opts, tok, delim, jobs, strat, logger, result, countingCount, sink)
}

// runStream searches standard input. Only round-robin applies to a stream.
func runStream(opts Options, tok tokenize.Tokenizer, delim byte, jobs int, logger *log.Logger, result *Result, countSink findings.CountSink, sink findings.Sink) (*Result, error) {
	if opts.Strategy == config.StrategyDivide {
		return nil, fmt.Errorf("strategy %q requires a random-access input, not a stream", opts.Strategy)
	}

	splitter := split.NewStreamSplitter(opts.effectiveStdin(), delim)

	start := time.Now()
	if err := strategy.RoundRobin(splitter, tok, jobs, countSink, sink); err != nil {
		return nil, err
	}
	result.Duration = time.Since(start)
	result.Strategy = config.StrategyRoundRobin

	// A mid-stream failure truncates the input; everything read before it
	// has been searched and reported, so the run still succeeds.
	if err := splitter.Err(); err != nil {
		logger.Warn("input stream failed mid-read; results cover the bytes received",
			logging.FieldError, err)
	}
	return result, nil
}

// runFile maps the input file and searches it in place.
func runFile(opts Options, tok tokenize.Tokenizer, delim byte, jobs int, strat config.Strategy, logger *log.Logger, result *Result, countSink findings.CountSink, sink findings.Sink) (*Result, error) {
	region, err := source.Open(opts.Input)
	if err != nil {
		return nil, err
	}
	defer region.Close()

	if !region.Mapped() {
		logger.Warn("mapping input failed, falling back to buffered reading",
			logging.FieldInput, opts.Input)
	}

	result.Bytes = region.Len()
	result.Mapped = region.Mapped()

	if strat == config.StrategyAuto {
		strat = config.StrategyDivide
	}
	result.Strategy = strat

	start := time.Now()
	switch strat {
	case config.StrategyDivide:
		err = strategy.DivideAndConquer(region.Bytes(), delim, tok, jobs, countSink, sink)
	case config.StrategyRoundRobin:
		err = strategy.RoundRobin(split.NewRegionSplitter(region.Bytes(), delim), tok, jobs, countSink, sink)
	default:
		err = fmt.Errorf("unknown strategy %q", strat)
	}
	if err != nil {
		return nil, err
	}
	result.Duration = time.Since(start)

	logger.Debug("run finished",
		logging.FieldFindings, result.Findings,
		logging.FieldBytes, result.Bytes,
		logging.FieldMapped, result.Mapped,
		logging.FieldDuration, result.Duration,
	)

	return result, nil
}
