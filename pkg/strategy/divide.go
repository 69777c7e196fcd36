// Package strategy provides the two parallel execution plans that tie the
// splitter, searcher, and tokenizer together and emit globally ordered
// findings: divide-and-conquer over a random-access region, and round-robin
// dispatch over any chunk source.
package strategy

import (
	"bytes"
	"fmt"

	"github.com/yaklabco/mtfind/pkg/findings"
	"github.com/yaklabco/mtfind/pkg/proc"
	"github.com/yaklabco/mtfind/pkg/search"
	"github.com/yaklabco/mtfind/pkg/split"
	"github.com/yaklabco/mtfind/pkg/tokenize"
)

// regionHandler accumulates one worker's findings over its subregion. Chunk
// indices are worker-local (1-based); the merge phase rebases them.
type regionHandler struct {
	tok    tokenize.Tokenizer
	batch  findings.Batch
	chunks uint64 // chunks consumed, empty ones included
}

func (h *regionHandler) handle(localIdx uint64, chunk []byte) {
	h.tok.Scan(chunk, func(m search.Match) {
		h.batch = append(h.batch, findings.Finding{
			Chunk:  localIdx + 1,
			Column: m.Start + 1,
			Match:  chunk[m.Start:m.End],
		})
	})
	h.chunks = localIdx + 1
}

// DivideAndConquer partitions region into at most workers contiguous
// delimiter-aligned subregions, scans them concurrently on a task pool, and
// emits the merged findings: the total count first, then every finding in
// ascending (chunk, column) order.
//
// Findings borrow from region; region must outlive the sinks' use of them.
func DivideAndConquer(region []byte, delim byte, tok tokenize.Tokenizer, workers int, countSink findings.CountSink, sink findings.Sink) error {
	pool := proc.NewTaskPool(workers)

	subregions := partition(region, delim, pool.Workers())
	handlers := make([]*regionHandler, len(subregions))

	pool.Run()
	for i, sub := range subregions {
		h := &regionHandler{tok: tok}
		handlers[i] = h

		pool.Post(func() {
			splitter := split.NewRegionSplitter(sub, delim)
			var idx uint64
			for chunk, ok := splitter.Next(); ok; chunk, ok = splitter.Next() {
				h.handle(idx, chunk)
				idx++
			}
		})
	}
	if err := pool.Wait(); err != nil {
		return fmt.Errorf("region workers: %w", err)
	}

	total := 0
	for _, h := range handlers {
		total += len(h.batch)
	}
	countSink(total)

	// Workers indexed their chunks from 1; walking subregions in source
	// order while accumulating each worker's chunk count recovers the global
	// line numbers. Subregions are cut on delimiter boundaries, so counts
	// are additive.
	var offset uint64
	for _, h := range handlers {
		for _, f := range h.batch {
			f.Chunk += offset
			sink(f)
		}
		offset += h.chunks
	}

	return nil
}

// partition slices region into at most workers subregions of roughly equal
// size. Every subregion except the last ends just past a delimiter run: the
// tentative cut point advances to the next delimiter and then greedily past
// any consecutive delimiters, so delimiters are owned by the left subregion
// and no chunk ever straddles a cut.
func partition(region []byte, delim byte, workers int) [][]byte {
	span := len(region) / workers
	if span < 1 {
		span = 1
	}

	var subs [][]byte
	for start := 0; start < len(region); {
		end := len(region)
		if len(subs) < workers-1 {
			if cut := start + span; cut < end {
				if i := bytes.IndexByte(region[cut:], delim); i >= 0 {
					end = cut + i
				}
			}
			for end < len(region) && region[end] == delim {
				end++
			}
		}
		subs = append(subs, region[start:end])
		start = end
	}
	return subs
}
