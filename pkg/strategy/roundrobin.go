package strategy

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/yaklabco/mtfind/pkg/findings"
	"github.com/yaklabco/mtfind/pkg/proc"
	"github.com/yaklabco/mtfind/pkg/search"
	"github.com/yaklabco/mtfind/pkg/tokenize"
)

// Splitter is the chunk source round-robin consumes: any lazy producer of
// delimiter-separated chunks. Both split.RegionSplitter and
// split.StreamSplitter satisfy it.
type Splitter interface {
	Next() ([]byte, bool)
}

// rrContext is one consumer's private findings store. It is owned by a
// single consumer goroutine until the processors are joined.
type rrContext struct {
	tok   tokenize.Tokenizer
	batch findings.Batch
}

func (c *rrContext) handle(chunk proc.Chunk) {
	c.tok.Scan(chunk.Data, func(m search.Match) {
		c.batch = append(c.batch, findings.Finding{
			Chunk:  chunk.Index + 1,
			Column: m.Start + 1,
			Match:  chunk.Data[m.Start:m.End],
		})
	})
}

// RoundRobin pulls chunks from sp on the calling goroutine and deals the
// non-empty ones across workers-1 dedicated consumers (or handles them
// inline when workers is 1). Once the source is exhausted the consumers are
// flushed and the per-worker batches are merged: total count first, then
// every finding in ascending (chunk, column) order.
//
// Chunk ownership follows the splitter: region splitters hand out borrowed
// slices that outlive the run, stream splitters hand out owned copies that
// transfer to the consumer.
func RoundRobin(sp Splitter, tok tokenize.Tokenizer, workers int, countSink findings.CountSink, sink findings.Sink) error {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}

	contexts := make([]*rrContext, workers)
	for i := range contexts {
		contexts[i] = &rrContext{tok: tok}
	}

	if workers == 1 {
		produceInline(sp, contexts[0])
	} else if err := produce(sp, contexts[1:]); err != nil {
		return err
	}

	merge(contexts, countSink, sink)
	return nil
}

// produceInline processes every non-empty chunk on the calling goroutine.
func produceInline(sp Splitter, ctx *rrContext) {
	var idx uint64
	for chunk, ok := sp.Next(); ok; chunk, ok = sp.Next() {
		if len(chunk) > 0 {
			ctx.handle(proc.Chunk{Index: idx, Data: chunk})
		}
		idx++
	}
}

// produce deals chunks across one ChunkProcessor per context, advancing the
// round-robin cursor on each dispatched chunk. Chunks keep their global
// index, so each consumer's batch stays sorted by construction.
func produce(sp Splitter, contexts []*rrContext) error {
	processors := make([]*proc.ChunkProcessor, len(contexts))
	for i, ctx := range contexts {
		processors[i] = proc.NewChunkProcessor(ctx.handle)
		processors[i].Start()
	}

	var idx uint64
	next := 0
	for chunk, ok := sp.Next(); ok; chunk, ok = sp.Next() {
		if len(chunk) > 0 {
			processors[next].Push(proc.Chunk{Index: idx, Data: chunk})
			next++
			if next == len(processors) {
				next = 0
			}
		}
		idx++
	}

	var errs []error
	for _, p := range processors {
		p.Stop()
		if err := p.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("chunk consumers: %w", errors.Join(errs...))
	}
	return nil
}

// merge emits the total and then k-way merges the per-worker batches. Every
// batch is individually sorted by chunk index and no two batches share one,
// so repeatedly taking the batch with the smallest head reconstructs global
// order.
func merge(contexts []*rrContext, countSink findings.CountSink, sink findings.Sink) {
	type cursor struct {
		batch findings.Batch
		pos   int
	}

	total := 0
	active := make([]cursor, 0, len(contexts))
	for _, ctx := range contexts {
		total += len(ctx.batch)
		if len(ctx.batch) > 0 {
			active = append(active, cursor{batch: ctx.batch})
		}
	}

	countSink(total)

	for len(active) > 0 {
		min := 0
		for i := 1; i < len(active); i++ {
			if active[i].batch[active[i].pos].Chunk < active[min].batch[active[min].pos].Chunk {
				min = i
			}
		}

		sink(active[min].batch[active[min].pos])
		active[min].pos++

		if active[min].pos == len(active[min].batch) {
			active[min] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}
}
