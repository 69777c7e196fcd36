package proc

import (
	"fmt"
	"runtime"
	"sync/atomic"
)

// Chunk is one queued unit of work for a ChunkProcessor: a line and its
// 0-based global index in the source.
type Chunk struct {
	Index uint64
	Data  []byte
}

// ChunkProcessor runs a handler on a dedicated consumer goroutine fed
// through an SPSC ring. The producing goroutine calls Push; the consumer
// pops and handles chunks until stopped, then drains whatever is still
// queued before exiting, so no pushed chunk is ever lost.
type ChunkProcessor struct {
	handler func(Chunk)
	queue   *Ring[Chunk]

	stop atomic.Bool
	done chan struct{}
	err  error

	started bool
}

// NewChunkProcessor builds a processor around handler.
func NewChunkProcessor(handler func(Chunk)) *ChunkProcessor {
	return &ChunkProcessor{
		handler: handler,
		queue:   NewRing[Chunk](),
	}
}

// Start spawns the consumer goroutine. Starting a started processor is a
// no-op.
func (p *ChunkProcessor) Start() {
	if p.started {
		return
	}
	p.started = true
	p.stop.Store(false)
	p.done = make(chan struct{})
	go p.consume()
}

// Push hands a chunk to the consumer, spinning while the ring is full. The
// spin is bounded by consumer latency and preserves push order.
func (p *ChunkProcessor) Push(c Chunk) {
	for !p.queue.Push(c) {
		runtime.Gosched()
	}
}

// Stop raises the stop flag and waits for the consumer to drain the residual
// queue and exit.
func (p *ChunkProcessor) Stop() {
	if !p.started {
		return
	}
	p.stop.Store(true)
	<-p.done
	p.started = false
}

// Err returns the failure of a panicked handler, if any. Valid after Stop.
func (p *ChunkProcessor) Err() error {
	return p.err
}

func (p *ChunkProcessor) consume() {
	defer close(p.done)

	for !p.stop.Load() {
		if c, ok := p.queue.Pop(); ok {
			p.handle(c)
		} else {
			runtime.Gosched()
		}
	}

	// Flush-on-stop: everything queued before the flag was observed is still
	// handled.
	for {
		c, ok := p.queue.Pop()
		if !ok {
			return
		}
		p.handle(c)
	}
}

// handle runs the handler for one chunk. After the first panic the handler
// is considered corrupted: remaining chunks are popped and discarded so the
// producer can never wedge on a full ring.
func (p *ChunkProcessor) handle(c Chunk) {
	if p.err != nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.err = fmt.Errorf("chunk handler panic: %v", r)
		}
	}()
	p.handler(c)
}
