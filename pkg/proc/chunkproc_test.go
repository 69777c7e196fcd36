package proc_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mtfind/pkg/proc"
)

func TestChunkProcessorDeliversInOrder(t *testing.T) {
	t.Parallel()

	var got []uint64
	p := proc.NewChunkProcessor(func(c proc.Chunk) {
		got = append(got, c.Index)
	})
	p.Start()

	const total = 100000
	for i := uint64(0); i < total; i++ {
		p.Push(proc.Chunk{Index: i})
	}
	p.Stop()

	require.NoError(t, p.Err())
	require.Len(t, got, total, "flush-on-stop must deliver every pushed chunk")
	for i, idx := range got {
		require.Equal(t, uint64(i), idx)
	}
}

func TestChunkProcessorFlushOnStop(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	var handled int
	p := proc.NewChunkProcessor(func(_ proc.Chunk) {
		if handled == 0 {
			<-block
		}
		handled++
	})
	p.Start()

	// Queue work behind a stalled first chunk, then stop: the residual queue
	// must still drain before Stop returns.
	for i := uint64(0); i < 500; i++ {
		p.Push(proc.Chunk{Index: i})
	}
	close(block)
	p.Stop()

	require.NoError(t, p.Err())
	assert.Equal(t, 500, handled)
}

func TestChunkProcessorRestart(t *testing.T) {
	t.Parallel()

	var handled int
	p := proc.NewChunkProcessor(func(_ proc.Chunk) { handled++ })

	for round := 0; round < 3; round++ {
		p.Start()
		for i := uint64(0); i < 10; i++ {
			p.Push(proc.Chunk{Index: i})
		}
		p.Stop()
	}

	require.NoError(t, p.Err())
	assert.Equal(t, 30, handled)
}

func TestChunkProcessorHandlerPanic(t *testing.T) {
	t.Parallel()

	var handled int
	p := proc.NewChunkProcessor(func(c proc.Chunk) {
		if c.Index == 3 {
			panic(fmt.Sprintf("bad chunk %d", c.Index))
		}
		handled++
	})
	p.Start()

	for i := uint64(0); i < 100; i++ {
		p.Push(proc.Chunk{Index: i})
	}
	p.Stop()

	require.Error(t, p.Err())
	assert.Contains(t, p.Err().Error(), "bad chunk 3")
	assert.Equal(t, 3, handled, "handler is quarantined after the first panic")
}

func TestChunkProcessorStopWithoutStart(t *testing.T) {
	t.Parallel()

	p := proc.NewChunkProcessor(func(_ proc.Chunk) {})
	p.Stop() // must not hang or panic
	require.NoError(t, p.Err())
}
