// Package findings defines the match record emitted by the finder and the
// sink callbacks results are delivered through.
package findings

// Finding is one located pattern occurrence: the 1-based chunk (line) index,
// the 1-based byte column of the match start within its chunk, and the
// matched bytes themselves.
//
// Match may alias the source region when the source is memory-mapped; the
// region must outlive every Finding borrowed from it.
type Finding struct {
	Chunk  uint64
	Column int
	Match  []byte
}

// Batch is an ordered sequence of findings produced by a single worker.
// Workers index chunks locally; global chunk indices are reconstructed during
// the merge phase.
type Batch []Finding

// CountSink receives the total number of findings, exactly once per run,
// strictly before the first item is emitted.
type CountSink func(total int)

// Sink receives findings one by one, in ascending (chunk, column) order.
type Sink func(f Finding)
