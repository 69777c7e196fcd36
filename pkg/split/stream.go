package split

import (
	"bufio"
	"errors"
	"io"
)

// streamBufferSize is the read buffer size for stream sources (64 KiB).
const streamBufferSize = 64 * 1024

// StreamSplitter yields successive delimiter-separated chunks of a byte
// stream. Each chunk is an owned copy: the producer may hand chunks to other
// goroutines without retaining any tie to the reader.
//
// An I/O failure mid-stream is treated as end of input; the error is recorded
// and available through Err. Reading past exhaustion is a no-op.
type StreamSplitter struct {
	r     *bufio.Reader
	delim byte
	done  bool
	err   error
}

// NewStreamSplitter builds a splitter pulling from r using delim as the
// chunk separator.
func NewStreamSplitter(r io.Reader, delim byte) *StreamSplitter {
	return &StreamSplitter{r: bufio.NewReaderSize(r, streamBufferSize), delim: delim}
}

// Next returns the next chunk as an owned byte slice. The second result is
// false once the stream is exhausted and no buffered bytes remain.
func (s *StreamSplitter) Next() ([]byte, bool) {
	if s.done {
		return nil, false
	}

	chunk, err := s.r.ReadBytes(s.delim)
	if err != nil {
		s.done = true
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		// A final unterminated chunk still counts.
		if len(chunk) == 0 {
			return nil, false
		}
		return chunk, true
	}

	// Drop the delimiter; it is consumed, not part of the chunk.
	return chunk[:len(chunk)-1], true
}

// Err returns the I/O error that terminated the stream, if any. EOF is the
// normal end condition and is not reported.
func (s *StreamSplitter) Err() error {
	return s.err
}
