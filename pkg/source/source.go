// Package source provides a read-only adapter over a regular input file,
// memory-mapped where possible. Byte streams are not handled here; they are
// read directly by split.StreamSplitter.
package source

import (
	"errors"
	"fmt"
	"os"
)

// Sentinel errors reported while opening an input file.
var (
	// ErrEmptyFile indicates the input file exists but holds no bytes.
	// There is nothing to search, so callers treat this as a clean no-op.
	ErrEmptyFile = errors.New("input file is empty")

	// ErrNotRegular indicates the input path is a directory, socket, device,
	// or any other non-regular file.
	ErrNotRegular = errors.New("input file is not regular")
)

// Region is a read-only, random-access byte region backed by a memory-mapped
// file. When mapping is unavailable the region falls back to a heap buffer
// holding the whole file.
type Region struct {
	data   []byte
	mapped bool
}

// Open maps the named file read-only. The file must exist, be regular, and be
// non-empty. If the platform cannot map it, the file is read into memory
// instead and Mapped reports false.
func Open(path string) (*Region, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input file: %w", err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	if fi.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	data, err := mmapFile(path, fi.Size())
	if err == nil {
		return &Region{data: data, mapped: true}, nil
	}

	// Fall back to plain reading. The region behaves identically, it just
	// costs one copy of the file.
	buf, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, fmt.Errorf("read input file: %w", readErr)
	}
	return &Region{data: buf}, nil
}

// Bytes returns the underlying region. The slice is valid until Close and
// must not be modified.
func (r *Region) Bytes() []byte {
	return r.data
}

// Len returns the size of the region in bytes.
func (r *Region) Len() int {
	return len(r.data)
}

// Mapped reports whether the region is backed by a memory mapping rather
// than a heap buffer.
func (r *Region) Mapped() bool {
	return r.mapped
}

// Close releases the mapping. The slices handed out by Bytes become invalid.
// Closing twice is a no-op.
func (r *Region) Close() error {
	if r.data == nil {
		return nil
	}
	data := r.data
	r.data = nil
	if !r.mapped {
		return nil
	}
	return munmap(data)
}
