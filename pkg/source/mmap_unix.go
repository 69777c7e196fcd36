//go:build unix

package source

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mmapFile maps the named file read-only and hints the kernel that access
// will be sequential.
func mmapFile(path string, size int64) ([]byte, error) {
	if size != int64(int(size)) {
		return nil, fmt.Errorf("mmap: file %s is too large", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	// Advisory only; a failure does not invalidate the mapping.
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	return data, nil
}

func munmap(data []byte) error {
	return unix.Munmap(data)
}
