//go:build !unix

package source

import "errors"

// mmapFile always fails on platforms without unix mmap support; Open falls
// back to reading the file into memory.
func mmapFile(_ string, _ int64) ([]byte, error) {
	return nil, errors.New("mmap: unsupported platform")
}

func munmap(_ []byte) error {
	return nil
}
