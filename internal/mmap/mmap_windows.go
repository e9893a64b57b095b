//go:build windows

package mmap

import (
	"io"
	"os"
)

// Windows falls back to reading the whole file; column files are modest and
// the zero-copy path is an optimization, not a contract.
func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, nil, err
	}
	return data, nil, nil
}
