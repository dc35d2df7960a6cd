// Package input opens the measurements file for parallel reading.
package input

import (
	"fmt"
	"os"
)

// File is an open measurements file. ReadAt is safe for concurrent use, so
// one File serves every worker.
type File struct {
	*os.File
	size int64
}

// Open opens path and records its size.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("input: %w", err)
	}
	if fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("input: %s is a directory", path)
	}

	return &File{File: f, size: fi.Size()}, nil
}

// Size is the file length in bytes at the time it was opened.
func (f *File) Size() int64 { return f.size }
