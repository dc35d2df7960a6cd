// Package partition splits a file of rows into newline aligned byte ranges.
package partition

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Partition is the byte range [Start, End) of the input. Start is 0 or follows
// a newline, End is the file size or follows a newline, so a partition holds
// whole rows only. It may be empty.
type Partition struct {
	Start, End int64
}

// Len is the size of the partition in bytes.
func (p Partition) Len() int64 { return p.End - p.Start }

// Section returns a reader restricted to the partition.
func (p Partition) Section(r io.ReaderAt) *io.SectionReader {
	return io.NewSectionReader(r, p.Start, p.Len())
}

// probeSize is how much is read at a time while looking for a newline.
const probeSize = 128

// Split cuts [0, size) into n partitions. Split points start at i*(size/n) and
// are pushed forward past the next newline. A split point with no newline
// after it collapses to size.
func Split(r io.ReaderAt, size int64, n int) ([]Partition, error) {
	if n < 1 {
		n = 1
	}

	step := size / int64(n)
	buf := make([]byte, probeSize)

	result := make([]Partition, 0, n)
	start := int64(0)
	for i := 1; i < n; i++ {
		end, err := nextLine(r, size, int64(i)*step, buf)
		if err != nil {
			return nil, err
		}
		result = append(result, Partition{Start: start, End: end})
		start = end
	}

	return append(result, Partition{Start: start, End: size}), nil
}

// nextLine returns the offset after the first newline at or after pos, or size
// if there is none.
func nextLine(r io.ReaderAt, size, pos int64, buf []byte) (int64, error) {
	for pos < size {
		n, err := r.ReadAt(buf[:min(int64(len(buf)), size-pos)], pos)
		if i := bytes.IndexByte(buf[:n], '\n'); i >= 0 {
			return pos + int64(i) + 1, nil
		}
		pos += int64(n)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("partition: read at %d: %w", pos, err)
		}
	}
	return size, nil
}
