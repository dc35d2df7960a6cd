package partition

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rows = "Hamburg;12.0\nBulawayo;8.9\nPalembang;38.8\nSt. John's;15.2\nCracow;12.6\n" +
	"Bridgetown;26.9\nIstanbul;6.2\nRoseau;34.4\nConakry;31.2\nIstanbul;23.0\n"

func checkAligned(t *testing.T, data string, parts []Partition, n int) {
	t.Helper()

	require.Len(t, parts, n)
	assert.Equal(t, int64(0), parts[0].Start)
	assert.Equal(t, int64(len(data)), parts[len(parts)-1].End)

	for i, p := range parts {
		assert.LessOrEqual(t, p.Start, p.End, "partition %d", i)
		if i > 0 {
			assert.Equal(t, parts[i-1].End, p.Start, "partition %d", i)
		}
		if p.Start > 0 {
			assert.Equal(t, byte('\n'), data[p.Start-1], "partition %d start", i)
		}
		if p.End < int64(len(data)) {
			assert.Equal(t, byte('\n'), data[p.End-1], "partition %d end", i)
		}
	}
}

func TestSplit(t *testing.T) {
	r := strings.NewReader(rows)
	for n := 1; n <= 16; n++ {
		parts, err := Split(r, int64(len(rows)), n)
		require.NoError(t, err)
		checkAligned(t, rows, parts, n)
	}
}

func TestSplitSinglePartition(t *testing.T) {
	parts, err := Split(strings.NewReader(rows), int64(len(rows)), 1)
	require.NoError(t, err)
	assert.Equal(t, []Partition{{0, int64(len(rows))}}, parts)

	parts, err = Split(strings.NewReader(rows), int64(len(rows)), 0)
	require.NoError(t, err)
	assert.Equal(t, []Partition{{0, int64(len(rows))}}, parts)
}

func TestSplitMorePartitionsThanRows(t *testing.T) {
	data := "a;1\nb;2\n"
	parts, err := Split(strings.NewReader(data), int64(len(data)), 20)
	require.NoError(t, err)
	checkAligned(t, data, parts, 20)

	nonEmpty := 0
	for _, p := range parts {
		if p.Len() > 0 {
			nonEmpty++
		}
	}
	assert.Equal(t, 2, nonEmpty)
}

func TestSplitNoTrailingNewline(t *testing.T) {
	data := "a;1\nbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb;2"
	parts, err := Split(strings.NewReader(data), int64(len(data)), 3)
	require.NoError(t, err)
	checkAligned(t, data, parts, 3)

	// no newline after the split points, they collapse to the end
	size := int64(len(data))
	assert.Equal(t, []Partition{{0, size}, {size, size}, {size, size}}, parts)
}

func TestSplitLongScan(t *testing.T) {
	// the newline is further than one probe from the split point
	data := "k;1\n" + strings.Repeat("x", 3*probeSize) + ";1\nlast;2\n"
	parts, err := Split(strings.NewReader(data), int64(len(data)), 2)
	require.NoError(t, err)
	checkAligned(t, data, parts, 2)
	assert.Equal(t, int64(len(data)-len("last;2\n")), parts[0].End)
}

func TestSplitEmpty(t *testing.T) {
	parts, err := Split(strings.NewReader(""), 0, 4)
	require.NoError(t, err)
	require.Len(t, parts, 4)
	for _, p := range parts {
		assert.Zero(t, p.Len())
	}
}

type failingReaderAt struct{ err error }

func (f failingReaderAt) ReadAt([]byte, int64) (int, error) { return 0, f.err }

func TestSplitReadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Split(failingReaderAt{boom}, 100, 2)
	require.ErrorIs(t, err, boom)
}

func TestSection(t *testing.T) {
	r := strings.NewReader(rows)
	parts, err := Split(r, int64(len(rows)), 3)
	require.NoError(t, err)

	var sb strings.Builder
	for _, p := range parts {
		_, err := io.Copy(&sb, p.Section(r))
		require.NoError(t, err)
	}
	assert.Equal(t, rows, sb.String())
}
