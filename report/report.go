// Package report renders the merged table as
// {key=min/mean/max, key=min/mean/max, ...}.
package report

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/paulsonkoly/onebrc/stats"
)

// Round rounds x to one decimal place, ties away from zero. Negative results
// that round to zero become +0 so they never print as "-0.0".
func Round(x float64) float64 {
	r := math.Round(x*10) / 10
	if r == 0 {
		return 0
	}
	return r
}

// byName re-keys t by the key decoded as UTF-8 text. Invalid sequences are
// replaced with U+FFFD and keys that end up equal are merged.
func byName(t *stats.Table) map[string]stats.Aggregate {
	m := make(map[string]stats.Aggregate, t.Len())
	for k, a := range t.All() {
		name := strings.ToValidUTF8(k, "�")
		if prev, ok := m[name]; ok {
			a = prev.Merge(a)
		}
		m[name] = a
	}
	return m
}

// Write renders t to w followed by a newline.
func Write(w io.Writer, t *stats.Table) error {
	m := byName(t)

	names := maps.Keys(m)
	slices.Sort(names)

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 128)

	buf = append(buf, '{')
	for i, name := range names {
		a := m[name]
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = append(buf, name...)
		buf = append(buf, '=')
		buf = appendValue(buf, a.Min)
		buf = append(buf, '/')
		buf = appendValue(buf, a.Mean())
		buf = append(buf, '/')
		buf = appendValue(buf, a.Max)

		if _, err := bw.Write(buf); err != nil {
			return err
		}
		buf = buf[:0]
	}
	buf = append(buf, "}\n"...)
	if _, err := bw.Write(buf); err != nil {
		return err
	}
	return bw.Flush()
}

// Format returns the rendering of t as a string.
func Format(t *stats.Table) string {
	var sb strings.Builder
	_ = Write(&sb, t)
	return sb.String()
}

func appendValue(buf []byte, x float64) []byte {
	return strconv.AppendFloat(buf, Round(x), 'f', 1, 64)
}
