// Package tokenizer splits a stream of "key;value\n" rows into keys and parsed
// values without allocating per row.
package tokenizer

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/paulsonkoly/onebrc/decimal"
)

const (
	// DefaultPageSize is the size of the read buffer.
	DefaultPageSize = 2 << 20

	// maxRefills is how many times the page may be refilled while a single row
	// is incomplete.
	maxRefills = 2
)

type state int

const (
	scanningForSeparator state = iota
	scanningForNewline
)

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithPageSize sets the read buffer size. Rows should not be longer than the
// page.
func WithPageSize(n int) Option {
	return func(t *Tokenizer) {
		if n > 0 {
			t.page = make([]byte, n)
		}
	}
}

// WithStrictNewline makes a last row without a trailing newline an error
// instead of accepting EOF as its terminator.
func WithStrictNewline() Option {
	return func(t *Tokenizer) { t.strict = true }
}

// Tokenizer reads rows from r a page at a time. Rows that straddle a page
// boundary are assembled in the stash.
type Tokenizer struct {
	r      io.Reader
	page   []byte
	start  int // first unconsumed byte in page
	end    int // number of valid bytes in page
	eof    bool
	stash  []byte
	strict bool
	rows   int64
}

// New creates a Tokenizer reading from r.
func New(r io.Reader, opts ...Option) *Tokenizer {
	t := &Tokenizer{r: r, stash: make([]byte, 0, 128)}
	for _, opt := range opts {
		opt(t)
	}
	if t.page == nil {
		t.page = make([]byte, DefaultPageSize)
	}
	return t
}

// FromBytes creates a Tokenizer over rows already in memory. b is used as the
// page itself, so it is never copied and WithPageSize has no effect.
func FromBytes(b []byte, opts ...Option) *Tokenizer {
	t := &Tokenizer{stash: make([]byte, 0, 128)}
	for _, opt := range opts {
		opt(t)
	}
	t.page = b
	t.end = len(b)
	t.eof = true
	return t
}

// Rows is the number of rows returned or rejected so far.
func (t *Tokenizer) Rows() int64 { return t.rows }

// Next returns the next row. It returns io.EOF once the input is exhausted.
// The key aliases internal buffers and is only valid until the next call.
func (t *Tokenizer) Next() ([]byte, float64, error) {
	t.stash = t.stash[:0]
	st := scanningForSeparator
	sep := 0 // offset of ';' from the start of the row
	refills := 0
	pos := t.start

	for {
		if pos == t.end {
			t.stash = append(t.stash, t.page[t.start:t.end]...)
			t.start = t.end

			if t.eof {
				switch {
				case len(t.stash) == 0:
					return nil, 0, io.EOF
				case st == scanningForSeparator:
					return t.fail(ErrMissingSeparator)
				case t.strict:
					return t.fail(ErrMissingNewline)
				}
				t.rows++
				return t.emit(t.stash, sep)
			}

			if len(t.stash) > 0 {
				refills++
				if refills > maxRefills {
					return t.fail(ErrRowTooLarge)
				}
			}
			if err := t.fill(); err != nil {
				return nil, 0, err
			}
			pos = t.start
			continue
		}

		seg := t.page[pos:t.end]

		switch st {
		case scanningForSeparator:
			i := bytes.IndexByte(seg, ';')
			key := seg
			if i >= 0 {
				key = seg[:i]
			}
			if bytes.IndexByte(key, '\n') >= 0 {
				return t.fail(ErrMissingSeparator)
			}
			if i < 0 {
				pos = t.end
				continue
			}
			sep = len(t.stash) + pos + i - t.start
			pos += i + 1
			st = scanningForNewline

		case scanningForNewline:
			i := bytes.IndexByte(seg, '\n')
			if i < 0 {
				pos = t.end
				continue
			}
			row := t.page[t.start : pos+i]
			if len(t.stash) > 0 {
				t.stash = append(t.stash, row...)
				row = t.stash
			}
			t.start = pos + i + 1
			t.rows++
			return t.emit(row, sep)
		}
	}
}

func (t *Tokenizer) emit(row []byte, sep int) ([]byte, float64, error) {
	v, err := decimal.Parse(row[sep+1:])
	if err != nil {
		return nil, 0, &ParseError{Row: t.rows, Err: err}
	}
	return row[:sep], v, nil
}

func (t *Tokenizer) fail(err error) ([]byte, float64, error) {
	t.rows++
	return nil, 0, &ParseError{Row: t.rows, Err: err}
}

func (t *Tokenizer) fill() error {
	n, err := io.ReadFull(t.r, t.page)
	t.start, t.end = 0, n
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		t.eof = true
	default:
		return fmt.Errorf("tokenizer: read: %w", err)
	}
	return nil
}
