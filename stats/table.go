package stats

import (
	"iter"

	"github.com/zeebo/xxh3"
)

const minCapacity = 16

type entry struct {
	hash uint64
	key  string
	agg  Aggregate
	used bool
}

// Table maps keys to Aggregates. It is an open addressing hash table with
// linear probing. Lookups hash the key bytes directly so that a hit never
// allocates; a key is copied once, when it is first inserted.
//
// A Table is not safe for concurrent use.
type Table struct {
	entries []entry
	mask    uint64
	n       int
}

// NewTable creates a table sized for about capacity keys.
func NewTable(capacity int) *Table {
	size := minCapacity
	for size < 2*capacity {
		size <<= 1
	}
	return &Table{
		entries: make([]entry, size),
		mask:    uint64(size - 1),
	}
}

// Len is the number of distinct keys.
func (t *Table) Len() int { return t.n }

// lookup returns the slot holding key, or the empty slot where it belongs.
func (t *Table) lookup(key []byte, hash uint64) *entry {
	idx := hash & t.mask
	for {
		e := &t.entries[idx]
		if !e.used || (e.hash == hash && e.key == string(key)) {
			return e
		}
		idx = (idx + 1) & t.mask
	}
}

// slot returns the entry for key, inserting it with the identity Aggregate if
// it is absent.
func (t *Table) slot(key []byte, hash uint64) *entry {
	e := t.lookup(key, hash)
	if e.used {
		return e
	}
	if 2*(t.n+1) > len(t.entries) {
		t.grow()
		e = t.lookup(key, hash)
	}
	*e = entry{hash: hash, key: string(key), agg: Identity(), used: true}
	t.n++
	return e
}

func (t *Table) grow() {
	old := t.entries
	t.entries = make([]entry, 2*len(old))
	t.mask = uint64(len(t.entries) - 1)
	for i := range old {
		if !old[i].used {
			continue
		}
		idx := old[i].hash & t.mask
		for t.entries[idx].used {
			idx = (idx + 1) & t.mask
		}
		t.entries[idx] = old[i]
	}
}

// InsertOrUpdate adds the value v observed for key.
func (t *Table) InsertOrUpdate(key []byte, v float64) {
	t.slot(key, xxh3.Hash(key)).agg.Add(v)
}

// Get returns the Aggregate stored for key.
func (t *Table) Get(key []byte) (Aggregate, bool) {
	e := t.lookup(key, xxh3.Hash(key))
	if !e.used {
		return Identity(), false
	}
	return e.agg, true
}

// Merge folds every entry of src into t and leaves src empty. Merging tables
// in any order gives the same result.
func (t *Table) Merge(src *Table) {
	for i := range src.entries {
		se := &src.entries[i]
		if !se.used {
			continue
		}
		e := t.slot([]byte(se.key), se.hash)
		e.agg = e.agg.Merge(se.agg)
	}
	src.Reset()
}

// Reset removes all keys, keeping the allocated slots.
func (t *Table) Reset() {
	clear(t.entries)
	t.n = 0
}

// All iterates over keys and their Aggregates in no particular order.
func (t *Table) All() iter.Seq2[string, Aggregate] {
	return func(yield func(string, Aggregate) bool) {
		for i := range t.entries {
			e := &t.entries[i]
			if e.used && !yield(e.key, e.agg) {
				return
			}
		}
	}
}
