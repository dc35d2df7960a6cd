// Package stats holds the mergeable per-key statistic and the table mapping
// keys to it.
package stats

import "math"

// Aggregate is a running min/max/sum/count over a set of values. The zero
// count Aggregate returned by Identity is the neutral element of Merge.
type Aggregate struct {
	Min, Max, Sum float64
	Count         int64
}

// Identity is the Aggregate of no values.
func Identity() Aggregate {
	return Aggregate{Min: math.Inf(1), Max: math.Inf(-1)}
}

// Of is the Aggregate of the single value v.
func Of(v float64) Aggregate {
	return Aggregate{Min: v, Max: v, Sum: v, Count: 1}
}

// Merge combines two Aggregates. It is commutative and associative.
func (a Aggregate) Merge(b Aggregate) Aggregate {
	return Aggregate{
		Min:   min(a.Min, b.Min),
		Max:   max(a.Max, b.Max),
		Sum:   a.Sum + b.Sum,
		Count: a.Count + b.Count,
	}
}

// Add merges Of(v) into a in place.
func (a *Aggregate) Add(v float64) {
	a.Min = min(a.Min, v)
	a.Max = max(a.Max, v)
	a.Sum += v
	a.Count++
}

// Mean is Sum/Count, NaN for the identity.
func (a Aggregate) Mean() float64 {
	if a.Count == 0 {
		return math.NaN()
	}
	return a.Sum / float64(a.Count)
}
