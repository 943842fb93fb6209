package data

import "iter"

// Sample is one (timestamp, value) pair of a channel series. T is in seconds
// since the recording started.
type Sample struct {
	T float64
	V float64
}

// Series is the ordered samples of one channel, built by projecting an
// accessor over a log. Timestamps are non-decreasing. A series may be shorter
// than its source log: entries where the accessor is undefined are skipped.
type Series []Sample

// Values returns the sample values without timestamps.
func (s Series) Values() []float64 {
	vals := make([]float64, len(s))
	for i, p := range s {
		vals[i] = p.V
	}

	return vals
}

// Entry constrains MapOverTime to the two log entry types.
type Entry interface {
	Time() float64
}

// Accessor projects one entry to an optional channel value. The named
// accessor methods on DataEntry and TempEntry are used as method expressions,
// e.g. data.DataEntry.PowerFL.
type Accessor[E Entry] func(E) (float64, bool)

// MapOverTime walks entries in order and emits a sample for every entry where
// the accessor yields a value. Entries where the channel is absent are
// skipped; the relative order of kept samples is preserved.
//
// This is the single primitive behind every built-in channel series:
//
//	power := data.MapOverTime(log.All(), data.DataEntry.PowerFL)
func MapOverTime[E Entry](entries iter.Seq[E], accessor Accessor[E]) Series {
	var s Series
	for e := range entries {
		if v, ok := accessor(e); ok {
			s = append(s, Sample{T: e.Time(), V: v})
		}
	}

	return s
}

// WheelValues groups one per-wheel quantity by wheel position.
type WheelValues[T any] struct {
	FL T
	FR T
	RL T
	RR T
}
