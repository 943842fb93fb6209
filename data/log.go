package data

import "iter"

// DataLog is the ordered collection of primary telemetry entries for one
// session, built by appending decoded segments in segment-index order.
//
// Entries are strictly time-ordered under the contract that every segment is
// a chronologically contiguous slice of one recording. The log is append-only;
// nothing ever removes or reorders entries.
type DataLog struct {
	entries []DataEntry
}

// Len returns the number of entries in the log.
func (l *DataLog) Len() int { return len(l.entries) }

// All returns an iterator over the entries in chronological order.
func (l *DataLog) All() iter.Seq[DataEntry] {
	return func(yield func(DataEntry) bool) {
		for _, e := range l.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// At returns the entry at index i.
func (l *DataLog) At(i int) DataEntry { return l.entries[i] }

// Append adds pre-built entries to the log. Decoded segments arrive through
// ReadExtend; Append exists for tools and tests working with synthetic logs.
func (l *DataLog) Append(entries ...DataEntry) {
	l.entries = append(l.entries, entries...)
}

// TempLog is the ordered collection of temperature entries for one session.
// A session without a temperature segment has an empty TempLog, never a nil
// one; every derived temperature series is then simply empty.
type TempLog struct {
	entries []TempEntry
}

// Len returns the number of entries in the log.
func (l *TempLog) Len() int { return len(l.entries) }

// All returns an iterator over the entries in chronological order.
func (l *TempLog) All() iter.Seq[TempEntry] {
	return func(yield func(TempEntry) bool) {
		for _, e := range l.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// At returns the entry at index i.
func (l *TempLog) At(i int) TempEntry { return l.entries[i] }

// Append adds pre-built entries to the log; see (*DataLog).Append.
func (l *TempLog) Append(entries ...TempEntry) {
	l.entries = append(l.entries, entries...)
}
