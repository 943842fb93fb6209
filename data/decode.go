package data

import (
	"errors"
	"fmt"
	"io"

	"github.com/rennwerk/telemetry/endian"
	"github.com/rennwerk/telemetry/errs"
	"github.com/rennwerk/telemetry/schema"
)

// The recording hardware writes every multi-byte field little-endian.
var engine = endian.GetLittleEndianEngine()

// ReadExtend decodes fixed-size primary telemetry records from r until the
// stream is exhausted, appending the entries to the log. The record layout is
// selected by version; the decode loop itself is version-agnostic.
//
// Calling ReadExtend once per segment, in segment-index order, yields the same
// log as decoding one stream holding the concatenated records.
//
// On any error nothing is appended: a stream that ends mid-record yields
// errs.ErrTruncatedRecord and the log keeps exactly the entries it had before
// the call.
//
// Parameters:
//   - r: Decompressed segment byte stream
//   - version: Schema version governing the session
//
// Returns:
//   - error: errs.ErrUnknownVersion, errs.ErrTruncatedRecord, or the
//     underlying read error
func (l *DataLog) ReadExtend(r io.Reader, version schema.Version) error {
	layout, err := schema.DataLayout(version)
	if err != nil {
		return err
	}

	batch, err := decodeRecords(r, layout, func(t float64, rec []byte) DataEntry {
		e := DataEntry{t: t}
		for _, f := range layout.Fields {
			e.set(f.Channel, fieldValue(rec, f))
		}

		return e
	})
	if err != nil {
		return err
	}

	l.entries = append(l.entries, batch...)

	return nil
}

// ReadExtend decodes fixed-size temperature records from r until the stream
// is exhausted, appending the entries to the log. Semantics match
// (*DataLog).ReadExtend.
func (l *TempLog) ReadExtend(r io.Reader, version schema.Version) error {
	layout, err := schema.TempLayout(version)
	if err != nil {
		return err
	}

	batch, err := decodeRecords(r, layout, func(t float64, rec []byte) TempEntry {
		e := TempEntry{t: t}
		for _, f := range layout.Fields {
			e.set(f.Channel, fieldValue(rec, f))
		}

		return e
	})
	if err != nil {
		return err
	}

	l.entries = append(l.entries, batch...)

	return nil
}

// decodeRecords reads full records one at a time and converts each through
// build. The converted entries are collected locally so that a mid-stream
// failure leaves the caller's log untouched.
func decodeRecords[E any](r io.Reader, layout schema.Layout, build func(t float64, rec []byte) E) ([]E, error) {
	var batch []E

	rec := make([]byte, layout.RecordSize)
	for {
		n, err := io.ReadFull(r, rec)
		if errors.Is(err, io.EOF) {
			return batch, nil
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %d trailing bytes of a %d byte record after %d records",
				errs.ErrTruncatedRecord, n, layout.RecordSize, len(batch))
		}
		if err != nil {
			return nil, err
		}

		t := float64(engine.Uint32(rec[0:4])) * schema.TimestampScale
		batch = append(batch, build(t, rec))
	}
}

// fieldValue extracts one channel field from a record and converts it to
// engineering units via the layout's affine transform.
func fieldValue(rec []byte, f schema.FieldSpec) float64 {
	var raw float64
	switch f.Kind {
	case schema.U8:
		raw = float64(rec[f.Offset])
	case schema.I16:
		raw = float64(int16(engine.Uint16(rec[f.Offset : f.Offset+2])))
	case schema.U16:
		raw = float64(engine.Uint16(rec[f.Offset : f.Offset+2]))
	case schema.U32:
		raw = float64(engine.Uint32(rec[f.Offset : f.Offset+4]))
	}

	return raw*f.Scale + f.Bias
}
