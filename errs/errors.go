// Package errs defines the sentinel errors shared across the telemetry module.
//
// Callers are expected to match these with errors.Is after unwrapping any
// contextual wrapper (e.g. session.FileError) added along the way.
package errs

import "errors"

var (
	// ErrUnknownVersion indicates a schema version with no registered decode table.
	ErrUnknownVersion = errors.New("unknown schema version")

	// ErrTruncatedRecord indicates a segment ended mid-record: fewer bytes
	// remained than one full fixed-size record for the active schema version.
	ErrTruncatedRecord = errors.New("truncated record")

	// ErrUnknownCodec indicates a segment file suffix that maps to no
	// registered compression codec.
	ErrUnknownCodec = errors.New("unknown compression codec")

	// ErrUnknownChannel indicates a channel identifier outside the fixed
	// channel vocabulary.
	ErrUnknownChannel = errors.New("unknown channel")
)
