// Package compress selects and applies the compression codec of a log
// segment file.
//
// Recorders may compress finished segments to save flash space. The format is
// carried by a file suffix appended after the log extension: "0.bin" is a raw
// segment, "0.bin.zst", "0.bin.s2" and "0.bin.lz4" are compressed ones. The
// fixed-width record contract applies to the decompressed stream, so the
// decoder never sees the codec.
package compress

import (
	"fmt"
	"io"
	"strings"

	"github.com/rennwerk/telemetry/errs"
)

// Format enumerates the supported segment compression formats.
type Format uint8

const (
	FormatNone Format = iota + 1 // FormatNone represents an uncompressed segment.
	FormatZstd                   // FormatZstd represents Zstandard compression.
	FormatS2                     // FormatS2 represents S2 compression.
	FormatLZ4                    // FormatLZ4 represents LZ4 frame compression.
)

func (f Format) String() string {
	switch f {
	case FormatNone:
		return "None"
	case FormatZstd:
		return "Zstd"
	case FormatS2:
		return "S2"
	case FormatLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Suffix returns the file suffix marking the format, empty for FormatNone.
func (f Format) Suffix() string {
	switch f {
	case FormatZstd:
		return ".zst"
	case FormatS2:
		return ".s2"
	case FormatLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// Codec wraps raw segment streams with one compression format.
//
// NewReader decompresses, NewWriter compresses. Both operate on streams
// because segments are decoded incrementally record by record; a whole-file
// buffer is never materialized.
type Codec interface {
	Format() Format

	// NewReader returns a reader yielding the decompressed stream of r.
	// Closing the returned reader does not close r.
	NewReader(r io.Reader) (io.ReadCloser, error)

	// NewWriter returns a writer compressing into w. The returned writer
	// must be closed to flush the final block; closing it does not close w.
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

var codecs = map[Format]Codec{
	FormatNone: noneCodec{},
	FormatZstd: zstdCodec{},
	FormatS2:   s2Codec{},
	FormatLZ4:  lz4Codec{},
}

// ForFormat returns the codec implementing f.
func ForFormat(f Format) (Codec, error) {
	c, ok := codecs[f]
	if !ok {
		return nil, fmt.Errorf("%w: format %d", errs.ErrUnknownCodec, f)
	}

	return c, nil
}

// DetectPath splits a segment path into its compression format and the
// logical path with the compression suffix stripped.
//
// "logs/0.bin.zst" yields (FormatZstd, "logs/0.bin"); a path without a known
// compression suffix yields (FormatNone, path) unchanged.
func DetectPath(path string) (Format, string) {
	for _, f := range []Format{FormatZstd, FormatS2, FormatLZ4} {
		if strings.HasSuffix(path, f.Suffix()) {
			return f, strings.TrimSuffix(path, f.Suffix())
		}
	}

	return FormatNone, path
}
