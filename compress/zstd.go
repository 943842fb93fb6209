package compress

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

type zstdCodec struct{}

var _ Codec = zstdCodec{}

func (zstdCodec) Format() Format { return FormatZstd }

// NewReader returns a streaming Zstandard decompressor over r.
//
// Concurrency is pinned to one goroutine: segments are consumed by a single
// sequential decode pass, so background decode workers only add overhead.
func (zstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(false),
	)
	if err != nil {
		return nil, err
	}

	return dec.IOReadCloser(), nil
}

func (zstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1),
	)
}
