package compress

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

type lz4Codec struct{}

var _ Codec = lz4Codec{}

func (lz4Codec) Format() Format { return FormatLZ4 }

func (lz4Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

func (lz4Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return lz4.NewWriter(w), nil
}
