package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		format   Format
		stripped string
	}{
		{"raw segment", "logs/0.bin", FormatNone, "logs/0.bin"},
		{"zstd segment", "logs/0.bin.zst", FormatZstd, "logs/0.bin"},
		{"s2 segment", "logs/12.bin.s2", FormatS2, "logs/12.bin"},
		{"lz4 segment", "temperature.bin.lz4", FormatLZ4, "temperature.bin"},
		{"no extension", "README", FormatNone, "README"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, stripped := DetectPath(tt.path)
			require.Equal(t, tt.format, f)
			require.Equal(t, tt.stripped, stripped)
		})
	}
}

func TestForFormat_Unknown(t *testing.T) {
	_, err := ForFormat(Format(0xff))
	require.Error(t, err)
}

func TestCodec_Roundtrip(t *testing.T) {
	payload := bytes.Repeat([]byte{0x10, 0x27, 0x00, 0x00, 0xe8, 0x03, 0x42}, 512)

	for _, format := range []Format{FormatNone, FormatZstd, FormatS2, FormatLZ4} {
		t.Run(format.String(), func(t *testing.T) {
			codec, err := ForFormat(format)
			require.NoError(t, err)
			require.Equal(t, format, codec.Format())

			var buf bytes.Buffer
			w, err := codec.NewWriter(&buf)
			require.NoError(t, err)

			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := codec.NewReader(&buf)
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())

			require.Equal(t, payload, got)
		})
	}
}

func TestFormat_Suffix(t *testing.T) {
	require.Empty(t, FormatNone.Suffix())
	require.Equal(t, ".zst", FormatZstd.Suffix())
	require.Equal(t, ".s2", FormatS2.Suffix())
	require.Equal(t, ".lz4", FormatLZ4.Suffix())
}
