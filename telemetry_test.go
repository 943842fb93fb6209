package telemetry

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rennwerk/telemetry/schema"
	"github.com/rennwerk/telemetry/session"
)

func writeDataSegment(t *testing.T, dir, name string, tsMs uint32, n int) {
	t.Helper()

	layout, err := schema.DataLayout(schema.V2)
	require.NoError(t, err)

	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		rec := make([]byte, layout.RecordSize)
		binary.LittleEndian.PutUint32(rec[0:4], tsMs+uint32(i)*10)
		for _, f := range layout.Fields {
			binary.LittleEndian.PutUint16(rec[f.Offset:f.Offset+2], uint16(f.Offset))
		}
		buf.Write(rec)
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	writeDataSegment(t, dir, "0.bin", 0, 3)
	writeDataSegment(t, dir, "1.bin", 30, 2)

	sess, err := Open(dir, schema.V2,
		WithCustomChannel("front power", "power_fl + power_fr"),
		WithCustomChannel("broken", "no_such_channel"),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
	require.NoError(t, err)

	require.Equal(t, 5, sess.Data.Len())
	require.Len(t, sess.Power.FL, 5)

	require.Len(t, sess.Custom, 2)
	require.NoError(t, sess.Custom[0].Err)
	require.Len(t, sess.Custom[0].Series, 5)
	require.Error(t, sess.Custom[1].Err)
}

func TestOpen_MissingDirectory(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"), schema.V2)
	require.Error(t, err)
}

func TestOpen_DecodeFailureNamesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0.bin"), []byte{1, 2, 3}, 0o644))

	_, err := Open(dir, schema.V2)

	var fileErr *session.FileError
	require.ErrorAs(t, err, &fileErr)
	require.Equal(t, filepath.Join(dir, "0.bin"), fileErr.Path)
}
