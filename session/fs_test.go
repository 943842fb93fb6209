package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	return path
}

func TestFindFiles_NumericOrdering(t *testing.T) {
	dir := t.TempDir()

	// Lexical order would put "10" before "2"; segment order must not.
	p2 := touch(t, dir, "2.bin")
	p10 := touch(t, dir, "10.bin")
	p1 := touch(t, dir, "1.bin")
	temp := touch(t, dir, "temperature.bin")

	files, err := FindFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{p1, p2, p10}, files.Data)
	require.Equal(t, temp, files.Temp)
}

func TestFindFiles_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()

	touch(t, dir, "notes.txt")
	touch(t, dir, "calib.bin") // stem is neither an index nor the reserved name
	touch(t, dir, "-1.bin")    // negative index is not a segment
	touch(t, dir, "0.binx")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "7.bin"), 0o755))

	p0 := touch(t, dir, "0.bin")

	files, err := FindFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{p0}, files.Data)
	require.Empty(t, files.Temp)
}

func TestFindFiles_CompressedSegments(t *testing.T) {
	dir := t.TempDir()

	p0 := touch(t, dir, "0.bin.zst")
	p1 := touch(t, dir, "1.bin.lz4")
	p2 := touch(t, dir, "2.bin.s2")
	temp := touch(t, dir, "temperature.bin.zst")

	files, err := FindFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{p0, p1, p2}, files.Data)
	require.Equal(t, temp, files.Temp)
}

func TestFindFiles_DuplicateTemperatureLastWins(t *testing.T) {
	dir := t.TempDir()

	touch(t, dir, "temperature.bin")
	last := touch(t, dir, "temperature.bin.zst")

	files, err := FindFiles(dir)
	require.NoError(t, err)
	require.Equal(t, last, files.Temp)
}

func TestFindFiles_EmptyDirectory(t *testing.T) {
	files, err := FindFiles(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, files.Data)
	require.Empty(t, files.Temp)
}

func TestFindFiles_MissingDirectory(t *testing.T) {
	_, err := FindFiles(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
