// Package session discovers log segment files and assembles them into one
// immutable Session: the decoded logs, every built-in channel series, and the
// evaluated custom channels.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rennwerk/telemetry/compress"
)

// Extension marks a file as a log segment. A compression suffix may follow
// it (see the compress package).
const Extension = ".bin"

// tempStem is the reserved base name of the temperature segment.
const tempStem = "temperature"

// Files is a resolved session source: data segment paths ordered by ascending
// segment index, plus the optional temperature segment path (empty if the
// directory has none).
type Files struct {
	Data []string
	Temp string
}

// FindFiles scans one directory for log segments.
//
// A file is a segment when, after stripping any compression suffix, it has
// the log extension. A stem equal to the reserved temperature name selects
// the temperature segment; a stem parsing as a non-negative integer is a data
// segment ordered by that integer value, so segment 2 precedes segment 10.
// Everything else is ignored. No decoding happens here; the only possible
// failure is an unreadable directory.
//
// If several temperature segments exist (e.g. one raw, one compressed) the
// last one in directory listing order wins. That is a simplification of an
// unspecified situation, not a guarantee.
func FindFiles(dir string) (Files, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Files{}, fmt.Errorf("reading log directory: %w", err)
	}

	var files Files

	type segment struct {
		index uint64
		path  string
	}
	var segments []segment

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		_, logical := compress.DetectPath(entry.Name())
		if filepath.Ext(logical) != Extension {
			continue
		}

		stem := strings.TrimSuffix(logical, Extension)
		if stem == tempStem {
			files.Temp = path
			continue
		}
		if n, err := strconv.ParseUint(stem, 10, 64); err == nil {
			segments = append(segments, segment{index: n, path: path})
		}
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].index < segments[j].index
	})

	files.Data = make([]string, len(segments))
	for i, s := range segments {
		files.Data[i] = s.path
	}

	return files, nil
}
