// Package schema defines the recording hardware's binary contract: the set of
// schema versions, the fixed channel vocabulary, and the per-version decode
// tables mapping record bytes to engineering units.
//
// One Version governs an entire session. Rather than scattering version
// branches through the decoder, each Version selects one immutable decode
// table (see Layout); the decode loop itself is uniform across versions.
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rennwerk/telemetry/errs"
)

// Version discriminates the binary record layout used by a whole session.
// It is an opaque key into the decode tables; all files opened together are
// decoded under the same version.
type Version uint8

const (
	// V1 is the original firmware layout. It records commanded torque but has
	// no realized-torque feedback and no heatsink temperature sensors.
	V1 Version = 1

	// V2 adds per-wheel realized torque to the data record and per-wheel
	// heatsink temperature to the temperature record.
	V2 Version = 2
)

// Versions lists every known schema version in ascending order.
func Versions() []Version {
	return []Version{V1, V2}
}

// Valid reports whether v has a registered decode table.
func (v Version) Valid() bool {
	return v == V1 || v == V2
}

func (v Version) String() string {
	if !v.Valid() {
		return fmt.Sprintf("v?(%d)", uint8(v))
	}

	return "v" + strconv.Itoa(int(v))
}

// ParseVersion parses a version from its textual form. Both "v2" and "2" are
// accepted; unknown versions yield errs.ErrUnknownVersion.
func ParseVersion(s string) (Version, error) {
	t := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "v")
	n, err := strconv.ParseUint(t, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownVersion, s)
	}

	v := Version(n)
	if !v.Valid() {
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownVersion, s)
	}

	return v, nil
}

// Has reports whether channel c is recorded under version v.
//
// Presence is derived from the decode tables, so a channel added to a layout
// automatically becomes present; nothing else needs updating.
func (v Version) Has(c Channel) bool {
	if !v.Valid() || c >= numChannels {
		return false
	}

	return presence[v]&(1<<uint32(c)) != 0
}
