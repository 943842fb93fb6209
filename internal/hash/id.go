package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a channel name. Session series lookups key on
// this instead of the string itself.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}
