// Package hash wraps xxHash64 for the two places a stable 64-bit digest is
// needed: schema identifiers and recorder chunk checksums.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a schema name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Checksum computes the xxHash64 of a byte slice.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// NewDigest returns a streaming xxHash64 digest for data that is checksummed
// in several pieces.
func NewDigest() *xxhash.Digest {
	return xxhash.New()
}
