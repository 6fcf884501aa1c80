// Package digest computes xxHash64 fingerprints for the `-s` statistics
// report. It plays no role in the wire format, which uses CRC64 (see
// package wire) for corruption detection.
package digest

import "github.com/cespare/xxhash/v2"

// Bytes returns the xxHash64 digest of data, used to fingerprint a
// sub-block's pre-entropy-coded payload for the comparative report.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// String returns the xxHash64 digest of s.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}
