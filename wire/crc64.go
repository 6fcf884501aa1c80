package wire

import "hash/crc64"

// ecmaTable is shared by every CRC64 call; the on-disk checksum is the
// ECMA-182 CRC-64 polynomial, so this uses the standard library's table
// directly rather than any third-party checksum package.
var ecmaTable = crc64.MakeTable(crc64.ECMA)

// CRC64 computes the CRC-64-ECMA checksum of data.
func CRC64(data []byte) uint64 {
	return crc64.Checksum(data, ecmaTable)
}
