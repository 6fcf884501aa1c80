// Package format defines the small set of enums shared by the wire format
// and the optional statistics report.
package format

// StreamAlgorithm identifies the entropy coder used to frame a sub-block or
// a NUC stream on disk. The choice per stream is fixed by the format, not
// user-selectable, so this enum has exactly the two members the wire format
// allows.
type StreamAlgorithm uint8

const (
	// AlgZlib frames a buffer as uncompressed_sz||compressed_sz||crc||bytes.
	AlgZlib StreamAlgorithm = 0x1
	// AlgRangeO1 frames a buffer as compressed_sz||crc||bytes, self-delimiting.
	AlgRangeO1 StreamAlgorithm = 0x2
)

func (a StreamAlgorithm) String() string {
	switch a {
	case AlgZlib:
		return "zlib"
	case AlgRangeO1:
		return "range-o1"
	default:
		return "unknown"
	}
}

// BenchAlgorithm identifies a comparative codec used only by the `-s`
// statistics report. None of these ever appear on disk; the wire format is
// fixed to StreamAlgorithm above.
type BenchAlgorithm uint8

const (
	BenchNone BenchAlgorithm = 0x1
	BenchZstd BenchAlgorithm = 0x2
	BenchS2   BenchAlgorithm = 0x3
	BenchLZ4  BenchAlgorithm = 0x4
)

func (b BenchAlgorithm) String() string {
	switch b {
	case BenchNone:
		return "none"
	case BenchZstd:
		return "zstd"
	case BenchS2:
		return "s2"
	case BenchLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}
