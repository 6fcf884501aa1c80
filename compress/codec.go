package compress

import (
	"fmt"

	"github.com/voges-tsc/tsc/format"
)

// Compressor compresses a byte payload.
type Compressor interface {
	// Compress compresses data and returns the compressed result. The
	// returned slice is newly allocated; the input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a payload produced by the matching Compressor.
type Decompressor interface {
	// Decompress returns an error if data is corrupted or was produced by a
	// different codec.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines Compressor and Decompressor. Every stream-entropy coder
// (Zlib, RangeO1) and every benchmark codec (NoOp, Zstd, S2, LZ4) implements
// this interface.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats reports the outcome of a single compress operation, used
// by the `-s` statistics report to compare benchmark algorithms against each
// other. It plays no role in the wire format.
type CompressionStats struct {
	Algorithm      format.BenchAlgorithm
	OriginalSize   int64
	CompressedSize int64
}

// CompressionRatio returns CompressedSize/OriginalSize. Values below 1.0
// indicate the payload shrank.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage of the original size.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateBenchCodec returns the Codec implementing the given benchmark
// algorithm. The two wire-format coders are never selected this way; build
// them directly with NewZlibCodec/NewRangeO1Codec.
func CreateBenchCodec(alg format.BenchAlgorithm) (Codec, error) {
	switch alg {
	case format.BenchNone:
		return NewNoOpCompressor(), nil
	case format.BenchZstd:
		return NewZstdCompressor(), nil
	case format.BenchS2:
		return NewS2Compressor(), nil
	case format.BenchLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid benchmark algorithm: %s", alg)
	}
}

// AllBenchAlgorithms lists the algorithms the `-s` report compares, in
// display order.
func AllBenchAlgorithms() []format.BenchAlgorithm {
	return []format.BenchAlgorithm{format.BenchNone, format.BenchLZ4, format.BenchS2, format.BenchZstd}
}
