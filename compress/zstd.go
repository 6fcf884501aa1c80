package compress

// ZstdCompressor is the `-s` report's best-ratio comparison point. Its
// Compress/Decompress methods live in zstd_pure.go (pure-Go, built when cgo
// is disabled) or zstd_cgo.go (cgo build, wraps valyala/gozstd), matching the same
// !cgo/cgo split the NUC and field codecs never need since the wire format
// never selects zstd.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
