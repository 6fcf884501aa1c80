// Package compress provides the entropy coders tsc uses.
//
// Two of them are part of the wire format: Zlib (zlib.go, wrapping
// github.com/klauspost/compress/zlib) and RangeO1 (rangeo1.go, a from-scratch
// order-1 adaptive range coder). Every sub-block and NUC stream is framed
// with exactly one of the two — never chosen by the caller, always fixed by
// which stream is being written.
//
// A second, unrelated family exists purely for the `-s` statistics report:
// NoOp, LZ4, S2, and Zstd. These never appear on disk. `-s` recompresses a
// copy of each sub-block's payload with all four and prints a
// CompressionStats table so a user can see what another algorithm would have
// achieved on the same data.
package compress
