package wire

import (
	"fmt"

	"github.com/voges-tsc/tsc/compress"
	"github.com/voges-tsc/tsc/errs"
)

var (
	zlibCodec    = compress.NewZlibCodec()
	rangeO1Codec = compress.NewRangeO1Codec()
)

// WriteZlibFramed compresses payload with zlib and writes the zlib-framed
// layout: u64 uncompressed_sz || u64 compressed_sz || u64 crc || bytes.
func WriteZlibFramed(w *Writer, payload []byte) error {
	compressed, err := zlibCodec.Compress(payload)
	if err != nil {
		return errs.Plain(errs.Resource, fmt.Errorf("zlib compress: %w", err))
	}

	if err := w.WriteU64BE(uint64(len(payload))); err != nil {
		return err
	}
	if err := w.WriteU64BE(uint64(len(compressed))); err != nil {
		return err
	}
	if err := w.WriteU64BE(CRC64(compressed)); err != nil {
		return err
	}

	return w.WriteBytes(compressed)
}

// ReadZlibFramed reads and verifies a zlib-framed block, returning the
// decompressed payload.
func ReadZlibFramed(r *Reader) ([]byte, error) {
	uncompressedSz, err := r.ReadU64BE()
	if err != nil {
		return nil, err
	}
	compressedSz, err := r.ReadU64BE()
	if err != nil {
		return nil, err
	}
	wantCRC, err := r.ReadU64BE()
	if err != nil {
		return nil, err
	}

	compressed, err := r.ReadBytes(int(compressedSz))
	if err != nil {
		return nil, err
	}

	if got := CRC64(compressed); got != wantCRC {
		return nil, errs.Plain(errs.Format, errs.ErrCRCMismatch)
	}

	payload, err := zlibCodec.Decompress(compressed)
	if err != nil {
		return nil, errs.Plain(errs.Format, fmt.Errorf("zlib decompress: %w", err))
	}
	if uint64(len(payload)) != uncompressedSz {
		return nil, errs.Plain(errs.Format, fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrUnexpectedEOF, uncompressedSz, len(payload)))
	}

	return payload, nil
}

// WriteRangeFramed compresses payload with the order-1 range coder and
// writes the range-framed layout: u64 compressed_sz || u64 crc || bytes.
// The uncompressed size is not stored separately since the range coder's
// output self-delimits (it embeds its own length header).
func WriteRangeFramed(w *Writer, payload []byte) error {
	compressed, err := rangeO1Codec.Compress(payload)
	if err != nil {
		return errs.Plain(errs.Resource, fmt.Errorf("range-o1 compress: %w", err))
	}

	if err := w.WriteU64BE(uint64(len(compressed))); err != nil {
		return err
	}
	if err := w.WriteU64BE(CRC64(compressed)); err != nil {
		return err
	}

	return w.WriteBytes(compressed)
}

// ReadRangeFramed reads and verifies a range-framed block, returning the
// decompressed payload.
func ReadRangeFramed(r *Reader) ([]byte, error) {
	compressedSz, err := r.ReadU64BE()
	if err != nil {
		return nil, err
	}
	wantCRC, err := r.ReadU64BE()
	if err != nil {
		return nil, err
	}

	compressed, err := r.ReadBytes(int(compressedSz))
	if err != nil {
		return nil, err
	}

	if got := CRC64(compressed); got != wantCRC {
		return nil, errs.Plain(errs.Format, errs.ErrCRCMismatch)
	}

	payload, err := rangeO1Codec.Decompress(compressed)
	if err != nil {
		return nil, errs.Plain(errs.Format, fmt.Errorf("range-o1 decompress: %w", err))
	}

	return payload, nil
}

// WriteSubBlockHeader writes the 8-byte ASCII magic and the u64 record
// count shared by every sub-block (aux, id, nuc, pair, qual).
func WriteSubBlockHeader(w *Writer, magic [8]byte, recCount uint64) error {
	if err := w.WriteBytes(magic[:]); err != nil {
		return err
	}

	return w.WriteU64BE(recCount)
}

// ReadSubBlockHeader reads and validates a sub-block header against want,
// returning the record count.
func ReadSubBlockHeader(r *Reader, want [8]byte) (uint64, error) {
	got, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	for i := range want {
		if got[i] != want[i] {
			return 0, errs.Plain(errs.Format, fmt.Errorf("%w: expected %q, got %q", errs.ErrBadSubBlockID, want, got))
		}
	}

	return r.ReadU64BE()
}
