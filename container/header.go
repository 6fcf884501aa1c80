package container

import (
	"fmt"

	"github.com/voges-tsc/tsc/errs"
	"github.com/voges-tsc/tsc/wire"
)

// fileMagic is the FileHeader's fixed 4-byte identifier.
var fileMagic = [4]byte{'t', 's', 'c', 0}

// FlagSAMPayload is bit 0 of FileHeader.Flags: set when the compressed
// payload originated from SAM text (always true for this codec; the bit
// exists so the format can someday carry other payload kinds).
const FlagSAMPayload = 1 << 0

// SubBlocksPerBlock is the fixed count of AUX/ID/NUC/PAIR/QUAL sub-blocks.
const SubBlocksPerBlock = 5

// FileHeader is the fixed-size header at file offset 0 (spec §6).
type FileHeader struct {
	Flags uint8
	RecN  uint64
	BlkN  uint64
	SblkN uint64
}

func WriteFileHeader(w *wire.Writer, h FileHeader) error {
	if err := w.WriteBytes(fileMagic[:]); err != nil {
		return err
	}
	if err := w.WriteU8(h.Flags); err != nil {
		return err
	}
	if err := w.WriteU64BE(h.RecN); err != nil {
		return err
	}
	if err := w.WriteU64BE(h.BlkN); err != nil {
		return err
	}

	return w.WriteU64BE(h.SblkN)
}

func ReadFileHeader(r *wire.Reader) (FileHeader, error) {
	magic, err := r.ReadBytes(4)
	if err != nil {
		return FileHeader{}, err
	}
	for i := range fileMagic {
		if magic[i] != fileMagic[i] {
			return FileHeader{}, errs.Plain(errs.Format, fmt.Errorf("%w: expected %q, got %q", errs.ErrBadMagic, fileMagic, magic))
		}
	}

	flags, err := r.ReadU8()
	if err != nil {
		return FileHeader{}, err
	}
	recN, err := r.ReadU64BE()
	if err != nil {
		return FileHeader{}, err
	}
	blkN, err := r.ReadU64BE()
	if err != nil {
		return FileHeader{}, err
	}
	sblkN, err := r.ReadU64BE()
	if err != nil {
		return FileHeader{}, err
	}

	return FileHeader{Flags: flags, RecN: recN, BlkN: blkN, SblkN: sblkN}, nil
}

// WriteSamHeader writes the length-prefixed verbatim SAM header blob.
func WriteSamHeader(w *wire.Writer, data []byte) error {
	if err := w.WriteU64BE(uint64(len(data))); err != nil {
		return err
	}

	return w.WriteBytes(data)
}

func ReadSamHeader(r *wire.Reader) ([]byte, error) {
	sz, err := r.ReadU64BE()
	if err != nil {
		return nil, err
	}

	return r.ReadBytes(int(sz))
}

// BlockHeader precedes every block's five sub-blocks (spec §6). FposNxt is
// 0 for the last block in the file; Rname is reserved and always 0.
type BlockHeader struct {
	Fpos    uint64
	FposNxt uint64
	BlkCnt  uint64
	RecCnt  uint64
	RecMax  uint64
	Rname   uint64
	PosMin  uint64
	PosMax  uint64
}

// blockHeaderSize is BlockHeader's fixed on-disk size in bytes (8 u64s).
const blockHeaderSize = 8 * 8

// fposNxtOffset is FposNxt's byte offset within a serialized BlockHeader,
// used by the encoder to seek back and patch it once the next block's
// start offset is known.
const fposNxtOffset = 8

func WriteBlockHeader(w *wire.Writer, h BlockHeader) error {
	for _, v := range [...]uint64{h.Fpos, h.FposNxt, h.BlkCnt, h.RecCnt, h.RecMax, h.Rname, h.PosMin, h.PosMax} {
		if err := w.WriteU64BE(v); err != nil {
			return err
		}
	}

	return nil
}

func ReadBlockHeader(r *wire.Reader) (BlockHeader, error) {
	var vals [8]uint64
	for i := range vals {
		v, err := r.ReadU64BE()
		if err != nil {
			return BlockHeader{}, err
		}
		vals[i] = v
	}

	return BlockHeader{
		Fpos: vals[0], FposNxt: vals[1], BlkCnt: vals[2], RecCnt: vals[3],
		RecMax: vals[4], Rname: vals[5], PosMin: vals[6], PosMax: vals[7],
	}, nil
}
