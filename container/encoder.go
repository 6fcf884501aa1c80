package container

import (
	"io"

	"github.com/voges-tsc/tsc/errs"
	"github.com/voges-tsc/tsc/fieldcodec"
	"github.com/voges-tsc/tsc/nuc"
	"github.com/voges-tsc/tsc/sam"
	"github.com/voges-tsc/tsc/wire"
)

// DefaultBlockSize is the reference block size: 10,000 records per block
// (spec §5).
const DefaultBlockSize = 10000

// Encoder writes a complete tsc file: FileHeader, SamHeader, then a
// sequence of Blocks. It owns the five field codecs and the NUC encoder and
// feeds every Add call to all five in lockstep, so they stay index-aligned
// within a block.
type Encoder struct {
	w  io.WriteSeeker
	ww *wire.Writer

	blockSize int
	recN      uint64
	blkCnt    uint64
	pending   uint64

	posMin, posMax uint32
	sawPos         bool

	aux  *fieldcodec.AuxEncoder
	id   *fieldcodec.IDEncoder
	pair *fieldcodec.PairEncoder
	qual *fieldcodec.QualEncoder
	nuc  *nuc.Encoder

	// prevFposNxtOffset is the file offset of the previous block's
	// FposNxt field, or -1 before the first block. Patched once the
	// current block's start offset is known.
	prevFposNxtOffset int64

	headerWritten bool

	// statsHook, if set, is called with each sub-block's raw payload just
	// before it is compressed, so callers can build a `-s` comparison
	// report without a second encoding pass.
	statsHook func(kind string, payload []byte)
}

// NewEncoder writes the FileHeader placeholder and returns an Encoder ready
// to accept SetHeader and then Add calls. w must support seeking so the
// header's rec_n/blk_n and each block's fpos_nxt can be back-patched.
func NewEncoder(w io.WriteSeeker, blockSize int) (*Encoder, error) {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	e := &Encoder{
		w:                 w,
		ww:                wire.NewWriter(w),
		blockSize:         blockSize,
		prevFposNxtOffset: -1,
		aux:               fieldcodec.NewAuxEncoder(),
		id:                fieldcodec.NewIDEncoder(),
		pair:              fieldcodec.NewPairEncoder(),
		qual:              fieldcodec.NewQualEncoder(),
		nuc:               nuc.NewEncoder(),
	}

	if err := WriteFileHeader(e.ww, FileHeader{Flags: FlagSAMPayload, SblkN: SubBlocksPerBlock}); err != nil {
		return nil, err
	}

	return e, nil
}

// SetHeader writes the verbatim SAM header section. Must be called exactly
// once, before the first Add.
func (e *Encoder) SetHeader(data []byte) error {
	if e.headerWritten {
		return errs.Plain(errs.Format, errInvalidCall("SetHeader called twice"))
	}
	e.headerWritten = true

	return WriteSamHeader(e.ww, data)
}

// BlockCount returns the number of blocks flushed so far (accurate only
// after Close).
func (e *Encoder) BlockCount() uint64 { return e.blkCnt }

// SetStatsHook installs a callback invoked with each sub-block's raw,
// uncompressed payload immediately before that block is flushed. Used by
// the `-s` CLI flag to build a comparison report inline with encoding.
func (e *Encoder) SetStatsHook(hook func(kind string, payload []byte)) {
	e.statsHook = hook
}

// Add feeds one record into every sub-codec and flushes a block once
// blockSize records have accumulated.
func (e *Encoder) Add(rec sam.Record) error {
	recordIdx := int64(e.recN)

	e.id.Add(rec.Qname)
	e.aux.Add(fieldcodec.AuxField{Flag: rec.Flag, Mapq: rec.Mapq, Opt: rec.Opt})
	e.pair.Add(fieldcodec.PairField{Rnext: rec.Rnext, Pnext: rec.Pnext, Tlen: rec.Tlen})
	e.qual.Add(rec.Qual)
	if err := e.nuc.Add(rec, recordIdx); err != nil {
		return err
	}

	if !rec.IsUnmapped() {
		if !e.sawPos || rec.Pos < e.posMin {
			e.posMin = rec.Pos
		}
		if !e.sawPos || rec.Pos > e.posMax {
			e.posMax = rec.Pos
		}
		e.sawPos = true
	}

	e.recN++
	e.pending++
	if e.pending >= uint64(e.blockSize) {
		return e.flushBlock()
	}

	return nil
}

// flushBlock writes the current block's header and five sub-blocks, and
// patches the previous block's fpos_nxt now that this block's start offset
// is known.
func (e *Encoder) flushBlock() error {
	startOffset, err := e.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return errs.Plain(errs.IO, err)
	}

	if e.prevFposNxtOffset >= 0 {
		if _, err := e.w.Seek(e.prevFposNxtOffset, io.SeekStart); err != nil {
			return errs.Plain(errs.IO, err)
		}
		if err := e.ww.WriteU64BE(uint64(startOffset)); err != nil {
			return err
		}
		if _, err := e.w.Seek(startOffset, io.SeekStart); err != nil {
			return errs.Plain(errs.IO, err)
		}
	}

	header := BlockHeader{
		Fpos:    uint64(startOffset),
		FposNxt: 0,
		BlkCnt:  e.blkCnt,
		RecCnt:  e.pending,
		RecMax:  uint64(e.blockSize),
		PosMin:  uint64(e.posMin),
		PosMax:  uint64(e.posMax),
	}
	if err := WriteBlockHeader(e.ww, header); err != nil {
		return err
	}
	e.prevFposNxtOffset = startOffset + fposNxtOffset

	if e.statsHook != nil {
		e.statsHook("aux", e.aux.Bytes())
		e.statsHook("id", e.id.Bytes())
		e.statsHook("nuc", e.nuc.RawPayload())
		e.statsHook("pair", e.pair.Bytes())
		e.statsHook("qual", e.qual.Bytes())
	}

	if err := e.aux.Flush(e.ww); err != nil {
		return err
	}
	if err := e.id.Flush(e.ww); err != nil {
		return err
	}
	if err := e.nuc.Flush(e.ww); err != nil {
		return err
	}
	if err := e.pair.Flush(e.ww); err != nil {
		return err
	}
	if err := e.qual.Flush(e.ww); err != nil {
		return err
	}

	e.blkCnt++
	e.pending = 0
	e.sawPos = false
	e.posMin, e.posMax = 0, 0

	return nil
}

// Close flushes any partial final block and back-patches the FileHeader
// with the true record and block counts.
func (e *Encoder) Close() error {
	if e.pending > 0 {
		if err := e.flushBlock(); err != nil {
			return err
		}
	}

	if _, err := e.w.Seek(0, io.SeekStart); err != nil {
		return errs.Plain(errs.IO, err)
	}

	return WriteFileHeader(e.ww, FileHeader{
		Flags: FlagSAMPayload,
		RecN:  e.recN,
		BlkN:  e.blkCnt,
		SblkN: SubBlocksPerBlock,
	})
}

type errInvalidCall string

func (e errInvalidCall) Error() string { return string(e) }
