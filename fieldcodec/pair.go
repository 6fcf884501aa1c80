package fieldcodec

import (
	"bytes"
	"strconv"

	"github.com/voges-tsc/tsc/errs"
	"github.com/voges-tsc/tsc/internal/pool"
	"github.com/voges-tsc/tsc/sam"
	"github.com/voges-tsc/tsc/wire"
)

var pairMagic = [8]byte{'p', 'a', 'i', 'r', '-', '-', '-', 0}

// PairField is the per-record payload the PAIR codec carries: the mate
// reference name, mate position, and template length.
type PairField struct {
	Rnext string
	Pnext uint32
	Tlen  int64
}

// PairEncoder accumulates `rnext \t pnext \t tlen \n` lines for one block.
type PairEncoder struct {
	buf   *pool.ByteBuffer
	count uint64
}

func NewPairEncoder() *PairEncoder {
	return &PairEncoder{buf: pool.GetStreamBuffer()}
}

func (e *PairEncoder) Add(f PairField) {
	e.buf.MustWrite([]byte(f.Rnext))
	e.buf.MustWrite(tab)
	e.buf.MustWrite([]byte(sam.FormatUint(uint64(f.Pnext))))
	e.buf.MustWrite(tab)
	e.buf.MustWrite([]byte(sam.FormatInt(f.Tlen)))
	e.buf.MustWrite(newline)
	e.count++
}

// Bytes returns the current block's accumulated, not-yet-compressed
// payload. Used only by package stats for the `-s` comparison report.
func (e *PairEncoder) Bytes() []byte { return e.buf.Bytes() }

func (e *PairEncoder) Flush(w *wire.Writer) error {
	if err := wire.WriteSubBlockHeader(w, pairMagic, e.count); err != nil {
		return err
	}
	if err := wire.WriteZlibFramed(w, e.buf.Bytes()); err != nil {
		return err
	}
	pool.PutStreamBuffer(e.buf)
	e.buf = pool.GetStreamBuffer()
	e.count = 0

	return nil
}

// PairDecoder reads a pair sub-block back into an ordered list of
// PairFields.
type PairDecoder struct{}

func NewPairDecoder() *PairDecoder { return &PairDecoder{} }

func (d *PairDecoder) Read(r *wire.Reader) ([]PairField, error) {
	recCount, err := wire.ReadSubBlockHeader(r, pairMagic)
	if err != nil {
		return nil, err
	}
	payload, err := wire.ReadZlibFramed(r)
	if err != nil {
		return nil, err
	}

	lines := splitLines(payload, int(recCount))
	out := make([]PairField, 0, len(lines))
	for _, line := range lines {
		f, err := parsePairLine(line)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}

	return out, nil
}

func parsePairLine(line string) (PairField, error) {
	parts := bytes.SplitN([]byte(line), tab, 3)

	rnext := "*"
	if len(parts) > 0 && len(parts[0]) > 0 {
		rnext = string(parts[0])
	}

	var pnext uint64
	if len(parts) > 1 && len(parts[1]) > 0 {
		v, err := strconv.ParseUint(string(parts[1]), 10, 32)
		if err != nil {
			return PairField{}, errs.Plain(errs.Format, err)
		}
		pnext = v
	}

	var tlen int64
	if len(parts) > 2 && len(parts[2]) > 0 {
		v, err := strconv.ParseInt(string(parts[2]), 10, 64)
		if err != nil {
			return PairField{}, errs.Plain(errs.Format, err)
		}
		tlen = v
	}

	return PairField{Rnext: rnext, Pnext: uint32(pnext), Tlen: tlen}, nil
}
