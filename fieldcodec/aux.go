package fieldcodec

import (
	"bytes"
	"strconv"

	"github.com/voges-tsc/tsc/errs"
	"github.com/voges-tsc/tsc/internal/pool"
	"github.com/voges-tsc/tsc/sam"
	"github.com/voges-tsc/tsc/wire"
)

var auxMagic = [8]byte{'a', 'u', 'x', '-', '-', '-', '-', 0}

// AuxField is the per-record payload the AUX codec carries: the bitflag,
// mapping quality, and the optional-tags blob.
type AuxField struct {
	Flag uint16
	Mapq uint8
	Opt  string
}

// AuxEncoder accumulates `flag \t mapq \t opt \n` lines for one block.
type AuxEncoder struct {
	buf   *pool.ByteBuffer
	count uint64
}

func NewAuxEncoder() *AuxEncoder {
	return &AuxEncoder{buf: pool.GetStreamBuffer()}
}

func (e *AuxEncoder) Add(f AuxField) {
	e.buf.MustWrite([]byte(sam.FormatUint(uint64(f.Flag))))
	e.buf.MustWrite(tab)
	e.buf.MustWrite([]byte(sam.FormatUint(uint64(f.Mapq))))
	e.buf.MustWrite(tab)
	e.buf.MustWrite([]byte(f.Opt))
	e.buf.MustWrite(newline)
	e.count++
}

// Bytes returns the current block's accumulated, not-yet-compressed
// payload. Used only by package stats for the `-s` comparison report.
func (e *AuxEncoder) Bytes() []byte { return e.buf.Bytes() }

func (e *AuxEncoder) Flush(w *wire.Writer) error {
	if err := wire.WriteSubBlockHeader(w, auxMagic, e.count); err != nil {
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

// AuxDecoder reads an aux sub-block back into an ordered list of AuxFields.
type AuxDecoder struct{}

func NewAuxDecoder() *AuxDecoder { return &AuxDecoder{} }

func (d *AuxDecoder) Read(r *wire.Reader) ([]AuxField, error) {
	recCount, err := wire.ReadSubBlockHeader(r, auxMagic)
	if err != nil {
		return nil, err
	}
	payload, err := wire.ReadZlibFramed(r)
	if err != nil {
		return nil, err
	}

	lines := splitLines(payload, int(recCount))
	out := make([]AuxField, 0, len(lines))
	for _, line := range lines {
		f, err := parseAuxLine(line)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}

	return out, nil
}

// parseAuxLine splits on the first two tabs only, so any tab inside opt
// survives intact.
func parseAuxLine(line string) (AuxField, error) {
	parts := bytes.SplitN([]byte(line), tab, 3)

	var flag, mapq uint64
	if len(parts) > 0 && len(parts[0]) > 0 {
		v, err := strconv.ParseUint(string(parts[0]), 10, 16)
		if err != nil {
			return AuxField{}, errs.Plain(errs.Format, err)
		}
		flag = v
	}
	if len(parts) > 1 && len(parts[1]) > 0 {
		v, err := strconv.ParseUint(string(parts[1]), 10, 8)
		if err != nil {
			return AuxField{}, errs.Plain(errs.Format, err)
		}
		mapq = v
	}
	opt := ""
	if len(parts) > 2 {
		opt = string(parts[2])
	}

	return AuxField{Flag: uint16(flag), Mapq: uint8(mapq), Opt: opt}, nil
}
