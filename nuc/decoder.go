package nuc

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/voges-tsc/tsc/errs"
	"github.com/voges-tsc/tsc/sam"
	"github.com/voges-tsc/tsc/wire"
)

// cursor walks a decoded stream's bytes incrementally, shared across every
// record decoded from one block.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) colonField() (string, error) {
	rest := c.data[c.pos:]
	i := bytes.IndexByte(rest, ':')
	if i < 0 {
		return "", errs.Plain(errs.Format, errs.ErrUnexpectedEOF)
	}
	c.pos += i + 1

	return string(rest[:i]), nil
}

func (c *cursor) u16() (uint16, error) {
	if c.pos+2 > len(c.data) {
		return 0, errs.Plain(errs.Format, errs.ErrUnexpectedEOF)
	}
	v := binary.BigEndian.Uint16(c.data[c.pos : c.pos+2])
	c.pos += 2

	return v, nil
}

func (c *cursor) take(n int) ([]byte, error) {
	if c.pos+n > len(c.data) {
		return nil, errs.Plain(errs.Format, errs.ErrUnexpectedEOF)
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n

	return b, nil
}

func (c *cursor) byte() (byte, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// Decoder reads a NUC sub-block back into an ordered sequence of records.
// Each returned record carries only the fields the NUC codec owns
// (qname/flag/mapq/opt/pair fields are filled in by the other field
// codecs); callers merge them by record index.
type Decoder struct {
	window *Window

	hasPrev   bool
	rnamePrev string
	posPrev   uint32
}

func NewDecoder() *Decoder {
	return &Decoder{window: NewWindow()}
}

// PartialRecord carries the fields the NUC codec reconstructs.
type PartialRecord struct {
	Rname string
	Pos   uint32
	Cigar string
	Seq   string
}

// Read decodes an entire NUC sub-block.
func (d *Decoder) Read(r *wire.Reader) ([]PartialRecord, error) {
	recCount, err := wire.ReadSubBlockHeader(r, blockMagic)
	if err != nil {
		return nil, err
	}

	var cursors [streamCount]cursor
	for i := range cursors {
		data, err := readStream(r, i)
		if err != nil {
			return nil, fmt.Errorf("nuc: read stream %s: %w", streamOrder[i].name, err)
		}
		cursors[i] = cursor{data: data}
	}

	out := make([]PartialRecord, 0, recCount)
	for idx := uint64(0); idx < recCount; idx++ {
		class, err := cursors[streamCtrl].byte()
		if err != nil {
			return nil, err
		}

		var rec PartialRecord
		switch class {
		case classM:
			rec, err = d.decodeM(&cursors)
		case classI:
			rec, err = d.decodeI(&cursors)
		case classP:
			rec, err = d.decodeP(&cursors)
		default:
			err = errs.Plain(errs.Format, fmt.Errorf("nuc: bad ctrl byte %q", class))
		}
		if err != nil {
			return nil, errs.AtRecord(errs.Format, int64(idx), err)
		}

		out = append(out, rec)
	}

	return out, nil
}

func (d *Decoder) decodeM(c *[streamCount]cursor) (PartialRecord, error) {
	rname, err := c[streamRname].colonField()
	if err != nil {
		return PartialRecord{}, err
	}
	posStr, err := c[streamPos].colonField()
	if err != nil {
		return PartialRecord{}, err
	}
	cigar, err := c[streamStogy].colonField()
	if err != nil {
		return PartialRecord{}, err
	}
	seqLen, err := c[streamSeqlen].u16()
	if err != nil {
		return PartialRecord{}, err
	}
	seqBytes, err := c[streamSeq].take(int(seqLen))
	if err != nil {
		return PartialRecord{}, err
	}

	pos, err := parsePosDecimal(posStr)
	if err != nil {
		return PartialRecord{}, err
	}

	return PartialRecord{
		Rname: orAbsent(rname),
		Pos:   pos,
		Cigar: orAbsent(cigar),
		Seq:   orAbsent(string(seqBytes)),
	}, nil
}

func (d *Decoder) decodeI(c *[streamCount]cursor) (PartialRecord, error) {
	rname, err := c[streamRname].colonField()
	if err != nil {
		return PartialRecord{}, err
	}
	posStr, err := c[streamPos].colonField()
	if err != nil {
		return PartialRecord{}, err
	}
	stogy, err := c[streamStogy].colonField()
	if err != nil {
		return PartialRecord{}, err
	}

	pos, err := parsePosDecimal(posStr)
	if err != nil {
		return PartialRecord{}, err
	}

	exsLen, insLen, err := stogyLengths([]byte(stogy))
	if err != nil {
		return PartialRecord{}, err
	}
	exs, err := c[streamExs].take(exsLen)
	if err != nil {
		return PartialRecord{}, err
	}
	inserts, err := c[streamInserts].take(insLen)
	if err != nil {
		return PartialRecord{}, err
	}

	seq, err := contract([]byte(stogy), exs, inserts)
	if err != nil {
		return PartialRecord{}, err
	}

	d.window.Reset()
	d.window.Push(pos, exs)
	d.hasPrev, d.rnamePrev, d.posPrev = true, rname, pos

	return PartialRecord{Rname: orAbsent(rname), Pos: pos, Cigar: orAbsent(stogy), Seq: orAbsent(string(seq))}, nil
}

func (d *Decoder) decodeP(c *[streamCount]cursor) (PartialRecord, error) {
	posOff, err := c[streamPosoff].u16()
	if err != nil {
		return PartialRecord{}, err
	}
	pos := d.posPrev + uint32(posOff)

	stogy, err := c[streamStogy].colonField()
	if err != nil {
		return PartialRecord{}, err
	}

	exsLen, insLen, err := stogyLengths([]byte(stogy))
	if err != nil {
		return PartialRecord{}, err
	}
	inserts, err := c[streamInserts].take(insLen)
	if err != nil {
		return PartialRecord{}, err
	}

	modCnt, err := c[streamModcnt].u16()
	if err != nil {
		return PartialRecord{}, err
	}
	mods := make([]modEntry, modCnt)
	for i := range mods {
		gap, err := c[streamModpos].u16()
		if err != nil {
			return PartialRecord{}, err
		}
		mods[i].gap = gap
	}
	for i := range mods {
		base, err := c[streamModbases].byte()
		if err != nil {
			return PartialRecord{}, err
		}
		mods[i].base = base
	}

	offset := int(pos - d.window.RefPosMin())
	trailLen := 0
	if end := int(pos) + exsLen - 1; end > int(d.window.RefPosMax()) {
		trailLen = end - int(d.window.RefPosMax())
	}
	trail, err := c[streamTrail].take(trailLen)
	if err != nil {
		return PartialRecord{}, err
	}

	exs := alike(d.window.Ref(), offset, exsLen, mods, trail)

	seq, err := contract([]byte(stogy), exs, inserts)
	if err != nil {
		return PartialRecord{}, err
	}

	d.window.Push(pos, exs)
	d.posPrev = pos

	return PartialRecord{Rname: orAbsent(d.rnamePrev), Pos: pos, Cigar: orAbsent(stogy), Seq: orAbsent(string(seq))}, nil
}

func orAbsent(s string) string {
	if s == "" {
		return sam.Absent
	}

	return s
}

func parsePosDecimal(s string) (uint32, error) {
	if s == "" {
		return 0, nil
	}

	var v uint64
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return 0, errs.Plain(errs.Format, fmt.Errorf("nuc: bad pos digit %q", c))
		}
		v = v*10 + uint64(c-'0')
	}

	return uint32(v), nil
}
