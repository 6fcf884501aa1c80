package nuc

import (
	"encoding/binary"
	"fmt"

	"github.com/voges-tsc/tsc/errs"
	"github.com/voges-tsc/tsc/internal/pool"
	"github.com/voges-tsc/tsc/sam"
	"github.com/voges-tsc/tsc/wire"
)

// Encoder classifies incoming records into M/I/P and accumulates their
// contribution to the thirteen streams for one block.
type Encoder struct {
	window *Window

	hasPrev   bool
	rnamePrev string
	posPrev   uint32

	recCount uint64
	streams  [streamCount]*pool.ByteBuffer
}

// NewEncoder returns an Encoder with a fresh sliding window and empty
// streams, ready for the first block.
func NewEncoder() *Encoder {
	e := &Encoder{window: NewWindow()}
	for i := range e.streams {
		e.streams[i] = pool.GetStreamBuffer()
	}

	return e
}

// Add classifies rec and appends its contribution to the thirteen streams.
// recordIndex is used only for error context.
func (e *Encoder) Add(rec sam.Record, recordIndex int64) error {
	e.recCount++

	if rec.IsUnmapped() {
		e.appendM(rec)

		return nil
	}

	stogy, exs, inserts, err := expand([]byte(rec.Cigar), []byte(rec.Seq))
	if err != nil {
		return errs.AtRecord(errs.Input, recordIndex, err)
	}

	if !e.hasPrev {
		e.appendI(rec, stogy, exs, inserts)
		e.window.Reset()
		e.window.Push(rec.Pos, exs)
		e.hasPrev, e.rnamePrev, e.posPrev = true, rec.Rname, rec.Pos

		return nil
	}

	posOffSigned := int64(rec.Pos) - int64(e.posPrev)
	if posOffSigned < 0 {
		return errs.AtRecord(errs.Input, recordIndex, errs.ErrUnsortedRecords)
	}

	if rec.Rname != e.rnamePrev || rec.Pos > e.window.RefPosMax() || posOffSigned > 65535 {
		e.appendI(rec, stogy, exs, inserts)
		e.window.Reset()
		e.window.Push(rec.Pos, exs)
		e.rnamePrev, e.posPrev = rec.Rname, rec.Pos

		return nil
	}

	offset := int(rec.Pos - e.window.RefPosMin())
	mods, trail := diff(exs, e.window.Ref(), offset)

	if len(mods) > len(exs)/2 || len(mods) > 65535 {
		e.appendM(rec)

		return nil
	}

	e.appendP(uint16(posOffSigned), stogy, inserts, mods, trail)
	e.window.Push(rec.Pos, exs)
	e.posPrev = rec.Pos

	return nil
}

func (e *Encoder) appendM(rec sam.Record) {
	e.streams[streamCtrl].MustWrite([]byte{classM})
	e.writeColonField(streamRname, rec.Rname)
	e.writeColonField(streamPos, sam.FormatUint(uint64(rec.Pos)))
	e.writeColonField(streamStogy, rec.Cigar)

	var seqLen [2]byte
	binary.BigEndian.PutUint16(seqLen[:], uint16(len(rec.Seq)))
	e.streams[streamSeqlen].MustWrite(seqLen[:])
	e.streams[streamSeq].MustWrite([]byte(rec.Seq))
}

func (e *Encoder) appendI(rec sam.Record, stogy, exs, inserts []byte) {
	e.streams[streamCtrl].MustWrite([]byte{classI})
	e.writeColonField(streamRname, rec.Rname)
	e.writeColonField(streamPos, sam.FormatUint(uint64(rec.Pos)))
	e.writeColonField(streamStogy, string(stogy))
	e.streams[streamExs].MustWrite(exs)
	e.streams[streamInserts].MustWrite(inserts)
}

func (e *Encoder) appendP(posOff uint16, stogy, inserts []byte, mods []modEntry, trail []byte) {
	e.streams[streamCtrl].MustWrite([]byte{classP})
	e.writeColonField(streamStogy, string(stogy))
	e.streams[streamInserts].MustWrite(inserts)

	var u16 [2]byte
	binary.BigEndian.PutUint16(u16[:], posOff)
	e.streams[streamPosoff].MustWrite(u16[:])

	binary.BigEndian.PutUint16(u16[:], uint16(len(mods)))
	e.streams[streamModcnt].MustWrite(u16[:])

	for _, m := range mods {
		binary.BigEndian.PutUint16(u16[:], m.gap)
		e.streams[streamModpos].MustWrite(u16[:])
	}
	for _, m := range mods {
		e.streams[streamModbases].MustWrite([]byte{m.base})
	}

	e.streams[streamTrail].MustWrite(trail)
}

func (e *Encoder) writeColonField(idx int, s string) {
	e.streams[idx].MustWrite([]byte(s))
	e.streams[idx].MustWrite([]byte{':'})
}

// RawPayload concatenates the current block's thirteen stream buffers into
// one slice. Used only by package stats for the `-s` comparison report,
// which treats the NUC sub-block as a single payload rather than breaking
// it down stream by stream.
func (e *Encoder) RawPayload() []byte {
	var total int
	for i := range e.streams {
		total += e.streams[i].Len()
	}
	out := make([]byte, 0, total)
	for i := range e.streams {
		out = append(out, e.streams[i].Bytes()...)
	}

	return out
}

// Flush writes the NUC sub-block header followed by the thirteen framed
// streams, then releases the stream buffers back to the pool, resets the
// sliding window and previous-record state, and prepares for the next
// block.
func (e *Encoder) Flush(w *wire.Writer) error {
	if err := wire.WriteSubBlockHeader(w, blockMagic, e.recCount); err != nil {
		return err
	}

	for i := range e.streams {
		if err := writeStream(w, i, e.streams[i].Bytes()); err != nil {
			return fmt.Errorf("nuc: flush stream %s: %w", streamOrder[i].name, err)
		}
	}

	for i := range e.streams {
		pool.PutStreamBuffer(e.streams[i])
		e.streams[i] = pool.GetStreamBuffer()
	}
	e.recCount = 0
	e.window.Reset()
	e.hasPrev = false
	e.rnamePrev = ""
	e.posPrev = 0

	return nil
}
