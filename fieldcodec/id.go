package fieldcodec

import (
	"github.com/voges-tsc/tsc/internal/pool"
	"github.com/voges-tsc/tsc/wire"
)

var idMagic = [8]byte{'i', 'd', '-', '-', '-', '-', '-', 0}

// IDEncoder accumulates `qname \n` lines for one block.
type IDEncoder struct {
	buf   *pool.ByteBuffer
	count uint64
}

func NewIDEncoder() *IDEncoder {
	return &IDEncoder{buf: pool.GetStreamBuffer()}
}

// Add appends qname to the block buffer.
func (e *IDEncoder) Add(qname string) {
	e.buf.MustWrite([]byte(qname))
	e.buf.MustWrite(newline)
	e.count++
}

// Bytes returns the current block's accumulated, not-yet-compressed
// payload. Used only by package stats for the `-s` comparison report.
func (e *IDEncoder) Bytes() []byte { return e.buf.Bytes() }

// Flush range-frames the accumulated buffer and writes it with its sub-block
// header, then releases the buffer back to the pool and resets the encoder
// for the next block.
func (e *IDEncoder) Flush(w *wire.Writer) error {
	if err := wire.WriteSubBlockHeader(w, idMagic, e.count); err != nil {
		return err
	}
	if err := wire.WriteRangeFramed(w, e.buf.Bytes()); err != nil {
		return err
	}
	pool.PutStreamBuffer(e.buf)
	e.buf = pool.GetStreamBuffer()
	e.count = 0

	return nil
}

// IDDecoder reads an id sub-block back into an ordered list of qnames.
type IDDecoder struct{}

func NewIDDecoder() *IDDecoder { return &IDDecoder{} }

func (d *IDDecoder) Read(r *wire.Reader) ([]string, error) {
	recCount, err := wire.ReadSubBlockHeader(r, idMagic)
	if err != nil {
		return nil, err
	}
	payload, err := wire.ReadRangeFramed(r)
	if err != nil {
		return nil, err
	}

	return splitLines(payload, int(recCount)), nil
}
