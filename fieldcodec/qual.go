package fieldcodec

import (
	"github.com/voges-tsc/tsc/internal/pool"
	"github.com/voges-tsc/tsc/wire"
)

var qualMagic = [8]byte{'q', 'u', 'a', 'l', '-', '-', '-', 0}

// QualEncoder accumulates `qual \n` lines for one block.
type QualEncoder struct {
	buf   *pool.ByteBuffer
	count uint64
}

func NewQualEncoder() *QualEncoder {
	return &QualEncoder{buf: pool.GetStreamBuffer()}
}

func (e *QualEncoder) Add(qual string) {
	e.buf.MustWrite([]byte(qual))
	e.buf.MustWrite(newline)
	e.count++
}

// Bytes returns the current block's accumulated, not-yet-compressed
// payload. Used only by package stats for the `-s` comparison report.
func (e *QualEncoder) Bytes() []byte { return e.buf.Bytes() }

func (e *QualEncoder) Flush(w *wire.Writer) error {
	if err := wire.WriteSubBlockHeader(w, qualMagic, e.count); err != nil {
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

// QualDecoder reads a qual sub-block back into an ordered list of quality
// strings.
type QualDecoder struct{}

func NewQualDecoder() *QualDecoder { return &QualDecoder{} }

func (d *QualDecoder) Read(r *wire.Reader) ([]string, error) {
	recCount, err := wire.ReadSubBlockHeader(r, qualMagic)
	if err != nil {
		return nil, err
	}
	payload, err := wire.ReadRangeFramed(r)
	if err != nil {
		return nil, err
	}

	return splitLines(payload, int(recCount)), nil
}
