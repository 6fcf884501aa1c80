// Package wire implements the byte-level I/O primitives and the two framed
// sub-block layouts (zlib-framed, range-framed) that every sub-block codec
// and the container's file framing build on.
//
// All multi-byte integers are big-endian, per spec. The endian.EndianEngine
// abstraction is kept purely for idiomatic symmetry with the rest of this
// lineage's codebase; wire always selects endian.GetBigEndianEngine(),
// since the wire format has no configurable byte order.
package wire

import (
	"fmt"
	"io"

	"github.com/voges-tsc/tsc/endian"
	"github.com/voges-tsc/tsc/errs"
)

var engine = endian.GetBigEndianEngine()

// Writer writes fixed-width big-endian values and raw byte spans directly
// to an underlying io.Writer.
type Writer struct {
	w   io.Writer
	buf [8]byte
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (wr *Writer) WriteU8(v uint8) error {
	_, err := wr.w.Write([]byte{v})

	return wrapShortWrite(err)
}

func (wr *Writer) WriteU16BE(v uint16) error {
	engine.PutUint16(wr.buf[:2], v)
	_, err := wr.w.Write(wr.buf[:2])

	return wrapShortWrite(err)
}

func (wr *Writer) WriteU32BE(v uint32) error {
	engine.PutUint32(wr.buf[:4], v)
	_, err := wr.w.Write(wr.buf[:4])

	return wrapShortWrite(err)
}

func (wr *Writer) WriteU64BE(v uint64) error {
	engine.PutUint64(wr.buf[:8], v)
	_, err := wr.w.Write(wr.buf[:8])

	return wrapShortWrite(err)
}

// WriteBytes writes data verbatim, with no length prefix.
func (wr *Writer) WriteBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	_, err := wr.w.Write(data)

	return wrapShortWrite(err)
}

// Reader reads fixed-width big-endian values and byte spans from an
// underlying io.Reader, failing fatally on any short read.
type Reader struct {
	r   io.Reader
	buf [8]byte
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (rd *Reader) ReadU8() (uint8, error) {
	if _, err := io.ReadFull(rd.r, rd.buf[:1]); err != nil {
		return 0, wrapShortRead(err)
	}

	return rd.buf[0], nil
}

func (rd *Reader) ReadU16BE() (uint16, error) {
	if _, err := io.ReadFull(rd.r, rd.buf[:2]); err != nil {
		return 0, wrapShortRead(err)
	}

	return engine.Uint16(rd.buf[:2]), nil
}

func (rd *Reader) ReadU32BE() (uint32, error) {
	if _, err := io.ReadFull(rd.r, rd.buf[:4]); err != nil {
		return 0, wrapShortRead(err)
	}

	return engine.Uint32(rd.buf[:4]), nil
}

func (rd *Reader) ReadU64BE() (uint64, error) {
	if _, err := io.ReadFull(rd.r, rd.buf[:8]); err != nil {
		return 0, wrapShortRead(err)
	}

	return engine.Uint64(rd.buf[:8]), nil
}

// ReadBytes reads exactly n bytes.
func (rd *Reader) ReadBytes(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(rd.r, out); err != nil {
		return nil, wrapShortRead(err)
	}

	return out, nil
}

func wrapShortWrite(err error) error {
	if err == nil {
		return nil
	}

	return errs.Plain(errs.IO, fmt.Errorf("%w: %v", errs.ErrShortWrite, err))
}

func wrapShortRead(err error) error {
	if err == nil {
		return nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errs.Plain(errs.IO, errs.ErrShortRead)
	}

	return errs.Plain(errs.IO, fmt.Errorf("%w: %v", errs.ErrShortRead, err))
}
