package sam

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/voges-tsc/tsc/errs"
)

// Tokenizer reads SAM text, capturing `@`-prefixed header lines verbatim and
// tab-splitting the remaining lines into Records. Grounded on
// original_source/samparser.c's line-by-line dispatch between header and
// alignment lines.
type Tokenizer struct {
	sc          *bufio.Scanner
	header      bytes.Buffer
	recordIndex int64
}

// NewTokenizer wraps r. The scanner's buffer is sized generously since SAM
// lines (particularly qual/seq) can run long.
func NewTokenizer(r io.Reader) *Tokenizer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	return &Tokenizer{sc: sc}
}

// Header returns the header bytes captured so far, each line terminated
// with '\n'. Complete only once Next has returned io.EOF.
func (t *Tokenizer) Header() []byte {
	return t.header.Bytes()
}

// Next returns the next alignment record, skipping and accumulating any
// header lines encountered along the way. Returns io.EOF once the input is
// exhausted.
func (t *Tokenizer) Next() (Record, error) {
	for t.sc.Scan() {
		line := strings.TrimRight(t.sc.Text(), "\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "@") {
			t.header.WriteString(line)
			t.header.WriteByte('\n')

			continue
		}

		rec, err := t.parseRecord(line)
		if err != nil {
			return Record{}, err
		}
		t.recordIndex++

		return rec, nil
	}
	if err := t.sc.Err(); err != nil {
		return Record{}, errs.Plain(errs.IO, err)
	}

	return Record{}, io.EOF
}

func (t *Tokenizer) parseRecord(line string) (Record, error) {
	idx := t.recordIndex
	parts := strings.SplitN(line, "\t", 12)
	if len(parts) < 11 {
		return Record{}, errs.AtRecord(errs.Input, idx, fmt.Errorf("%w: got %d fields, need at least 11", errs.ErrMissingField, len(parts)))
	}

	flag, err := parseUint(parts[1], 16, "flag", idx)
	if err != nil {
		return Record{}, err
	}
	pos, err := parseUint(parts[3], 32, "pos", idx)
	if err != nil {
		return Record{}, err
	}
	mapq, err := parseUint(parts[4], 8, "mapq", idx)
	if err != nil {
		return Record{}, err
	}
	pnext, err := parseUint(parts[7], 32, "pnext", idx)
	if err != nil {
		return Record{}, err
	}
	tlen, err := parseInt(parts[8], 64, "tlen", idx)
	if err != nil {
		return Record{}, err
	}

	opt := ""
	if len(parts) == 12 {
		opt = parts[11]
	}

	return Record{
		Qname: parts[0],
		Flag:  uint16(flag),
		Rname: parts[2],
		Pos:   uint32(pos),
		Mapq:  uint8(mapq),
		Cigar: parts[5],
		Rnext: parts[6],
		Pnext: uint32(pnext),
		Tlen:  tlen,
		Seq:   parts[9],
		Qual:  parts[10],
		Opt:   opt,
	}, nil
}

// parseUint parses field strictly, turning out-of-range values into a fatal
// overflow error rather than silently truncating (spec §9).
func parseUint(field string, bitSize int, name string, idx int64) (uint64, error) {
	v, err := strconv.ParseUint(field, 10, bitSize)
	if err != nil {
		return 0, wrapNumError(err, name, idx)
	}

	return v, nil
}

func parseInt(field string, bitSize int, name string, idx int64) (int64, error) {
	v, err := strconv.ParseInt(field, 10, bitSize)
	if err != nil {
		return 0, wrapNumError(err, name, idx)
	}

	return v, nil
}

func wrapNumError(err error, name string, idx int64) error {
	var numErr *strconv.NumError
	if as, ok := err.(*strconv.NumError); ok {
		numErr = as
	}
	if numErr != nil && numErr.Err == strconv.ErrRange {
		return errs.AtRecord(errs.Input, idx, fmt.Errorf("%w: field %q", errs.ErrIntegerOverflow, name))
	}

	return errs.AtRecord(errs.Input, idx, fmt.Errorf("%w: field %q", errs.ErrNonNumericField, name))
}
