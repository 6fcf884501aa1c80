package nuc

import (
	"fmt"
	"strconv"

	"github.com/voges-tsc/tsc/errs"
)

type cigarOp struct {
	length int
	op     byte
}

// parseOps tokenizes a CIGAR (or STOGY, which shares its grammar) string
// into (length, op) pairs. Any operator outside MIDNSHPX= is a fatal input
// error per spec §4.6.2.
func parseOps(s []byte) ([]cigarOp, error) {
	var ops []cigarOp

	length := 0
	for _, c := range s {
		if c >= '0' && c <= '9' {
			length = length*10 + int(c-'0')

			continue
		}
		if !isCigarOp(c) {
			return nil, errs.Plain(errs.Input, fmt.Errorf("%w: %q", errs.ErrUnknownCigarOp, c))
		}
		ops = append(ops, cigarOp{length: length, op: c})
		length = 0
	}

	return ops, nil
}

func isCigarOp(c byte) bool {
	switch c {
	case 'M', '=', 'X', 'I', 'S', 'D', 'N', 'H', 'P':
		return true
	default:
		return false
	}
}

// expand walks cigar against seq and produces the STOGY (the CIGAR content,
// reserialized into its own stream), EXS, and INSERTS strings per the table
// in spec §4.6.2.
func expand(cigar, seq []byte) (stogy, exs, inserts []byte, err error) {
	ops, err := parseOps(cigar)
	if err != nil {
		return nil, nil, nil, err
	}

	seqIdx := 0
	for _, o := range ops {
		stogy = append(stogy, []byte(strconv.Itoa(o.length))...)
		stogy = append(stogy, o.op)

		switch o.op {
		case 'M', '=', 'X':
			exs = append(exs, seq[seqIdx:seqIdx+o.length]...)
			seqIdx += o.length
		case 'I', 'S':
			inserts = append(inserts, seq[seqIdx:seqIdx+o.length]...)
			seqIdx += o.length
		case 'D', 'N':
			for i := 0; i < o.length; i++ {
				exs = append(exs, '?')
			}
		case 'H', 'P':
			// Neither EXS nor INSERTS nor SEQ gets anything.
		}
	}

	return stogy, exs, inserts, nil
}

// stogyLengths returns the EXS and INSERTS byte counts an already-expanded
// STOGY implies, so the decoder can slice the right number of bytes out of
// the raw exs/inserts streams without re-deriving them from seq.
func stogyLengths(stogy []byte) (exsLen, insertsLen int, err error) {
	ops, err := parseOps(stogy)
	if err != nil {
		return 0, 0, err
	}

	for _, o := range ops {
		switch o.op {
		case 'M', '=', 'X', 'D', 'N':
			exsLen += o.length
		case 'I', 'S':
			insertsLen += o.length
		}
	}

	return exsLen, insertsLen, nil
}

// contract is expand's inverse: given STOGY and the EXS/INSERTS bytes it
// consumed, reconstruct seq.
func contract(stogy, exs, inserts []byte) ([]byte, error) {
	ops, err := parseOps(stogy)
	if err != nil {
		return nil, err
	}

	var seq []byte
	exsIdx, insIdx := 0, 0
	for _, o := range ops {
		switch o.op {
		case 'M', '=', 'X':
			seq = append(seq, exs[exsIdx:exsIdx+o.length]...)
			exsIdx += o.length
		case 'I', 'S':
			seq = append(seq, inserts[insIdx:insIdx+o.length]...)
			insIdx += o.length
		case 'D', 'N':
			exsIdx += o.length
		case 'H', 'P':
			// Emits nothing, consumes nothing.
		}
	}

	return seq, nil
}
