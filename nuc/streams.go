package nuc

import (
	"github.com/voges-tsc/tsc/format"
	"github.com/voges-tsc/tsc/wire"
)

// blockMagic identifies the NUC sub-block on disk.
var blockMagic = [8]byte{'n', 'u', 'c', '-', '-', '-', '-', 0}

// Record class tags written to the ctrl stream.
const (
	classM = 'm'
	classI = 'i'
	classP = 'p'
)

// streamKind pairs a stream's name with the entropy coder it is framed
// with on disk. Order here is the on-disk order for both encode and decode.
type streamKind struct {
	name string
	algo format.StreamAlgorithm
}

var streamOrder = [13]streamKind{
	{"ctrl", format.AlgZlib},
	{"rname", format.AlgZlib},
	{"pos", format.AlgZlib},
	{"stogy", format.AlgZlib},
	{"seqlen", format.AlgRangeO1},
	{"seq", format.AlgZlib},
	{"exs", format.AlgZlib},
	{"inserts", format.AlgZlib},
	{"posoff", format.AlgRangeO1},
	{"modcnt", format.AlgRangeO1},
	{"modpos", format.AlgRangeO1},
	{"modbases", format.AlgZlib},
	{"trail", format.AlgZlib},
}

const (
	streamCtrl = iota
	streamRname
	streamPos
	streamStogy
	streamSeqlen
	streamSeq
	streamExs
	streamInserts
	streamPosoff
	streamModcnt
	streamModpos
	streamModbases
	streamTrail
	streamCount
)

// writeStream frames payload according to streamOrder[idx]'s fixed choice.
func writeStream(w *wire.Writer, idx int, payload []byte) error {
	if streamOrder[idx].algo == format.AlgRangeO1 {
		return wire.WriteRangeFramed(w, payload)
	}

	return wire.WriteZlibFramed(w, payload)
}

// readStream reads back the stream at idx using the same fixed choice.
func readStream(r *wire.Reader, idx int) ([]byte, error) {
	if streamOrder[idx].algo == format.AlgRangeO1 {
		return wire.ReadRangeFramed(r)
	}

	return wire.ReadZlibFramed(r)
}
