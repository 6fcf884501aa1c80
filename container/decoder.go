package container

import (
	"io"

	"github.com/voges-tsc/tsc/fieldcodec"
	"github.com/voges-tsc/tsc/nuc"
	"github.com/voges-tsc/tsc/sam"
	"github.com/voges-tsc/tsc/wire"
)

// Decoder reads a complete tsc file back into its SAM header and a
// sequence of records, one block at a time.
type Decoder struct {
	r  *wire.Reader
	hd FileHeader

	aux  *fieldcodec.AuxDecoder
	id   *fieldcodec.IDDecoder
	pair *fieldcodec.PairDecoder
	qual *fieldcodec.QualDecoder
	nuc  *nuc.Decoder

	blocksRead uint64
}

// NewDecoder reads the FileHeader and SAM header, returning the decoder and
// the verbatim SAM header bytes.
func NewDecoder(r io.Reader) (*Decoder, []byte, error) {
	wr := wire.NewReader(r)

	hd, err := ReadFileHeader(wr)
	if err != nil {
		return nil, nil, err
	}

	samHeader, err := ReadSamHeader(wr)
	if err != nil {
		return nil, nil, err
	}

	d := &Decoder{
		r:    wr,
		hd:   hd,
		aux:  fieldcodec.NewAuxDecoder(),
		id:   fieldcodec.NewIDDecoder(),
		pair: fieldcodec.NewPairDecoder(),
		qual: fieldcodec.NewQualDecoder(),
		nuc:  nuc.NewDecoder(),
	}

	return d, samHeader, nil
}

// Header returns the FileHeader read at construction.
func (d *Decoder) Header() FileHeader { return d.hd }

// Done reports whether every block named in the FileHeader has been read.
func (d *Decoder) Done() bool { return d.blocksRead >= d.hd.BlkN }

// NextBlock reads one block's five sub-blocks and returns its records in
// original order, along with the block's header.
func (d *Decoder) NextBlock() (BlockHeader, []sam.Record, error) {
	blkHeader, err := ReadBlockHeader(d.r)
	if err != nil {
		return BlockHeader{}, nil, err
	}

	auxFields, err := d.aux.Read(d.r)
	if err != nil {
		return BlockHeader{}, nil, err
	}
	qnames, err := d.id.Read(d.r)
	if err != nil {
		return BlockHeader{}, nil, err
	}
	nucRecs, err := d.nuc.Read(d.r)
	if err != nil {
		return BlockHeader{}, nil, err
	}
	pairFields, err := d.pair.Read(d.r)
	if err != nil {
		return BlockHeader{}, nil, err
	}
	quals, err := d.qual.Read(d.r)
	if err != nil {
		return BlockHeader{}, nil, err
	}

	recs := make([]sam.Record, blkHeader.RecCnt)
	for i := range recs {
		recs[i] = sam.Record{
			Qname: qnames[i],
			Flag:  auxFields[i].Flag,
			Rname: nucRecs[i].Rname,
			Pos:   nucRecs[i].Pos,
			Mapq:  auxFields[i].Mapq,
			Cigar: nucRecs[i].Cigar,
			Rnext: pairFields[i].Rnext,
			Pnext: pairFields[i].Pnext,
			Tlen:  pairFields[i].Tlen,
			Seq:   nucRecs[i].Seq,
			Qual:  quals[i],
			Opt:   auxFields[i].Opt,
		}
	}

	d.blocksRead++

	return blkHeader, recs, nil
}
