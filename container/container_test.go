package container

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/voges-tsc/tsc/sam"
)

// seekableBuffer adapts bytes.Buffer to io.WriteSeeker for tests, since
// bytes.Buffer alone cannot seek.
type seekableBuffer struct {
	buf []byte
	pos int64
}

func (s *seekableBuffer) Write(p []byte) (int, error) {
	end := s.pos + int64(len(p))
	if end > int64(len(s.buf)) {
		grown := make([]byte, end)
		copy(grown, s.buf)
		s.buf = grown
	}
	copy(s.buf[s.pos:end], p)
	s.pos = end

	return len(p), nil
}

func (s *seekableBuffer) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case 0:
		s.pos = offset
	case 1:
		s.pos += offset
	case 2:
		s.pos = int64(len(s.buf)) + offset
	}

	return s.pos, nil
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	recs := []sam.Record{
		{Qname: "r1", Flag: 4, Rname: "*", Pos: 0, Mapq: 0, Cigar: "*", Rnext: "*", Pnext: 0, Tlen: 0, Seq: "*", Qual: "*"},
		{Qname: "r2", Flag: 0, Rname: "chr1", Pos: 100, Mapq: 60, Cigar: "5M", Rnext: "*", Pnext: 0, Tlen: 0, Seq: "ACGTA", Qual: "IIIII", Opt: "NM:i:0"},
		{Qname: "r3", Flag: 0, Rname: "chr1", Pos: 102, Mapq: 60, Cigar: "5M", Rnext: "=", Pnext: 100, Tlen: 7, Seq: "GTAAC", Qual: "JJJJJ"},
	}

	sb := &seekableBuffer{}
	enc, err := NewEncoder(sb, 10000)
	require.NoError(t, err)
	require.NoError(t, enc.SetHeader([]byte("@HD\tVN:1.6\n")))
	for _, r := range recs {
		require.NoError(t, enc.Add(r))
	}
	require.NoError(t, enc.Close())

	dec, samHeader, err := NewDecoder(bytes.NewReader(sb.buf))
	require.NoError(t, err)
	require.Equal(t, "@HD\tVN:1.6\n", string(samHeader))
	require.Equal(t, uint64(len(recs)), dec.Header().RecN)
	require.Equal(t, uint64(1), dec.Header().BlkN)

	_, got, err := dec.NextBlock()
	require.NoError(t, err)
	require.True(t, dec.Done())
	require.Equal(t, recs, got)
}

func TestEncodeDecode_MultipleBlocks(t *testing.T) {
	var recs []sam.Record
	for i := 0; i < 25; i++ {
		recs = append(recs, sam.Record{
			Qname: "r", Flag: 0, Rname: "chr1", Pos: uint32(100 + i), Mapq: 40,
			Cigar: "4M", Rnext: "*", Pnext: 0, Tlen: 0, Seq: "ACGT", Qual: "IIII",
		})
	}

	sb := &seekableBuffer{}
	enc, err := NewEncoder(sb, 10)
	require.NoError(t, err)
	require.NoError(t, enc.SetHeader(nil))
	for _, r := range recs {
		require.NoError(t, enc.Add(r))
	}
	require.NoError(t, enc.Close())

	dec, _, err := NewDecoder(bytes.NewReader(sb.buf))
	require.NoError(t, err)
	require.Equal(t, uint64(3), dec.Header().BlkN)

	var got []sam.Record
	for !dec.Done() {
		_, recs, err := dec.NextBlock()
		require.NoError(t, err)
		got = append(got, recs...)
	}
	require.Equal(t, recs, got)
}

func TestBlockHeader_FposNxtChain(t *testing.T) {
	var recs []sam.Record
	for i := 0; i < 5; i++ {
		recs = append(recs, sam.Record{Qname: "r", Rname: "chr1", Pos: uint32(100 + i), Cigar: "4M", Seq: "ACGT", Qual: "IIII", Rnext: "*"})
	}

	sb := &seekableBuffer{}
	enc, err := NewEncoder(sb, 2)
	require.NoError(t, err)
	require.NoError(t, enc.SetHeader(nil))
	for _, r := range recs {
		require.NoError(t, enc.Add(r))
	}
	require.NoError(t, enc.Close())

	dec, _, err := NewDecoder(bytes.NewReader(sb.buf))
	require.NoError(t, err)

	var lastFposNxt uint64
	for i := 0; !dec.Done(); i++ {
		h, _, err := dec.NextBlock()
		require.NoError(t, err)
		require.Equal(t, uint64(i), h.BlkCnt)
		if i > 0 {
			require.Equal(t, h.Fpos, lastFposNxt)
		}
		lastFposNxt = h.FposNxt
	}
	require.Equal(t, uint64(0), lastFposNxt, "last block's fpos_nxt is 0")
}
