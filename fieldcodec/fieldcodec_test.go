package fieldcodec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/voges-tsc/tsc/wire"
)

func TestIDCodec_RoundTrip(t *testing.T) {
	enc := NewIDEncoder()
	names := []string{"r1", "r2", "r3:with:colons"}
	for _, n := range names {
		enc.Add(n)
	}

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	require.NoError(t, enc.Flush(w))

	dec := NewIDDecoder()
	r := wire.NewReader(&buf)
	got, err := dec.Read(r)
	require.NoError(t, err)
	require.Equal(t, names, got)
}

func TestAuxCodec_RoundTrip(t *testing.T) {
	enc := NewAuxEncoder()
	fields := []AuxField{
		{Flag: 4, Mapq: 0, Opt: ""},
		{Flag: 0, Mapq: 60, Opt: "NM:i:0\tMD:Z:5"},
	}
	for _, f := range fields {
		enc.Add(f)
	}

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	require.NoError(t, enc.Flush(w))

	dec := NewAuxDecoder()
	r := wire.NewReader(&buf)
	got, err := dec.Read(r)
	require.NoError(t, err)
	require.Equal(t, fields, got)
}

func TestPairCodec_RoundTrip(t *testing.T) {
	enc := NewPairEncoder()
	fields := []PairField{
		{Rnext: "*", Pnext: 0, Tlen: 0},
		{Rnext: "chr1", Pnext: 200, Tlen: -150},
	}
	for _, f := range fields {
		enc.Add(f)
	}

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	require.NoError(t, enc.Flush(w))

	dec := NewPairDecoder()
	r := wire.NewReader(&buf)
	got, err := dec.Read(r)
	require.NoError(t, err)
	require.Equal(t, fields, got)
}

func TestQualCodec_RoundTrip(t *testing.T) {
	enc := NewQualEncoder()
	quals := []string{"IIIII", "!!!!!", "A-B-C"}
	for _, q := range quals {
		enc.Add(q)
	}

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	require.NoError(t, enc.Flush(w))

	dec := NewQualDecoder()
	r := wire.NewReader(&buf)
	got, err := dec.Read(r)
	require.NoError(t, err)
	require.Equal(t, quals, got)
}

func TestEncoders_ResetAfterFlush(t *testing.T) {
	enc := NewIDEncoder()
	enc.Add("r1")

	var buf1 bytes.Buffer
	require.NoError(t, enc.Flush(wire.NewWriter(&buf1)))

	enc.Add("r2")
	var buf2 bytes.Buffer
	require.NoError(t, enc.Flush(wire.NewWriter(&buf2)))

	dec := NewIDDecoder()
	got, err := dec.Read(wire.NewReader(&buf2))
	require.NoError(t, err)
	require.Equal(t, []string{"r2"}, got)
}
