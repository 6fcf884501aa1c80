// Package stats builds the `-s` comparison report: while a file is being
// compressed, it receives each block's raw sub-block payloads (through the
// container encoder's stats hook) and benchmarks them against the
// four comparative codecs compress.AllBenchAlgorithms lists (none of which
// are used on the wire), alongside an xxHash64 fingerprint per sub-block so
// a user can sanity-check two outputs came from the same input without a
// byte-for-byte diff.
package stats

import (
	"fmt"
	"io"

	"github.com/voges-tsc/tsc/compress"
	"github.com/voges-tsc/tsc/format"
	"github.com/voges-tsc/tsc/internal/digest"
)

// SubBlockKind names one of the five sub-blocks a Report breaks its numbers
// down by.
type SubBlockKind string

const (
	KindAux  SubBlockKind = "aux"
	KindID   SubBlockKind = "id"
	KindNuc  SubBlockKind = "nuc"
	KindPair SubBlockKind = "pair"
	KindQual SubBlockKind = "qual"
)

// BlockEntry accumulates one sub-block payload's fingerprint and its
// compression result under every algorithm in compress.AllBenchAlgorithms.
type BlockEntry struct {
	Kind       SubBlockKind
	Fingerprint uint64
	Results    []compress.CompressionStats
}

// Report is the `-s` output: one entry per sub-block payload observed.
type Report struct {
	Entries []BlockEntry
}

// Observe benchmarks payload under every comparative codec and appends the
// result to r.Entries. It returns an error if a codec fails.
func (r *Report) Observe(kind SubBlockKind, payload []byte) error {
	entry := BlockEntry{
		Kind:        kind,
		Fingerprint: digest.Bytes(payload),
		Results:     make([]compress.CompressionStats, 0, len(compress.AllBenchAlgorithms())),
	}

	for _, alg := range compress.AllBenchAlgorithms() {
		codec, err := compress.CreateBenchCodec(alg)
		if err != nil {
			return fmt.Errorf("stats: %s codec: %w", alg, err)
		}

		compressed, err := codec.Compress(payload)
		if err != nil {
			return fmt.Errorf("stats: %s compress: %w", alg, err)
		}

		entry.Results = append(entry.Results, compress.CompressionStats{
			Algorithm:      alg,
			OriginalSize:   int64(len(payload)),
			CompressedSize: int64(len(compressed)),
		})
	}

	r.Entries = append(r.Entries, entry)

	return nil
}

// totalsByKind sums OriginalSize/CompressedSize per (kind, algorithm) pair
// across every observed block.
func (r *Report) totalsByKind() map[SubBlockKind]map[format.BenchAlgorithm]compress.CompressionStats {
	out := make(map[SubBlockKind]map[format.BenchAlgorithm]compress.CompressionStats)
	for _, e := range r.Entries {
		byAlg, ok := out[e.Kind]
		if !ok {
			byAlg = make(map[format.BenchAlgorithm]compress.CompressionStats)
			out[e.Kind] = byAlg
		}
		for _, res := range e.Results {
			cur := byAlg[res.Algorithm]
			cur.Algorithm = res.Algorithm
			cur.OriginalSize += res.OriginalSize
			cur.CompressedSize += res.CompressedSize
			byAlg[res.Algorithm] = cur
		}
	}

	return out
}

// WriteTable renders a human-readable table: one row per (sub-block kind,
// algorithm) pair, with the original and compressed sizes and the
// compression ratio.
func (r *Report) WriteTable(w io.Writer) error {
	totals := r.totalsByKind()

	kinds := []SubBlockKind{KindAux, KindID, KindNuc, KindPair, KindQual}
	algs := compress.AllBenchAlgorithms()

	if _, err := fmt.Fprintf(w, "%-6s %-8s %12s %12s %8s\n", "block", "codec", "original", "compressed", "ratio"); err != nil {
		return err
	}
	for _, k := range kinds {
		byAlg, ok := totals[k]
		if !ok {
			continue
		}
		for _, alg := range algs {
			cs, ok := byAlg[alg]
			if !ok {
				continue
			}
			if _, err := fmt.Fprintf(w, "%-6s %-8s %12d %12d %7.2fx\n",
				k, alg, cs.OriginalSize, cs.CompressedSize, cs.CompressionRatio()); err != nil {
				return err
			}
		}
	}

	return nil
}
