// Package tsc provides a high-performance, lossless compressor and
// decompressor for tab-separated SAM genomic alignment records.
//
// Tsc exploits the fact that mapped reads from the same sample overlap
// heavily: its core NUC codec maintains a sliding majority-vote consensus
// reference over the last few reads and encodes each new read as a small
// delta against it rather than storing full sequences repeatedly. The
// surrounding five-stream block format (ID, AUX, NUC, PAIR, QUAL) lets each
// field be entropy-coded with the coder that suits its statistics.
//
// # Basic usage
//
//	f, _ := os.Open("reads.sam")
//	out, _ := os.Create("reads.sam.tsc")
//	stats, err := tsc.Compress(f, out)
//
//	in, _ := os.Open("reads.sam.tsc")
//	w, _ := os.Create("reads.sam")
//	err = tsc.Decompress(in, w)
//
// # Package structure
//
// This package provides convenient top-level wrappers around package
// container (file framing), package nuc (the core codec), package
// fieldcodec (the four straight-line field codecs), and package sam (the
// record tokenizer). For advanced or streaming use, use those packages
// directly.
package tsc

import (
	"fmt"
	"io"

	"github.com/voges-tsc/tsc/container"
	"github.com/voges-tsc/tsc/internal/logx"
	"github.com/voges-tsc/tsc/internal/options"
	"github.com/voges-tsc/tsc/sam"
	"github.com/voges-tsc/tsc/stats"
)

// config holds the resolved settings for one Compress or Decompress call.
type config struct {
	blockSize   int
	logger      *logx.Logger
	statsReport *stats.Report
}

func defaultConfig() *config {
	return &config{
		blockSize: container.DefaultBlockSize,
		logger:    logx.Nop(),
	}
}

// Option configures a Compress or Decompress call.
type Option = options.Option[*config]

// WithBlockSize sets the number of records per block. The reference
// default is 10,000 (spec §5); a non-positive value is ignored.
func WithBlockSize(n int) Option {
	return options.NoError[*config](func(c *config) {
		if n > 0 {
			c.blockSize = n
		}
	})
}

// WithLogger attaches a logger; by default Compress/Decompress run silently.
func WithLogger(l *logx.Logger) Option {
	return options.NoError[*config](func(c *config) {
		if l != nil {
			c.logger = l
		}
	})
}

// WithStatsReport attaches a report that Compress populates with one entry
// per sub-block, benchmarked against every comparative codec (`-s`).
func WithStatsReport(r *stats.Report) Option {
	return options.NoError[*config](func(c *config) {
		c.statsReport = r
	})
}

// Stats summarizes one Compress call for the CLI's summary line. InputBytes is
// left at 0 here; callers that know the input's size (e.g. the CLI, from
// os.Stat) fill it in themselves before computing CompressionRatio.
type Stats struct {
	RecordCount uint64
	BlockCount  uint64
	InputBytes  int64
	OutputBytes int64
}

// CompressionRatio is InputBytes / OutputBytes, or 0 if OutputBytes is 0.
func (s Stats) CompressionRatio() float64 {
	if s.OutputBytes == 0 {
		return 0
	}

	return float64(s.InputBytes) / float64(s.OutputBytes)
}

// countingWriter tracks bytes written so Compress can report OutputBytes
// without a second pass over the output.
type countingWriter struct {
	w io.WriteSeeker
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}

func (c *countingWriter) Seek(offset int64, whence int) (int64, error) {
	return c.w.Seek(offset, whence)
}

// Compress reads SAM text from r and writes a tsc file to w, which must
// support seeking so block headers' fpos_nxt fields can be back-patched.
func Compress(r io.Reader, w io.WriteSeeker, opts ...Option) (Stats, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return Stats{}, err
	}

	cw := &countingWriter{w: w}

	tok := sam.NewTokenizer(r)

	var recCount int64
	firstRec, firstErr := tok.Next()
	if firstErr != nil && firstErr != io.EOF {
		return Stats{}, firstErr
	}

	enc, err := container.NewEncoder(cw, cfg.blockSize)
	if err != nil {
		return Stats{}, err
	}
	if err := enc.SetHeader(tok.Header()); err != nil {
		return Stats{}, err
	}
	if cfg.statsReport != nil {
		var hookErr error
		enc.SetStatsHook(func(kind string, payload []byte) {
			if hookErr != nil {
				return
			}
			hookErr = cfg.statsReport.Observe(stats.SubBlockKind(kind), payload)
		})
		defer func() {
			if hookErr != nil {
				cfg.logger.Error("stats observation failed", hookErr)
			}
		}()
	}

	if firstErr == nil {
		if err := enc.Add(firstRec); err != nil {
			return Stats{}, err
		}
		recCount++
	}

	for {
		rec, err := tok.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Stats{}, err
		}
		if err := enc.Add(rec); err != nil {
			return Stats{}, err
		}
		recCount++
	}

	cfg.logger.Infof("compressed %d records", recCount)

	if err := enc.Close(); err != nil {
		return Stats{}, err
	}

	return Stats{RecordCount: uint64(recCount), BlockCount: enc.BlockCount(), OutputBytes: cw.n}, nil
}

// Decompress reads a tsc file from r and writes the reconstructed SAM text
// to w.
func Decompress(r io.Reader, w io.Writer, opts ...Option) error {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	dec, samHeader, err := container.NewDecoder(r)
	if err != nil {
		return err
	}

	if _, err := w.Write(samHeader); err != nil {
		return fmt.Errorf("tsc: write sam header: %w", err)
	}

	var recCount uint64
	for !dec.Done() {
		_, recs, err := dec.NextBlock()
		if err != nil {
			return err
		}
		for _, rec := range recs {
			if err := sam.WriteRecord(w, rec); err != nil {
				return fmt.Errorf("tsc: write record: %w", err)
			}
		}
		recCount += uint64(len(recs))
	}

	cfg.logger.Infof("decompressed %d records", recCount)

	return nil
}
