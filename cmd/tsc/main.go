// Command tsc compresses and decompresses SAM alignment files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/voges-tsc/tsc"
	"github.com/voges-tsc/tsc/container"
	"github.com/voges-tsc/tsc/internal/logx"
	"github.com/voges-tsc/tsc/stats"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("tsc", flag.ContinueOnError)
	blockSize := fs.Int("b", container.DefaultBlockSize, "records per block")
	decompress := fs.Bool("d", false, "decompress")
	info := fs.Bool("i", false, "print block headers and exit")
	force := fs.Bool("f", false, "overwrite output if it exists")
	outPath := fs.String("o", "", "output path (default derived from input extension)")
	showStats := fs.Bool("s", false, "print compression statistics")
	verbose := fs.Bool("v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tsc [-b N] [-d] [-i] [-f] [-o PATH] [-s] FILE")

		return 2
	}

	inPath := fs.Arg(0)
	log := logx.New(logx.Config{Verbose: *verbose})

	if *info {
		return runInfo(inPath, log)
	}

	dst := *outPath
	if dst == "" {
		dst = derivedOutputPath(inPath, *decompress)
	}

	if !*force {
		if _, err := os.Stat(dst); err == nil {
			fmt.Fprintf(os.Stderr, "tsc: %s already exists, use -f to overwrite\n", dst)

			return 1
		}
	}

	in, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tsc:", err)

		return 1
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tsc:", err)

		return 1
	}
	defer out.Close()

	if *decompress {
		if err := tsc.Decompress(in, out, tsc.WithLogger(log)); err != nil {
			fmt.Fprintln(os.Stderr, "tsc:", err)

			return 1
		}

		return 0
	}

	opts := []tsc.Option{tsc.WithBlockSize(*blockSize), tsc.WithLogger(log)}

	var report stats.Report
	if *showStats {
		opts = append(opts, tsc.WithStatsReport(&report))
	}

	result, err := tsc.Compress(in, out, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tsc:", err)

		return 1
	}

	if st, statErr := in.Stat(); statErr == nil {
		result.InputBytes = st.Size()
	}

	fmt.Printf("%s -> %s: %d records, %d blocks, %.2fx\n",
		inPath, dst, result.RecordCount, result.BlockCount, result.CompressionRatio())

	if *showStats {
		if err := report.WriteTable(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "tsc:", err)

			return 1
		}
	}

	return 0
}

func runInfo(inPath string, log *logx.Logger) int {
	f, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tsc:", err)

		return 1
	}
	defer f.Close()

	dec, samHeader, err := container.NewDecoder(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tsc:", err)

		return 1
	}

	hdr := dec.Header()
	fmt.Printf("rec_n=%d blk_n=%d sblk_n=%d sam_header_bytes=%d\n", hdr.RecN, hdr.BlkN, hdr.SblkN, len(samHeader))

	for !dec.Done() {
		bh, _, err := dec.NextBlock()
		if err != nil {
			fmt.Fprintln(os.Stderr, "tsc:", err)

			return 1
		}
		fmt.Printf("block %d: fpos=%d fpos_nxt=%d rec_cnt=%d pos_min=%d pos_max=%d\n",
			bh.BlkCnt, bh.Fpos, bh.FposNxt, bh.RecCnt, bh.PosMin, bh.PosMax)
	}

	log.Debug("info dump complete")

	return 0
}

// derivedOutputPath implements the `.sam -> .sam.tsc` / `.tsc -> .sam`
// convention when -o is not given.
func derivedOutputPath(inPath string, decompress bool) string {
	if decompress {
		return strings.TrimSuffix(inPath, filepath.Ext(inPath))
	}

	return inPath + ".tsc"
}
