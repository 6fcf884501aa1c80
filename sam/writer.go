package sam

import (
	"fmt"
	"io"
	"strconv"
)

// WriteRecord formats rec as a tab-separated SAM line terminated with '\n'.
func WriteRecord(w io.Writer, rec Record) error {
	_, err := fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%d\t%s\t%s\t%d\t%d\t%s\t%s",
		rec.Qname, rec.Flag, rec.Rname, rec.Pos, rec.Mapq, rec.Cigar,
		rec.Rnext, rec.Pnext, rec.Tlen, rec.Seq, rec.Qual)
	if err != nil {
		return err
	}
	if rec.Opt != "" {
		if _, err := io.WriteString(w, "\t"+rec.Opt); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "\n")

	return err
}

// FormatUint is a small convenience used by field codecs that render
// integers in decimal ASCII, matching §4.5's schema exactly.
func FormatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// FormatInt mirrors FormatUint for signed fields (tlen).
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
