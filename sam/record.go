// Package sam tokenizes and reconstructs tab-separated SAM alignment
// records, grounded on original_source/samparser.c and samrecord.c.
package sam

// Record is the twelve-field SAM alignment tuple (spec §3). Strings use
// ASCII; Qname, Rname, Rnext, Cigar, Seq, Qual are never empty ("*" means
// absent). Opt may be empty.
type Record struct {
	Qname string
	Flag  uint16
	Rname string
	Pos   uint32
	Mapq  uint8
	Cigar string
	Rnext string
	Pnext uint32
	Tlen  int64
	Seq   string
	Qual  string
	Opt   string
}

// Absent reports the SAM placeholder for "no value".
const Absent = "*"

// IsUnmapped reports whether the record carries none of the alignment
// information the NUC codec needs (spec §4.6.4 rule 1).
func (r Record) IsUnmapped() bool {
	return r.Rname == Absent || r.Rname == "" ||
		r.Cigar == Absent || r.Cigar == "" ||
		r.Seq == Absent || r.Seq == "" ||
		r.Pos == 0
}
