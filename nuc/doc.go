// Package nuc implements the nucleotide codec: the sliding consensus
// reference, the three-way M/I/P record classifier, and the thirteen
// parallel streams that carry the classified records to disk. Grounded on
// original_source/src/codecs/nuccodec_o1.c, the "o1" variant the
// specification fixes as canonical (see its design notes on abandoned o0/stub
// variants).
//
// Encoding order is fixed: a record is first classified (package classify
// logic in encoder.go), which decides which of the thirteen streams it
// contributes to; decoding walks the ctrl stream byte by byte and replays the
// same state machine in reverse (decoder.go). Both share the sliding window
// (window.go) and the CIGAR expand/contract and EXS diff/alike helpers
// (cigar.go, diff.go).
package nuc
