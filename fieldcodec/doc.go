// Package fieldcodec implements the four straight-line per-block codecs
// (AUX, ID, PAIR, QUAL) that each concatenate one or more record fields
// into a single buffer with tab/newline separators and hand the result to
// package wire's framed-block writer. Grounded on
// original_source/source/tsc/idcodec.c's sub-block layout.
//
// All four share the same shape: an Encoder that accumulates lines as
// records arrive and flushes them as one framed sub-block, and a Decoder
// that reads a sub-block back into an ordered sequence of field values.
// AUX and PAIR are zlib-framed; ID and QUAL are range-framed, per the
// choice the block header's sub-block ID commits the decoder to.
package fieldcodec
