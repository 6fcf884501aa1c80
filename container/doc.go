// Package container implements file framing: the FileHeader, the verbatim
// SAM header section, and the sequence of Blocks, each a BlockHeader
// followed by the five sub-blocks (AUX, ID, NUC, PAIR, QUAL) produced by
// packages fieldcodec and nuc. Grounded on
// original_source/src/fileenc.c and original_source/src/filecodec.c, which
// do the equivalent top-level orchestration.
package container
