package nuc

// modEntry is one EXS modification against REF: gap is the count of
// REF-matching positions since the previous modification (or the start of
// the overlap), and base is the replacement byte. This is the on-disk
// modpos/modbases pairing (spec §4.6.5), kept as a single symmetric
// representation here so diff and alike agree on it.
type modEntry struct {
	gap  uint16
	base byte
}

// diff walks exs against ref starting at ref[offset:], recording every
// mismatched position as a gap-delta modification. Positions in exs beyond
// the end of ref become the trail. offset is always >= 0: positions only
// ever increase, so a new read's pos is never less than the window's
// refPosMin (spec §4.6.4 rule 4's unsorted-records check guarantees this).
func diff(exs, ref []byte, offset int) (mods []modEntry, trail []byte) {
	overlap := len(ref) - offset
	if overlap < 0 {
		overlap = 0
	}
	if overlap > len(exs) {
		overlap = len(exs)
	}

	gap := 0
	for i := 0; i < overlap; i++ {
		if exs[i] == ref[offset+i] {
			gap++

			continue
		}
		mods = append(mods, modEntry{gap: uint16(gap), base: exs[i]})
		gap = 0
	}

	trail = exs[overlap:]

	return mods, trail
}

// alike is diff's inverse: copy the overlapping REF slice, apply the stored
// modifications in order, then append the trail.
func alike(ref []byte, offset, exsLen int, mods []modEntry, trail []byte) []byte {
	overlap := len(ref) - offset
	if overlap < 0 {
		overlap = 0
	}
	if overlap > exsLen {
		overlap = exsLen
	}

	exs := make([]byte, exsLen)
	copy(exs, ref[offset:offset+overlap])

	p := 0
	for _, m := range mods {
		p += int(m.gap)
		exs[p] = m.base
		p++
	}

	copy(exs[overlap:], trail)

	return exs
}
