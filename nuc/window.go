package nuc

// WindowSize is the sliding-window capacity (spec §4.6.1, W = 10).
const WindowSize = 10

// alphabet fixes the tie-break order used both when voting for a consensus
// column and when an uncovered column falls back to '?'.
var alphabet = [6]byte{'A', 'C', 'G', 'T', 'N', '?'}

func symbolRank(b byte) int {
	for i, a := range alphabet {
		if a == b {
			return i
		}
	}
	// Any byte outside the alphabet is treated as the wildcard so a
	// malformed seq character never panics the consensus vote.
	return 5
}

type windowEntry struct {
	pos uint32
	exs []byte
}

// Window holds the last WindowSize (pos, EXS) pairs pushed by I- and
// P-records and the majority-vote consensus REF derived from them.
type Window struct {
	entries   []windowEntry
	refPosMin uint32
	refPosMax uint32
	ref       []byte
}

// NewWindow returns an empty window.
func NewWindow() *Window {
	return &Window{entries: make([]windowEntry, 0, WindowSize)}
}

// Reset discards every entry, as done before starting a new I-record run.
func (w *Window) Reset() {
	w.entries = w.entries[:0]
	w.refPosMin = 0
	w.refPosMax = 0
	w.ref = w.ref[:0]
}

// Ref returns the current consensus reference, indexed from RefPosMin.
func (w *Window) Ref() []byte { return w.ref }

// RefPosMin is the smallest position covered by the window, valid once at
// least one entry has been pushed.
func (w *Window) RefPosMin() uint32 { return w.refPosMin }

// RefPosMax is the largest position covered by the window.
func (w *Window) RefPosMax() uint32 { return w.refPosMax }

// Empty reports whether the window has never been pushed to since the last
// Reset.
func (w *Window) Empty() bool { return len(w.entries) == 0 }

// Push evicts the oldest entry if the window is at capacity, appends
// (pos, exs), and recomputes the consensus reference.
func (w *Window) Push(pos uint32, exs []byte) {
	entry := windowEntry{pos: pos, exs: append([]byte(nil), exs...)}

	if len(w.entries) >= WindowSize {
		copy(w.entries, w.entries[1:])
		w.entries[len(w.entries)-1] = entry
	} else {
		w.entries = append(w.entries, entry)
	}

	w.recompute()
}

// recompute rebuilds refPosMin/refPosMax and the column-major majority-vote
// REF per spec §4.6.3.
func (w *Window) recompute() {
	if len(w.entries) == 0 {
		w.refPosMin, w.refPosMax = 0, 0
		w.ref = w.ref[:0]

		return
	}

	posMin := w.entries[0].pos
	posMax := w.entries[0].pos + uint32(len(w.entries[0].exs)) - 1
	for _, e := range w.entries[1:] {
		if e.pos < posMin {
			posMin = e.pos
		}
		if end := e.pos + uint32(len(e.exs)) - 1; end > posMax {
			posMax = end
		}
	}

	width := int(posMax-posMin) + 1
	freq := make([][6]uint32, width)
	for _, e := range w.entries {
		start := int(e.pos - posMin)
		for i, b := range e.exs {
			freq[start+i][symbolRank(b)]++
		}
	}

	ref := make([]byte, width)
	for c := 0; c < width; c++ {
		best, bestCount, total := 0, freq[c][0], freq[c][0]
		for s := 1; s < len(alphabet); s++ {
			total += freq[c][s]
			if freq[c][s] > bestCount {
				bestCount, best = freq[c][s], s
			}
		}
		if total == 0 {
			ref[c] = '?'
		} else {
			ref[c] = alphabet[best]
		}
	}

	w.refPosMin, w.refPosMax, w.ref = posMin, posMax, ref
}
