package fieldcodec

import (
	"bufio"
	"bytes"
)

var (
	newline = []byte{'\n'}
	tab     = []byte{'\t'}
)

// splitLines splits payload on '\n' into want lines. want is the expected
// record count, used only to preallocate the returned slice.
func splitLines(payload []byte, want int) []string {
	out := make([]string, 0, want)
	sc := bufio.NewScanner(bytes.NewReader(payload))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		out = append(out, sc.Text())
	}

	return out
}
