package digest

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		name string
		data string
		want uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := String(tt.data); got != tt.want {
				t.Errorf("String(%q) = %#x, want %#x", tt.data, got, tt.want)
			}
		})
	}
}

func TestBytes_MatchesString(t *testing.T) {
	s := "a sample sub-block payload"
	if Bytes([]byte(s)) != String(s) {
		t.Errorf("Bytes and String digests diverge for equal content")
	}
}
