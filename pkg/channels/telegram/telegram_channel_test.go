package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{
			name:  "short text stays whole",
			text:  "hello",
			limit: 10,
			want:  []string{"hello"},
		},
		{
			name:  "zero limit disables splitting",
			text:  strings.Repeat("x", 50),
			limit: 0,
			want:  []string{strings.Repeat("x", 50)},
		},
		{
			name:  "exact limit stays whole",
			text:  "1234567890",
			limit: 10,
			want:  []string{"1234567890"},
		},
		{
			name:  "prefers newline boundary",
			text:  "first paragraph\nsecond paragraph",
			limit: 20,
			want:  []string{"first paragraph\n", "second paragraph"},
		},
		{
			name:  "hard cut without newline",
			text:  strings.Repeat("a", 25),
			limit: 10,
			want:  []string{strings.Repeat("a", 10), strings.Repeat("a", 10), strings.Repeat("a", 5)},
		},
		{
			name:  "multi-byte runes cut on rune boundaries",
			text:  strings.Repeat("世界和平", 5),
			limit: 8,
			want: []string{
				strings.Repeat("世界和平", 2),
				strings.Repeat("世界和平", 2),
				"世界和平",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitMessage(tt.text, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("splitMessage() = %q, want %q", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitMessage_ChunksRespectLimit(t *testing.T) {
	text := strings.Repeat("line with some words\n", 40)
	limit := 100

	chunks := splitMessage(text, limit)
	var rebuilt strings.Builder
	for i, chunk := range chunks {
		if n := utf8.RuneCountInString(chunk); n > limit {
			t.Errorf("chunk %d is %d runes, limit %d", i, n, limit)
		}
		rebuilt.WriteString(chunk)
	}
	if rebuilt.String() != text {
		t.Error("concatenated chunks must reproduce the original text")
	}
}

func TestSplitMessage_MultiByteChunksStayValidUTF8(t *testing.T) {
	// Limits that never align with the 4-rune repeat unit, so every cut
	// lands inside a CJK run.
	text := strings.Repeat("世界和平", 10)
	for _, limit := range []int{3, 7, 16} {
		chunks := splitMessage(text, limit)
		var rebuilt strings.Builder
		for i, chunk := range chunks {
			if !utf8.ValidString(chunk) {
				t.Errorf("limit %d: chunk %d is not valid UTF-8: %q", limit, i, chunk)
			}
			if n := utf8.RuneCountInString(chunk); n > limit {
				t.Errorf("limit %d: chunk %d is %d runes", limit, i, n)
			}
			rebuilt.WriteString(chunk)
		}
		if rebuilt.String() != text {
			t.Errorf("limit %d: concatenated chunks must reproduce the original text", limit)
		}
	}
}
