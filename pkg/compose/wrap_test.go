package compose

import (
	"strings"
	"testing"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{
			name:  "正常系: 幅内のテキストはそのまま",
			text:  "Hello world",
			width: 20,
			want:  "Hello world",
		},
		{
			name:  "正常系: 幅を超えたら語の境界で折り返す",
			text:  "The quick brown fox jumps over the lazy dog",
			width: 20,
			want:  "The quick brown fox\njumps over the lazy\ndog",
		},
		{
			name:  "正常系: 連続する空白は1つに畳む",
			text:  "Hello    brave   world",
			width: 20,
			want:  "Hello brave world",
		},
		{
			name:  "正常系: 幅を超える語はその場で分割する",
			text:  "supercalifragilisticexpialidocious wow",
			width: 10,
			want:  "supercalif\nragilistic\nexpialidoc\nious wow",
		},
		{
			name:  "正常系: 幅ちょうどの行を作る",
			text:  "aaaa bbbb cccc",
			width: 9,
			want:  "aaaa bbbb\ncccc",
		},
		{
			name:  "エッジケース: 空文字は空のまま",
			text:  "",
			width: 20,
			want:  "",
		},
		{
			name:  "エッジケース: 空白だけなら空になる",
			text:  "   \t  ",
			width: 20,
			want:  "",
		},
		{
			name:  "エッジケース: 幅0は折り返さない",
			text:  "Hello world",
			width: 0,
			want:  "Hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.text, tt.width)
			if got != tt.want {
				t.Errorf("WrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapText_LineWidthLaw(t *testing.T) {
	const width = DialogueWrapWidth
	text := "This sentence keeps going with plenty of reasonably sized words to wrap around the bubble edge"

	for _, line := range strings.Split(WrapText(text, width), "\n") {
		if len(line) > width {
			t.Errorf("行が幅を超えています: %q (%d文字)", line, len(line))
		}
		if line == "" {
			t.Error("空行が混入しています")
		}
	}
}
