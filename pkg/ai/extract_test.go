package ai

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "json 言語指定付きフェンス",
			raw:  "Here is the result:\n```json\n{\"a\": 1}\n```\nDone.",
			want: `{"a": 1}`,
		},
		{
			name: "言語指定なしフェンス",
			raw:  "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "フェンスなしで前後に散文がある",
			raw:  "Sure! {\"panels\": []} Hope this helps.",
			want: `{"panels": []}`,
		},
		{
			name: "最外殻の波括弧を採用する",
			raw:  `prefix {"outer": {"inner": 1}} suffix`,
			want: `{"outer": {"inner": 1}}`,
		},
		{
			name: "応答全体が JSON",
			raw:  "  {\"a\": 1}  ",
			want: `{"a": 1}`,
		},
		{
			name: "波括弧が見つからなければ全体を返す",
			raw:  "no json here",
			want: "no json here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.raw); got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("短い文字列が変形されました: %q", got)
	}
	if got := Truncate("hello world", 5); got != "hello..." {
		t.Errorf("Truncate = %q, want %q", got, "hello...")
	}
}
