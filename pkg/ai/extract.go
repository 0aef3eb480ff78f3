package ai

import (
	"regexp"
	"strings"
)

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// ExtractJSON は AI 応答から JSON 候補の文字列を取り出します。
// コードフェンス内を最優先とし、なければ最外殻の波括弧の範囲、
// それもなければ応答全体をそのまま返します。
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)

	if matches := jsonBlockRegex.FindStringSubmatch(raw); len(matches) > 1 {
		return matches[1]
	}

	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first != -1 && last > first {
		return raw[first : last+1]
	}

	return raw
}

// Truncate はログやエラー文に応答の抜粋を載せるための短縮です。
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
