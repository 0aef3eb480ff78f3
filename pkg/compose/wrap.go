package compose

import "strings"

// DialogueWrapWidth はセリフの折り返し幅（半角換算の語単位）です。
// 吹き出しの横幅に合わせた値で、描画テンプレート側の想定と揃えています。
const DialogueWrapWidth = 20

// WrapText はテキストを貪欲法で width 文字に折り返します。
// 連続する空白は1つに畳み、width を超える語はその場で分割します。
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	var current string
	flush := func() {
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
	}

	for _, word := range words {
		// 幅を超える語は分割して詰めます。
		for len(word) > width {
			flush()
			lines = append(lines, word[:width])
			word = word[width:]
		}
		if word == "" {
			continue
		}
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			flush()
			current = word
		}
	}
	flush()

	return strings.Join(lines, "\n")
}
