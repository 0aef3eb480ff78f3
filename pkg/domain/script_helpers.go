package domain

import "fmt"

// UniqueCharacterNames は台本に登場する重複しないキャラクター名を
// 初出順に抽出します。スタイルキャッシュの事前サイズ決定などに使います。
func (s Script) UniqueCharacterNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, panel := range s.Panels {
		for _, char := range panel.Characters {
			if char.Name == "" {
				continue
			}
			if _, ok := seen[char.Name]; ok {
				continue
			}
			seen[char.Name] = struct{}{}
			names = append(names, char.Name)
		}
	}
	return names
}

// 検査結果の文言は slog の値としてそのまま流せるよう英語の定型文にしています。

func panelCountIssue(got int, want string) string {
	return fmt.Sprintf("panel count %d violates the layout rule (want %s)", got, want)
}

func characterCountIssue(panelIdx, got int) string {
	return fmt.Sprintf("panel %d has %d characters (max %d)", panelIdx, got, MaxCharactersPerPanel)
}

func slotIssue(panelIdx, charIdx int, slot string) string {
	return fmt.Sprintf("panel %d character %d has slot %q (want %q or %q)", panelIdx, charIdx, slot, SlotLeft, SlotRight)
}
