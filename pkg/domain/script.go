package domain

// スロット・向きの正規語彙なのだ。Director への指示と検証の両方で使うのだ。
const (
	SlotLeft  = "left"
	SlotRight = "right"

	// PanelsPerPage は1ページを構成するパネル数です。単一ページ漫画は
	// ちょうどこの数、ストーリー漫画はこの倍数を前提にページ割りします。
	PanelsPerPage = 3

	// MaxCharactersPerPanel は1パネルに登場できるキャラクターの上限です。
	MaxCharactersPerPanel = 2
)

// Mode は生成パイプラインの動作モード（単一ページ / 複数ページ）を表します。
type Mode string

const (
	ModeSingle Mode = "single"
	ModeStory  Mode = "story"
)

// PanelCharacter は1パネル内の1キャラクター出演情報を保持します。
// Name はパネルをまたいだ一貫性のキーであり、同名なら同一の視覚的アイデンティティ、
// Pose / Expression は出演ごとに変化します。
type PanelCharacter struct {
	Name       string `json:"name"`
	VisualDesc string `json:"visual_desc"`
	Slot       string `json:"slot"`
	Facing     string `json:"facing"`
	Pose       string `json:"pose"`
	Expression string `json:"expression"`
	Dialogue   string `json:"dialogue"`
}

// Panel は漫画の1コマの構成（テーマと登場キャラクター）を保持します。
type Panel struct {
	PanelID    int              `json:"panel_id"`
	Concept    string           `json:"concept"`
	Characters []PanelCharacter `json:"characters"`
}

// Script は Director が生成する台本全体です。一度返された Script は
// 以降のステージで読み取り専用として扱われます。
type Script struct {
	Panels []Panel `json:"panels"`
}

// IsEmpty は台本がパネルを1つも持たないかどうかを返すのだ。
// Director のパース失敗時フォールバック（空台本）の判定に使うのだ。
func (s Script) IsEmpty() bool {
	return len(s.Panels) == 0
}

// CharacterCount は全パネルの出演キャラクター延べ数を返します。
func (s Script) CharacterCount() int {
	total := 0
	for _, p := range s.Panels {
		total += len(p.Characters)
	}
	return total
}

// Chunk はパネル列を size 個ずつのページに分割します。最後のページは
// size 未満になることがあります（切り捨てず、そのまま1ページとして扱います）。
func (s Script) Chunk(size int) [][]Panel {
	if size <= 0 || len(s.Panels) == 0 {
		return nil
	}

	pages := make([][]Panel, 0, (len(s.Panels)+size-1)/size)
	for start := 0; start < len(s.Panels); start += size {
		end := start + size
		if end > len(s.Panels) {
			end = len(s.Panels)
		}
		pages = append(pages, s.Panels[start:end])
	}
	return pages
}

// Validate はモードごとの構成規則に対する助言レベルの検査を行い、
// 問題点のリストを返します。パネル数の過不足は致命傷にせず警告に留めるのが
// このパイプラインの方針なので、呼び出し側はログに流すだけで処理を続行します。
func (s Script) Validate(mode Mode) []string {
	var issues []string

	switch mode {
	case ModeSingle:
		if len(s.Panels) != PanelsPerPage {
			issues = append(issues, panelCountIssue(len(s.Panels), "exactly 3"))
		}
	case ModeStory:
		if len(s.Panels) == 0 || len(s.Panels)%PanelsPerPage != 0 {
			issues = append(issues, panelCountIssue(len(s.Panels), "a positive multiple of 3"))
		}
	}

	for pi, panel := range s.Panels {
		if len(panel.Characters) > MaxCharactersPerPanel {
			issues = append(issues, characterCountIssue(pi, len(panel.Characters)))
		}
		for ci, char := range panel.Characters {
			if char.Slot != SlotLeft && char.Slot != SlotRight {
				issues = append(issues, slotIssue(pi, ci, char.Slot))
			}
		}
	}

	return issues
}
