package compose

import (
	"github.com/shouni/go-comicgen-kit/pkg/domain"
)

// CharacterView は1体分の描画データです。セリフは折り返しとタグ除去を
// 済ませた表示用の形で保持します。
type CharacterView struct {
	Name         string
	SpeakerClass string
	Slot         string
	Image        string
	Dialogue     string
	DialogueType string
	Pose         string
	Expression   string
}

// PanelView は1コマ分の描画データです。Index は実行全体での通し番号です。
type PanelView struct {
	Index      int
	Concept    string
	Characters []CharacterView
}

// PageView は1ページ分の描画データです。
// NextLink が空のときは最終ページとして扱います。
type PageView struct {
	Title      string
	Subtitle   string
	PageNum    int
	TotalPages int
	PrevLink   string
	NextLink   string
	IndexLink  string
	Panels     []PanelView
}

// IndexEntry は目次の1項目です。
type IndexEntry struct {
	Num  int
	Link string
}

// IndexView は目次ページの描画データです。
type IndexView struct {
	Title      string
	Subtitle   string
	TotalPages int
	StartLink  string
	Pages      []IndexEntry
}

// buildPanelViews は台本とアセット表から描画データを組み立てます。
// アセット表にないインスタンスの画像は空になり、テンプレート側で
// 画像なしとして描画されます。
func buildPanelViews(script *domain.Script, assets domain.AssetMap) []PanelView {
	views := make([]PanelView, 0, len(script.Panels))
	for p, panel := range script.Panels {
		pv := PanelView{Index: p, Concept: panel.Concept}
		for c, ch := range panel.Characters {
			pv.Characters = append(pv.Characters, CharacterView{
				Name:         ch.Name,
				SpeakerClass: SpeakerID(ch.Name),
				Slot:         ch.Slot,
				Image:        assets[domain.InstanceID(p, c)],
				Dialogue:     WrapText(StripDialogueTags(ch.Dialogue), DialogueWrapWidth),
				DialogueType: DetermineDialogueType(ch.Dialogue),
				Pose:         ch.Pose,
				Expression:   ch.Expression,
			})
		}
		views = append(views, pv)
	}
	return views
}

// chunkViews は描画データをページ単位に分割します。
func chunkViews(panels []PanelView, size int) [][]PanelView {
	if size <= 0 || len(panels) == 0 {
		return nil
	}
	var pages [][]PanelView
	for start := 0; start < len(panels); start += size {
		end := start + size
		if end > len(panels) {
			end = len(panels)
		}
		pages = append(pages, panels[start:end])
	}
	return pages
}
