package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func sampleScript(panelCount int) Script {
	s := Script{}
	for i := 0; i < panelCount; i++ {
		s.Panels = append(s.Panels, Panel{
			PanelID: i + 1,
			Concept: "scene",
			Characters: []PanelCharacter{
				{Name: "Ethan", Slot: SlotLeft, Pose: "normal", Expression: "happy", Dialogue: "hi"},
			},
		})
	}
	return s
}

func TestScript_JSON(t *testing.T) {
	t.Run("Directorの出力形式をそのまま往復できるのだ", func(t *testing.T) {
		inputJSON := `{
			"panels": [
				{
					"panel_id": 1,
					"concept": "コーヒーショップの開店",
					"characters": [
						{
							"name": "Ethan",
							"visual_desc": "man with beard and glasses",
							"slot": "left",
							"facing": "right",
							"pose": "pointingright",
							"expression": "excited",
							"dialogue": "Welcome!"
						}
					]
				}
			]
		}`

		var script Script
		if err := json.Unmarshal([]byte(inputJSON), &script); err != nil {
			t.Fatalf("パース失敗なのだ: %v", err)
		}

		if len(script.Panels) != 1 {
			t.Fatalf("パネル数が違うのだ: %d", len(script.Panels))
		}
		char := script.Panels[0].Characters[0]
		if char.Name != "Ethan" || char.Slot != SlotLeft || char.Expression != "excited" {
			t.Errorf("キャラクター情報が正しくパースされていないのだ: %+v", char)
		}

		data, err := json.Marshal(script)
		if err != nil {
			t.Fatalf("Marshal失敗なのだ: %v", err)
		}
		var decoded Script
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal失敗なのだ: %v", err)
		}
		if !reflect.DeepEqual(script, decoded) {
			t.Errorf("変換前後でデータが一致しないのだ。期待: %+v, 実際: %+v", script, decoded)
		}
	})
}

func TestScript_Chunk(t *testing.T) {
	t.Run("3個ずつに分割して連結すると元の並びに戻ること", func(t *testing.T) {
		script := sampleScript(7)
		pages := script.Chunk(PanelsPerPage)

		if len(pages) != 3 {
			t.Fatalf("ページ数の期待値 3, 実際 %d", len(pages))
		}
		sizes := []int{len(pages[0]), len(pages[1]), len(pages[2])}
		if !reflect.DeepEqual(sizes, []int{3, 3, 1}) {
			t.Errorf("ページサイズの期待値 [3 3 1], 実際 %v", sizes)
		}

		var rejoined []Panel
		for _, page := range pages {
			rejoined = append(rejoined, page...)
		}
		if !reflect.DeepEqual(rejoined, script.Panels) {
			t.Error("分割と連結でパネルの並びが変わってしまいました")
		}
	})

	t.Run("空の台本は分割結果も空であること", func(t *testing.T) {
		if pages := (Script{}).Chunk(PanelsPerPage); pages != nil {
			t.Errorf("期待値 nil, 実際 %v", pages)
		}
	})
}

func TestScript_Validate(t *testing.T) {
	t.Run("単一ページで3パネルなら問題なしとなること", func(t *testing.T) {
		if issues := sampleScript(3).Validate(ModeSingle); len(issues) != 0 {
			t.Errorf("問題なしのはずが検出されました: %v", issues)
		}
	})

	t.Run("ストーリーで3の倍数でないパネル数は警告になること", func(t *testing.T) {
		issues := sampleScript(7).Validate(ModeStory)
		if len(issues) != 1 || !strings.Contains(issues[0], "panel count 7") {
			t.Errorf("パネル数警告が期待と違うのだ: %v", issues)
		}
	})

	t.Run("キャラクター過多と不正スロットを検出すること", func(t *testing.T) {
		script := sampleScript(3)
		script.Panels[0].Characters = []PanelCharacter{
			{Name: "A", Slot: SlotLeft},
			{Name: "B", Slot: SlotRight},
			{Name: "C", Slot: "center"},
		}
		issues := script.Validate(ModeSingle)
		if len(issues) != 2 {
			t.Fatalf("検出数の期待値 2, 実際 %d: %v", len(issues), issues)
		}
		if !strings.Contains(issues[0], "has 3 characters") {
			t.Errorf("キャラクター数警告が違うのだ: %s", issues[0])
		}
		if !strings.Contains(issues[1], `slot "center"`) {
			t.Errorf("スロット警告が違うのだ: %s", issues[1])
		}
	})
}

func TestScript_UniqueCharacterNames(t *testing.T) {
	script := sampleScript(3)
	script.Panels[1].Characters = append(script.Panels[1].Characters, PanelCharacter{Name: "Sophie", Slot: SlotRight})

	names := script.UniqueCharacterNames()
	if !reflect.DeepEqual(names, []string{"Ethan", "Sophie"}) {
		t.Errorf("初出順の一意な名前の期待値 [Ethan Sophie], 実際 %v", names)
	}
}
