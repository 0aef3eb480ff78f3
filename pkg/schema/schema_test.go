package schema

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

const validAavatarJSON = `{
  "visuals": {"mirror": false, "box": "circle", "boxcolor": "#FF0000"},
  "character_data": {
    "character": "aavatar",
    "head": {"gender": "female", "hairstyle": "wavy"},
    "face": {"style": "sketchy", "emotion": "happy"},
    "body": {"attire": "formal", "pose": "explaining"}
  }
}`

const validEthanJSON = `{
  "visuals": {"mirror": true, "box": "", "boxcolor": ""},
  "character_data": {
    "character": "ethan",
    "properties": {"angle": "side", "emotion": "happy", "pose": "pointingright"}
  }
}`

const validBillJSON = `{
  "visuals": {"mirror": false, "box": "", "boxcolor": "#000000"},
  "character_data": {"character": "bill", "emotion": "excited", "pose": "thumbsup"}
}`

func TestDecode(t *testing.T) {
	t.Run("正常系: aavatar の三部構成を読み取れる", func(t *testing.T) {
		cfg, err := Decode([]byte(validAavatarJSON))
		if err != nil {
			t.Fatalf("Decode がエラーを返しました: %v", err)
		}
		av, ok := cfg.Data.(*Aavatar)
		if !ok {
			t.Fatalf("Data の型が *Aavatar ではありません: %T", cfg.Data)
		}
		if av.Head.Gender != "female" || av.Head.Hairstyle != "wavy" {
			t.Errorf("head が一致しません: %+v", av.Head)
		}
		if av.Face.Style != "sketchy" || av.Face.Emotion != "happy" {
			t.Errorf("face が一致しません: %+v", av.Face)
		}
		if av.Body.Attire != "formal" || av.Body.Pose != "explaining" {
			t.Errorf("body が一致しません: %+v", av.Body)
		}
		if cfg.Visuals.Box != "circle" || cfg.Visuals.BoxColor != "#FF0000" {
			t.Errorf("visuals が一致しません: %+v", cfg.Visuals)
		}
	})

	t.Run("正常系: 角度ペルソナは properties 配下を読み取る", func(t *testing.T) {
		cfg, err := Decode([]byte(validEthanJSON))
		if err != nil {
			t.Fatalf("Decode がエラーを返しました: %v", err)
		}
		p, ok := cfg.Data.(*AnglePersona)
		if !ok {
			t.Fatalf("Data の型が *AnglePersona ではありません: %T", cfg.Data)
		}
		if p.Kind() != KindEthan {
			t.Errorf("Kind() = %q, want %q", p.Kind(), KindEthan)
		}
		want := AngleProps{Angle: "side", Emotion: "happy", Pose: "pointingright"}
		if p.Props != want {
			t.Errorf("Props = %+v, want %+v", p.Props, want)
		}
		if !cfg.Visuals.Mirror {
			t.Error("mirror が true で読み取られていません")
		}
	})

	t.Run("正常系: 正面ペルソナは表情とポーズだけを持つ", func(t *testing.T) {
		cfg, err := Decode([]byte(validBillJSON))
		if err != nil {
			t.Fatalf("Decode がエラーを返しました: %v", err)
		}
		p, ok := cfg.Data.(*FlatPersona)
		if !ok {
			t.Fatalf("Data の型が *FlatPersona ではありません: %T", cfg.Data)
		}
		if p.Emotion != "excited" || p.Pose != "thumbsup" {
			t.Errorf("属性が一致しません: %+v", p)
		}
	})

	t.Run("正常系: boxcolor 省略時は既定値が適用される", func(t *testing.T) {
		cfg, err := Decode([]byte(validEthanJSON))
		if err != nil {
			t.Fatalf("Decode がエラーを返しました: %v", err)
		}
		if cfg.Visuals.BoxColor != DefaultBoxColor {
			t.Errorf("BoxColor = %q, want %q", cfg.Visuals.BoxColor, DefaultBoxColor)
		}
	})

	t.Run("異常系: 未知の character タグは拒否する", func(t *testing.T) {
		input := `{"visuals": {"mirror": false, "box": "", "boxcolor": ""}, "character_data": {"character": "robot"}}`
		_, err := Decode([]byte(input))
		if err == nil {
			t.Fatal("エラーが返りませんでした")
		}
		if !strings.Contains(err.Error(), `"robot"`) {
			t.Errorf("エラー文に不正なタグ名が含まれていません: %v", err)
		}
	})

	t.Run("異常系: character_data の欠落は拒否する", func(t *testing.T) {
		input := `{"visuals": {"mirror": false, "box": "", "boxcolor": ""}}`
		if _, err := Decode([]byte(input)); err == nil {
			t.Fatal("エラーが返りませんでした")
		}
	})

	t.Run("異常系: 未知フィールドは拒否する", func(t *testing.T) {
		input := `{
		  "visuals": {"mirror": false, "box": "", "boxcolor": ""},
		  "character_data": {"character": "bill", "emotion": "happy", "pose": "thumbsup", "hat": "tophat"}
		}`
		if _, err := Decode([]byte(input)); err == nil {
			t.Fatal("未知フィールドが受理されてしまいました")
		}
	})

	t.Run("異常系: 性別に合わない髪型は拒否する", func(t *testing.T) {
		input := strings.Replace(validAavatarJSON, `"hairstyle": "wavy"`, `"hairstyle": "spikes"`, 1)
		_, err := Decode([]byte(input))
		if err == nil {
			t.Fatal("エラーが返りませんでした")
		}
		if !strings.Contains(err.Error(), "hairstyle") || !strings.Contains(err.Error(), "female") {
			t.Errorf("エラー文が語彙の依存関係を説明していません: %v", err)
		}
	})

	t.Run("異常系: 衣装に合わないポーズは拒否する", func(t *testing.T) {
		input := strings.Replace(validAavatarJSON, `"pose": "explaining"`, `"pose": "ridingbike"`, 1)
		if _, err := Decode([]byte(input)); err == nil {
			t.Fatal("エラーが返りませんでした")
		}
	})

	t.Run("異常系: ペルソナが持たない角度は拒否する", func(t *testing.T) {
		input := strings.Replace(validEthanJSON, `"angle": "side"`, `"angle": "sitting"`, 1)
		_, err := Decode([]byte(input))
		if err == nil {
			t.Fatal("エラーが返りませんでした")
		}
		if !strings.Contains(err.Error(), "angle") {
			t.Errorf("エラー文が angle に言及していません: %v", err)
		}
	})

	t.Run("異常系: 角度ごとの表情語彙を照合する", func(t *testing.T) {
		// backsidehead は ethan の back 角度専用の表情です。
		input := strings.Replace(validEthanJSON, `"emotion": "happy"`, `"emotion": "backsidehead"`, 1)
		if _, err := Decode([]byte(input)); err == nil {
			t.Fatal("エラーが返りませんでした")
		}
	})

	t.Run("異常系: 不正な box 形状は拒否する", func(t *testing.T) {
		input := strings.Replace(validAavatarJSON, `"box": "circle"`, `"box": "triangle"`, 1)
		if _, err := Decode([]byte(input)); err == nil {
			t.Fatal("エラーが返りませんでした")
		}
	})
}

func TestCharacterConfig_RoundTrip(t *testing.T) {
	for _, input := range []string{validAavatarJSON, validEthanJSON, validBillJSON} {
		cfg, err := Decode([]byte(input))
		if err != nil {
			t.Fatalf("Decode がエラーを返しました: %v", err)
		}
		data, err := json.Marshal(cfg)
		if err != nil {
			t.Fatalf("Marshal がエラーを返しました: %v", err)
		}
		again, err := Decode(data)
		if err != nil {
			t.Fatalf("再 Decode がエラーを返しました: %v", err)
		}
		if !reflect.DeepEqual(cfg, again) {
			t.Errorf("往復後に設定が一致しません:\n前: %+v\n後: %+v", cfg, again)
		}
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 10 {
		t.Fatalf("種別数 = %d, want 10", len(kinds))
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] >= kinds[i] {
			t.Errorf("種別が辞書順に並んでいません: %v", kinds)
		}
	}
	if IsValidKind("humaaans") {
		t.Error("humaaans はアクティブなユニオンに含まれてはいけません")
	}
	if !IsValidKind(KindBean) {
		t.Error("bean が有効と判定されません")
	}
}
