package director

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shouni/go-comicgen-kit/pkg/domain"
	"github.com/shouni/go-comicgen-kit/pkg/prompts"
)

// stubOracle はテスト用のオラクルです。応答を順番に返します。
type stubOracle struct {
	responses []string
	errs      []error
	prompts   []string
}

func (o *stubOracle) Generate(_ context.Context, prompt string) (string, error) {
	o.prompts = append(o.prompts, prompt)
	i := len(o.prompts) - 1
	if i < len(o.errs) && o.errs[i] != nil {
		return "", o.errs[i]
	}
	if i < len(o.responses) {
		return o.responses[i], nil
	}
	return "", errors.New("scripted responses exhausted")
}

const scriptResponse = "```json\n" + `{
  "panels": [
    {"panel_id": 1, "concept": "intro",
     "characters": [{"name": "Bean", "visual_desc": "a coffee mug", "slot": "left",
                     "facing": "right", "pose": "yuhoo", "expression": "smile",
                     "dialogue": "Hello!"}]},
    {"panel_id": 2, "concept": "question", "characters": []},
    {"panel_id": 3, "concept": "punchline", "characters": []}
  ]
}` + "\n```"

func newBuilder(t *testing.T) prompts.PromptBuilder {
	t.Helper()
	b, err := prompts.NewTextPromptBuilder()
	if err != nil {
		t.Fatalf("プロンプトビルダーの初期化に失敗しました: %v", err)
	}
	return b
}

func TestDirector_Direct(t *testing.T) {
	t.Run("正常系: 台本が格納される", func(t *testing.T) {
		oracle := &stubOracle{responses: []string{scriptResponse}}
		d := New(oracle, newBuilder(t))
		run := domain.NewRun("How does DNS work?", domain.ModeSingle, false)

		if err := d.Direct(context.Background(), &run); err != nil {
			t.Fatalf("Direct がエラーを返しました: %v", err)
		}
		if !run.HasScript() {
			t.Fatal("台本が格納されていません")
		}
		if got := len(run.Script.Panels); got != 3 {
			t.Errorf("パネル数 = %d, want 3", got)
		}
		if len(oracle.prompts) != 1 {
			t.Fatalf("呼び出し回数 = %d, want 1", len(oracle.prompts))
		}
		if !strings.Contains(oracle.prompts[0], `"How does DNS work?"`) {
			t.Errorf("プロンプトに依頼文がありません: %q", oracle.prompts[0])
		}
	})

	t.Run("正常系: 物語モードは物語用プロンプトを使う", func(t *testing.T) {
		oracle := &stubOracle{responses: []string{scriptResponse}}
		d := New(oracle, newBuilder(t))
		run := domain.NewRun("space race", domain.ModeStory, false)

		if err := d.Direct(context.Background(), &run); err != nil {
			t.Fatalf("Direct がエラーを返しました: %v", err)
		}
		if !strings.Contains(oracle.prompts[0], "multiple of 3") {
			t.Errorf("物語用プロンプトが使われていません: %q", oracle.prompts[0])
		}
	})

	t.Run("正常系: 高速モードでは既存台本を温存し AI を呼ばない", func(t *testing.T) {
		oracle := &stubOracle{responses: []string{scriptResponse}}
		d := New(oracle, newBuilder(t))
		run := domain.NewRun("topic", domain.ModeStory, true)
		existing := &domain.Script{Panels: []domain.Panel{{PanelID: 1, Concept: "kept"}}}
		run.Script = existing

		if err := d.Direct(context.Background(), &run); err != nil {
			t.Fatalf("Direct がエラーを返しました: %v", err)
		}
		if run.Script != existing {
			t.Error("既存の台本が置き換えられました")
		}
		if len(oracle.prompts) != 0 {
			t.Errorf("高速モードなのに AI が呼ばれました: %d 回", len(oracle.prompts))
		}
	})

	t.Run("正常系: 解析失敗は指摘付きで再試行して回復する", func(t *testing.T) {
		oracle := &stubOracle{responses: []string{"I cannot help with that.", scriptResponse}}
		d := New(oracle, newBuilder(t))
		run := domain.NewRun("topic", domain.ModeSingle, false)

		if err := d.Direct(context.Background(), &run); err != nil {
			t.Fatalf("Direct がエラーを返しました: %v", err)
		}
		if !run.HasScript() || len(run.Script.Panels) != 3 {
			t.Fatalf("再試行後の台本が格納されていません: %+v", run.Script)
		}
		if len(oracle.prompts) != 2 {
			t.Fatalf("呼び出し回数 = %d, want 2", len(oracle.prompts))
		}
		if !strings.Contains(oracle.prompts[1], "Failed to parse JSON") {
			t.Errorf("2回目のプロンプトに失敗理由が織り込まれていません: %q", oracle.prompts[1])
		}
	})

	t.Run("異常系: AI 失敗が続いても空台本で続行する", func(t *testing.T) {
		cause := errors.New("transport down")
		oracle := &stubOracle{errs: []error{cause, cause, cause}}
		d := New(oracle, newBuilder(t))
		run := domain.NewRun("topic", domain.ModeSingle, false)

		if err := d.Direct(context.Background(), &run); err != nil {
			t.Fatalf("失敗がステージエラーに昇格しました: %v", err)
		}
		if run.Script == nil || !run.Script.IsEmpty() {
			t.Errorf("空台本への退避が行われていません: %+v", run.Script)
		}
		if len(oracle.prompts) != 3 {
			t.Errorf("呼び出し回数 = %d, want 3", len(oracle.prompts))
		}
	})

	t.Run("異常系: 解析不能な応答が続いても空台本で続行する", func(t *testing.T) {
		garbage := "no json here"
		oracle := &stubOracle{responses: []string{garbage, garbage, garbage}}
		d := New(oracle, newBuilder(t))
		run := domain.NewRun("topic", domain.ModeSingle, false)

		if err := d.Direct(context.Background(), &run); err != nil {
			t.Fatalf("失敗がステージエラーに昇格しました: %v", err)
		}
		if run.Script == nil || !run.Script.IsEmpty() {
			t.Errorf("空台本への退避が行われていません: %+v", run.Script)
		}
		if len(oracle.prompts) != 3 {
			t.Errorf("呼び出し回数 = %d, want 3", len(oracle.prompts))
		}
	})
}
