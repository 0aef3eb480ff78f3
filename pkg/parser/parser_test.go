package parser

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// fakeReader はテスト用の remoteio.InputReader 実装です。
type fakeReader struct {
	contents map[string]string
}

func (r *fakeReader) Open(_ context.Context, path string) (io.ReadCloser, error) {
	content, ok := r.contents[path]
	if !ok {
		return nil, errors.New("file not found: " + path)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func TestScriptParser_ParseFromPath(t *testing.T) {
	scriptJSON := `{
	  "panels": [
	    {
	      "panel_id": 1,
	      "concept": "Alice asks about DNS",
	      "characters": [
	        {"name": "Alice", "visual_desc": "young woman", "slot": "left",
	         "facing": "right", "pose": "pointing", "expression": "curious",
	         "dialogue": "How does DNS work?"}
	      ]
	    }
	  ]
	}`

	reader := &fakeReader{contents: map[string]string{
		"runs/abc/script.json": scriptJSON,
		"runs/empty.json":      `{"panels": []}`,
		"runs/broken.json":     `{"panels": [`,
	}}
	p := NewScriptParser(reader)

	t.Run("正常系: 台本を読み戻せる", func(t *testing.T) {
		script, err := p.ParseFromPath(context.Background(), "runs/abc/script.json")
		if err != nil {
			t.Fatalf("ParseFromPath がエラーを返しました: %v", err)
		}
		if len(script.Panels) != 1 {
			t.Fatalf("パネル数 = %d, want 1", len(script.Panels))
		}
		char := script.Panels[0].Characters[0]
		if char.Name != "Alice" || char.Dialogue != "How does DNS work?" {
			t.Errorf("キャラクターが一致しません: %+v", char)
		}
	})

	t.Run("異常系: パネルなしの台本は拒否する", func(t *testing.T) {
		if _, err := p.ParseFromPath(context.Background(), "runs/empty.json"); err == nil {
			t.Fatal("空台本が受理されました")
		}
	})

	t.Run("異常系: 壊れた JSON はエラーになる", func(t *testing.T) {
		if _, err := p.ParseFromPath(context.Background(), "runs/broken.json"); err == nil {
			t.Fatal("壊れた JSON が受理されました")
		}
	})

	t.Run("異常系: 存在しないパスはエラーになる", func(t *testing.T) {
		if _, err := p.ParseFromPath(context.Background(), "runs/nope.json"); err == nil {
			t.Fatal("存在しないパスが受理されました")
		}
	})
}
