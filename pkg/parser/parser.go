// Package parser は保存済みの台本 JSON を読み戻します。
// 高速モードの再開や、外部で用意した台本の持ち込みに使います。
package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-comicgen-kit/pkg/domain"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// Parser は台本を読み込むためのインターフェースを定義します。
type Parser interface {
	ParseFromPath(ctx context.Context, fullPath string) (*domain.Script, error)
}

// ScriptParser は JSON 形式の台本を解析する構造体です。
type ScriptParser struct {
	reader remoteio.InputReader
}

// NewScriptParser は新しい ScriptParser インスタンスを生成します。
func NewScriptParser(r remoteio.InputReader) *ScriptParser {
	return &ScriptParser{reader: r}
}

// ParseFromPath は指定された GCS URI やローカルファイルパスから台本を
// 読み込み、解析して domain.Script を返します。
func (p *ScriptParser) ParseFromPath(ctx context.Context, scriptFile string) (*domain.Script, error) {
	slog.InfoContext(ctx, "台本ファイルを読み込んでいます", "path", scriptFile)
	rc, err := p.reader.Open(ctx, scriptFile)
	if err != nil {
		return nil, fmt.Errorf("台本ファイルのオープンに失敗しました (%s): %w", scriptFile, err)
	}
	defer rc.Close()

	script := &domain.Script{}
	if err := json.NewDecoder(rc).Decode(script); err != nil {
		return nil, fmt.Errorf("台本JSONのパースに失敗しました: %w", err)
	}

	if script.IsEmpty() {
		return nil, fmt.Errorf("台本にパネルが含まれていません (%s)", scriptFile)
	}

	return script, nil
}
