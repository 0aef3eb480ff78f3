package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-comicgen-kit/pkg/asset"
	"github.com/shouni/go-comicgen-kit/pkg/domain"
	"github.com/shouni/go-comicgen-kit/pkg/parser"
)

// Resumer は保存済みの実行から台本とアセット表を読み戻します。
// 高速モードのブートストラップ専用で、読み戻しに失敗しても呼び出し側は
// 通常の全生成にフォールバックできます。
type Resumer struct {
	parser  parser.Parser
	runsDir string
}

// NewResumer は Resumer を作成します。
func NewResumer(reader remoteio.InputReader, runsDir string) *Resumer {
	return &Resumer{
		parser:  parser.NewScriptParser(reader),
		runsDir: runsDir,
	}
}

// Resume は run.RunID の実行ディレクトリから台本を読み戻し、規約に沿った
// 画像ファイルの存在確認だけでアセット表を再構成します。プレースホルダは
// ディスクに存在しないため、存在確認によって自然に再解決の対象へ戻ります。
func (r *Resumer) Resume(ctx context.Context, run *domain.Run) error {
	runDir, err := asset.RunDir(r.runsDir, run.RunID)
	if err != nil {
		return fmt.Errorf("実行ディレクトリの解決に失敗しました: %w", err)
	}

	scriptPath, err := asset.ResolveOutputPath(runDir, asset.ScriptFileName)
	if err != nil {
		return fmt.Errorf("台本パスの解決に失敗しました: %w", err)
	}

	script, err := r.parser.ParseFromPath(ctx, scriptPath)
	if err != nil {
		return fmt.Errorf("台本の読み戻しに失敗しました: %w", err)
	}

	run.Script = script
	run.Assets = run.Assets.Union(reconstructAssets(runDir, script))

	slog.InfoContext(ctx, "保存済みの実行を読み戻しました",
		"run_id", run.RunID,
		"panels", len(script.Panels),
		"assets", len(run.Assets),
	)
	return nil
}

// reconstructAssets は台本上の全出演インスタンスについて、規約どおりの
// ファイル名がローカルに実在するかだけを確かめてアセット表を作ります。
// 見つからないインスタンスは表に載せず、リゾルバの再解決に委ねます。
func reconstructAssets(runDir string, script *domain.Script) domain.AssetMap {
	assets := make(domain.AssetMap)
	for pi, panel := range script.Panels {
		for ci, ch := range panel.Characters {
			fullPath := filepath.Join(runDir, asset.ImagesDir, asset.ImageFileName(ch.Name, pi, ci))
			info, err := os.Stat(fullPath)
			if err != nil || info.IsDir() {
				continue
			}
			assets[domain.InstanceID(pi, ci)] = asset.ImageRelPath(ch.Name, pi, ci)
		}
	}
	return assets
}
