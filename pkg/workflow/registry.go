package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-comicgen-kit/pkg/asset"
)

// LatestRunFileName は最新実行を指すポインタファイルの名前です。
const LatestRunFileName = "latest_run"

// Registry は「最新の実行」を明示的なポインタファイルで管理します。
// ディレクトリの更新時刻による暗黙の推定は、ポインタが読めない古い
// 実行ディレクトリ群に対する後方互換のフォールバックとしてだけ残しています。
type Registry struct {
	runsDir string
	reader  remoteio.InputReader
	writer  remoteio.OutputWriter
}

// NewRegistry は runsDir 配下を管理するレジストリを作成します。
func NewRegistry(runsDir string, reader remoteio.InputReader, writer remoteio.OutputWriter) *Registry {
	return &Registry{runsDir: runsDir, reader: reader, writer: writer}
}

// Record は実行の成功後に一度だけ呼び、ポインタファイルを更新します。
func (g *Registry) Record(ctx context.Context, runID string) error {
	pointerPath, err := asset.ResolveOutputPath(g.runsDir, LatestRunFileName)
	if err != nil {
		return fmt.Errorf("ポインタファイルのパス解決に失敗しました: %w", err)
	}
	if err := g.writer.Write(ctx, pointerPath, strings.NewReader(runID+"\n"), "text/plain; charset=utf-8"); err != nil {
		return fmt.Errorf("最新実行の記録に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "最新実行を記録しました", "run_id", runID, "pointer", pointerPath)
	return nil
}

// Latest は最も新しい実行の ID を返します。ポインタファイルを優先し、
// 読めない場合だけ更新時刻の走査に切り替えます。再利用できる実行が
// 1つもない場合はエラーを返します。
func (g *Registry) Latest(ctx context.Context) (string, error) {
	if id, err := g.latestByPointer(ctx); err == nil {
		return id, nil
	} else {
		slog.DebugContext(ctx, "ポインタファイルが読めないため更新時刻で探します", "error", err)
	}
	return g.latestByModTime()
}

func (g *Registry) latestByPointer(ctx context.Context) (string, error) {
	pointerPath, err := asset.ResolveOutputPath(g.runsDir, LatestRunFileName)
	if err != nil {
		return "", err
	}

	rc, err := g.reader.Open(ctx, pointerPath)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", fmt.Errorf("ポインタファイルが空です: %s", pointerPath)
	}
	return id, nil
}

// latestByModTime はローカルの runsDir を走査して最新のディレクトリを探すのだ。
func (g *Registry) latestByModTime() (string, error) {
	entries, err := os.ReadDir(g.runsDir)
	if err != nil {
		return "", fmt.Errorf("実行ディレクトリの走査に失敗しました: %w", err)
	}

	var latestID string
	var latestMod time.Time
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latestID == "" || info.ModTime().After(latestMod) {
			latestID = entry.Name()
			latestMod = info.ModTime()
		}
	}

	if latestID == "" {
		return "", fmt.Errorf("再利用できる実行が見つかりません: %s", g.runsDir)
	}
	return latestID, nil
}
