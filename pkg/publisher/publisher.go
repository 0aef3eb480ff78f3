// Package publisher は合成済みの実行成果物（HTML 文書・台本・台詞記録）を
// 実行ディレクトリへ書き出します。書き込み先はローカルと GCS の両対応です。
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"
	"github.com/shouni/go-utils/urlpath"

	"github.com/shouni/go-comicgen-kit/pkg/asset"
	"github.com/shouni/go-comicgen-kit/pkg/compose"
	"github.com/shouni/go-comicgen-kit/pkg/domain"
)

const (
	transcriptMarkdownName = "transcript.md"
	transcriptHTMLName     = "transcript.html"

	contentTypeHTML     = "text/html; charset=utf-8"
	contentTypeMarkdown = "text/markdown; charset=utf-8"
	contentTypeJSON     = "application/json"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	RunDir string
}

// Result はパブリッシュ処理で生成されたファイルの情報を保持します。
type Result struct {
	IndexPath      string   // 入口文書（index.html）のパス
	PagePaths      []string // ストーリーモードの各ページのパス（ページ順）
	ScriptPath     string   // 保存した台本のパス（台本が空なら空文字）
	TranscriptPath string   // 台詞記録のパス（HTML変換済みならそちら）
}

// PrimaryPath は読者が最初に開くべき文書のパスを返します。
// ストーリーモードでは目次ではなく1ページ目を指します。
func (r Result) PrimaryPath(mode domain.Mode) string {
	if mode == domain.ModeStory && len(r.PagePaths) > 0 {
		return r.PagePaths[0]
	}
	return r.IndexPath
}

// Publisher は成果物の永続化とフォーマット変換を担います。
type Publisher struct {
	writer     remoteio.OutputWriter
	htmlRunner md2htmlrunner.Runner
}

// NewPublisher は Publisher を生成します。htmlRunner が nil の場合、
// 台詞記録の HTML 変換だけを省略します。
func NewPublisher(writer remoteio.OutputWriter, htmlRunner md2htmlrunner.Runner) *Publisher {
	return &Publisher{
		writer:     writer,
		htmlRunner: htmlRunner,
	}
}

// Publish は Run の全成果物を書き出し、生成されたファイル情報を返却するのだ！
// 文書が1つも載っていない Run は合成前とみなしてエラーにします。
func (p *Publisher) Publish(ctx context.Context, run *domain.Run, opts Options) (Result, error) {
	result := Result{}
	if len(run.Documents) == 0 {
		return result, fmt.Errorf("書き出す文書がありません: 合成が済んでいない実行です run_id=%s", run.RunID)
	}

	// 1. HTML 文書群の書き出し
	for _, doc := range run.Documents {
		fullPath, err := urlpath.ResolveOutputPath(opts.RunDir, doc.Name)
		if err != nil {
			return result, fmt.Errorf("出力パスの解決に失敗しました %s: %w", doc.Name, err)
		}
		if err := p.writer.Write(ctx, fullPath, strings.NewReader(doc.HTML), contentTypeHTML); err != nil {
			return result, fmt.Errorf("文書の書き込みに失敗しました %s: %w", doc.Name, err)
		}
		if doc.Name == compose.IndexDocumentName {
			result.IndexPath = fullPath
		} else {
			result.PagePaths = append(result.PagePaths, fullPath)
		}
	}

	// 2. 台本と台詞記録（台本が空の実行には書くものがない）
	if run.HasScript() {
		scriptPath, err := p.writeScript(ctx, run, opts.RunDir)
		if err != nil {
			return result, err
		}
		result.ScriptPath = scriptPath

		transcriptPath, err := p.writeTranscript(ctx, run, opts.RunDir)
		if err != nil {
			return result, err
		}
		result.TranscriptPath = transcriptPath
	}

	slog.InfoContext(ctx, "成果物を書き出しました",
		"run_id", run.RunID,
		"documents", len(run.Documents),
		"primary", result.PrimaryPath(run.Mode),
	)
	return result, nil
}

// writeScript は台本を再開可能な JSON として保存します。
func (p *Publisher) writeScript(ctx context.Context, run *domain.Run, runDir string) (string, error) {
	raw, err := json.MarshalIndent(run.Script, "", "    ")
	if err != nil {
		return "", fmt.Errorf("台本のシリアライズに失敗しました: %w", err)
	}

	scriptPath, err := urlpath.ResolveOutputPath(runDir, asset.ScriptFileName)
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました %s: %w", asset.ScriptFileName, err)
	}
	if err := p.writer.Write(ctx, scriptPath, bytes.NewReader(raw), contentTypeJSON); err != nil {
		return "", fmt.Errorf("台本の書き込みに失敗しました: %w", err)
	}
	return scriptPath, nil
}

// writeTranscript は台詞記録の Markdown を書き出し、可能なら HTML にも
// 変換して保存します。返り値は読者に提示するべき方のパスです。
func (p *Publisher) writeTranscript(ctx context.Context, run *domain.Run, runDir string) (string, error) {
	content := BuildTranscript(run)

	mdPath, err := urlpath.ResolveOutputPath(runDir, transcriptMarkdownName)
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました %s: %w", transcriptMarkdownName, err)
	}
	if err := p.writer.Write(ctx, mdPath, strings.NewReader(content), contentTypeMarkdown); err != nil {
		return "", fmt.Errorf("台詞記録の書き込みに失敗しました: %w", err)
	}

	if p.htmlRunner == nil {
		return mdPath, nil
	}

	slog.InfoContext(ctx, "台詞記録をHTMLへ変換します", "run_id", run.RunID)
	htmlBuffer, err := p.htmlRunner.Run(ctx, run.UserPrompt, []byte(content))
	if err != nil {
		return "", fmt.Errorf("台詞記録のHTML変換に失敗しました: %w", err)
	}

	htmlPath, err := urlpath.ResolveOutputPath(runDir, transcriptHTMLName)
	if err != nil {
		return "", fmt.Errorf("出力パスの解決に失敗しました %s: %w", transcriptHTMLName, err)
	}
	if err := p.writer.Write(ctx, htmlPath, htmlBuffer, contentTypeHTML); err != nil {
		return "", fmt.Errorf("台詞記録HTMLの書き込みに失敗しました: %w", err)
	}
	return htmlPath, nil
}
