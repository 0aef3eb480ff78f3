// Package director は利用者の依頼文からコミックの台本を生成します。
// 台本はパネル列の JSON として AI から受け取り、検証の警告はログに
// 残しつつ処理を続けます。全試行が解析不能だった場合は空の台本へ
// 退避し、実行自体は止めません。
package director

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-comicgen-kit/pkg/ai"
	"github.com/shouni/go-comicgen-kit/pkg/domain"
	"github.com/shouni/go-comicgen-kit/pkg/prompts"
	"github.com/shouni/go-comicgen-kit/pkg/schema"
)

// Director は台本生成ステージです。解析に失敗した応答はエラー文を
// プロンプトへ織り込んで再試行します（Configurator と同じ方針です）。
type Director struct {
	loop    *ai.RetryLoop
	builder prompts.PromptBuilder
}

// New は Director を生成します。
func New(oracle ai.TextOracle, builder prompts.PromptBuilder) *Director {
	return &Director{
		loop: &ai.RetryLoop{
			Oracle:      oracle,
			MaxAttempts: ai.DefaultMaxAttempts,
			Augment:     prompts.AugmentWithError,
		},
		builder: builder,
	}
}

// Direct は run の依頼文から台本を生成して run.Script に格納します。
// 高速モードで台本が既にあるときは何もしません。全試行が尽きた場合は
// 空の台本として扱い、エラーにはしません（後段が空台本をエラー
// ドキュメントに変換します）。
func (d *Director) Direct(ctx context.Context, run *domain.Run) error {
	if run.FastMode && run.HasScript() {
		slog.InfoContext(ctx, "高速モード: 既存の台本を再利用します", "run_id", run.RunID, "panels", len(run.Script.Panels))
		return nil
	}

	mode := prompts.ModeDirectorSingle
	if run.Mode == domain.ModeStory {
		mode = prompts.ModeDirectorStory
	}

	prompt, err := d.builder.Build(mode, prompts.TemplateData{
		Topic:  run.UserPrompt,
		Roster: schema.Roster(),
	})
	if err != nil {
		return fmt.Errorf("ディレクター用プロンプトの構築に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "台本を生成しています", "run_id", run.RunID, "mode", string(run.Mode))

	var script *domain.Script
	if _, err := d.loop.Do(ctx, prompt, func(raw string) error {
		parsed, parseErr := parseScript(raw)
		if parseErr != nil {
			return parseErr
		}
		script = parsed
		return nil
	}); err != nil {
		slog.ErrorContext(ctx, "台本を生成できなかったため空の台本で続行します", "run_id", run.RunID, "error", err)
		run.Script = &domain.Script{}
		return nil
	}

	for _, issue := range script.Validate(run.Mode) {
		slog.WarnContext(ctx, "台本の検証で警告が出ました", "run_id", run.RunID, "issue", issue)
	}

	slog.InfoContext(ctx, "台本を生成しました", "run_id", run.RunID, "panels", len(script.Panels))
	run.Script = script
	return nil
}

// parseScript は AI 応答のテキストから台本を取り出します。
func parseScript(raw string) (*domain.Script, error) {
	candidate := ai.ExtractJSON(raw)
	script := &domain.Script{}
	if err := json.Unmarshal([]byte(candidate), script); err != nil {
		return nil, fmt.Errorf("台本JSONの解析に失敗しました: %w", err)
	}
	return script, nil
}
