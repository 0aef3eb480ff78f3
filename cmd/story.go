package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-comicgen-kit/internal/config"
	"github.com/shouni/go-comicgen-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// storyCmd は、お題から複数ページのストーリー漫画を錬成するのだ！
var storyCmd = &cobra.Command{
	Use:   "story [topic]",
	Short: "お題から複数ページのストーリー漫画を生成するのだ！",
	Long: `お題から長めの台本を生成し、3パネルずつページに割り付けた
ページ送り付きのストーリー漫画（目次 + 各ページHTML）を出力するのだ。`,
	Example: `  ap-comicgen-go story "宇宙エレベーターの一日"
  ap-comicgen-go story "宇宙エレベーターの一日" --fast --run-id 2f9a...`,
	Args: cobra.MaximumNArgs(1),
	RunE: storyCommand,
}

// storyCommand は、story サブコマンドの実行ロジック本体なのだ。
func storyCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if len(args) > 0 {
		opts.Topic = args[0]
	}
	if opts.Topic == "" && opts.FromURL == "" {
		return fmt.Errorf("お題（引数 または --from-url）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードし、指定されたフラグで上書きするのだ
	cfg := config.LoadConfig()
	cfg.ApplyOptions(opts)

	slog.Info("ストーリー漫画の生成パイプラインを起動するのだ！",
		"text_model", cfg.GeminiModel,
		"base_url", cfg.ComicBaseURL,
		"runs_dir", cfg.RunsDir,
		"fast", opts.FastMode)

	// 3. パイプライン実行（物語の錬成なのだ！）
	if err := pipeline.ExecuteStory(ctx, cfg); err != nil {
		return fmt.Errorf("ストーリー漫画の生成に失敗したのだ: %w", err)
	}

	return nil
}
