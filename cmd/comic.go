package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-comicgen-kit/internal/config"
	"github.com/shouni/go-comicgen-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// comicCmd は、お題から1ページ完結の解説漫画を生成するのだ。
var comicCmd = &cobra.Command{
	Use:   "comic [topic]",
	Short: "お題から1ページ完結の解説漫画を生成するのだ。",
	Long: `お題（または --from-url で取得したWebページ本文）から台本を生成し、
comicgen のキャラクター画像と吹き出しを組み合わせた解説漫画HTMLを出力するのだ。
--fast を付けると前回の台本と画像を読み戻して再利用するのだよ。`,
	Example: `  ap-comicgen-go comic "なぜ空は青いのか"
  ap-comicgen-go comic --from-url https://example.com/article --fast`,
	Args: cobra.MaximumNArgs(1),
	RunE: comicCommand,
}

func comicCommand(cmd *cobra.Command, args []string) error {
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

	slog.Info("解説漫画の生成パイプラインを起動するのだ！",
		"text_model", cfg.GeminiModel,
		"base_url", cfg.ComicBaseURL,
		"runs_dir", cfg.RunsDir,
		"fast", opts.FastMode)

	// 3. パイプライン実行
	if err := pipeline.ExecuteComic(ctx, cfg); err != nil {
		return fmt.Errorf("解説漫画の生成に失敗したのだ: %w", err)
	}

	return nil
}
