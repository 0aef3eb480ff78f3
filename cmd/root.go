package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-comicgen-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は全サブコマンド共通のフラグ束なのだ。addAppFlags で各フラグと紐付く。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
// モデル名や保存先は環境変数でも指定できるため、フラグの既定値は空にして
// 「指定されたときだけ」設定を上書きする方式にしているのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.FromURL, "from-url", "u", "", "Webページからお題を取得するためのURLなのだ。")

	// --- 実行の再利用設定 ---
	rootCmd.PersistentFlags().BoolVar(&opts.FastMode, "fast", false, "前回の実行を読み戻して画像を再利用する高速モードなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.RunID, "run-id", "", "再利用する実行IDなのだ（省略時は最新の実行を使うのだ）。")
	rootCmd.PersistentFlags().StringVar(&opts.RunsDir, "runs-dir", "", "実行成果物の保存先なのだ（省略時は COMIC_RUNS_DIR か "+config.DefaultRunsDir+"）。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", "", "使用する Gemini モデル名なのだ（省略時は GEMINI_MODEL か "+config.DefaultModel+"）。")
	rootCmd.PersistentFlags().StringVar(&opts.BaseURL, "base-url", "", "comicgen サービスのベースURLなのだ（省略時は COMICGEN_BASE_URL）。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.RateInterval, "rate-interval", config.DefaultRateInterval, "キャラクター画像取得の最小リクエスト間隔なのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// catalog はローカルの語彙表を表示するだけなので、APIキーなしで動かせるのだ。
	if cmd.Name() == "catalog" {
		return nil
	}

	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-comicgen-go",
		addAppFlags,
		preRunAppE,
		comicCmd,
		storyCmd,
		catalogCmd,
	)
}
