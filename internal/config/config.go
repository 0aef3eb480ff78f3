package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"

	"github.com/shouni/go-comicgen-kit/pkg/schema"
)

// デフォルト値の定義なのだ
const (
	DefaultModel        = "gemini-3-flash-preview"
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultRateInterval = 2 * time.Second // comicgen サービスへの配慮としてのペーシング間隔
	DefaultRunsDir      = "output/runs"   // 実行ディレクトリの親（ローカル or gs://...）
)

// Config はアプリケーション全体の環境設定（APIキーやクラウド設定）を保持する構造体なのだ。
type Config struct {
	ProjectID    string
	LocationID   string
	GeminiAPIKey string
	GeminiModel  string
	ComicBaseURL string
	RunsDir      string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		ProjectID:    envutil.GetEnv("PROJECT_ID", ""),
		LocationID:   envutil.GetEnv("REGION", ""),
		GeminiAPIKey: envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:  envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		ComicBaseURL: envutil.GetEnv("COMICGEN_BASE_URL", schema.DefaultBaseURL),
		RunsDir:      envutil.GetEnv("COMIC_RUNS_DIR", DefaultRunsDir),
	}
	return cfg
}

// ApplyOptions は CLI フラグで明示された値だけを設定に上書きするのだ。
// 空のまま残されたフラグは環境変数由来の値を尊重するのだ。
func (c *Config) ApplyOptions(opts GenerateOptions) {
	if opts.AIModel != "" {
		c.GeminiModel = opts.AIModel
	}
	if opts.BaseURL != "" {
		c.ComicBaseURL = opts.BaseURL
	}
	if opts.RunsDir != "" {
		c.RunsDir = opts.RunsDir
	}
	c.Options = opts
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	Topic   string // 位置引数: 漫画にするお題
	FromURL string // --from-url: お題を抽出するWebページ

	// 実行制御
	FastMode bool   // --fast: 直前の実行の台本とアセットを再利用する
	RunID    string // --run-id: 再利用・再出力する実行を明示する
	RunsDir  string // --runs-dir

	// AI挙動設定
	AIModel string // --model: テキスト生成用のGeminiモデル
	BaseURL string // --base-url: レンダリングサービスのエンドポイント

	// 通信調整
	HTTPTimeout  time.Duration // --http-timeout
	RateInterval time.Duration // --rate-interval
}
