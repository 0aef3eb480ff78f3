// Package pipeline は、CLIコマンドから呼び出される実行フローの最上位層です。
// 依存クライアントの初期化、お題の解決、生成パイプラインの実行、成果物の保存までを束ねます。
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-comicgen-kit/internal/builder"
	"github.com/shouni/go-comicgen-kit/internal/config"
	"github.com/shouni/go-comicgen-kit/pkg/ai"
	"github.com/shouni/go-comicgen-kit/pkg/asset"
	"github.com/shouni/go-comicgen-kit/pkg/domain"
	"github.com/shouni/go-comicgen-kit/pkg/publisher"
	"github.com/shouni/go-comicgen-kit/pkg/workflow"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// ExecuteComic は、単一ページの解説漫画を生成して保存するのだ。
func ExecuteComic(ctx context.Context, cfg *config.Config) error {
	return executeRun(ctx, cfg, domain.ModeSingle)
}

// ExecuteStory は、複数ページのストーリー漫画を生成して保存するのだ。
func ExecuteStory(ctx context.Context, cfg *config.Config) error {
	return executeRun(ctx, cfg, domain.ModeStory)
}

// executeRun は全モード共通の実行フローです。
func executeRun(ctx context.Context, cfg *config.Config, mode domain.Mode) error {
	// 1. 依存クライアントとワークフロービルダーを準備する
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	// 2. お題を確定する（--from-url 指定時はページ本文を抽出する）
	topic, err := resolveTopic(ctx, appCtx)
	if err != nil {
		return err
	}

	run := domain.NewRun(topic, mode, appCtx.Options.FastMode)

	// 3. 高速モードなら過去の実行を読み戻して画像を再利用する
	registry := appCtx.Workflow.BuildRegistry()
	prepareRun(ctx, appCtx, registry, &run)

	// 4. 台本 → 画像 → HTML のパイプラインを実行する
	pipeline, err := appCtx.Workflow.BuildPipeline()
	if err != nil {
		return err
	}
	if err := pipeline.Run(ctx, &run); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	// 5. 成果物を実行ディレクトリへ書き出す
	runDir, err := asset.RunDir(cfg.RunsDir, run.RunID)
	if err != nil {
		return fmt.Errorf("実行ディレクトリの解決に失敗しました: %w", err)
	}
	result, err := appCtx.Workflow.BuildPublisher().Publish(ctx, &run, publisher.Options{RunDir: runDir})
	if err != nil {
		return fmt.Errorf("成果物の保存に失敗しました: %w", err)
	}

	// 6. 最新実行を記録する。失敗しても成果物は揃っているため中断しない。
	if err := registry.Record(ctx, run.RunID); err != nil {
		slog.WarnContext(ctx, "最新実行の記録に失敗しました", "error", err)
	}

	primary := result.PrimaryPath(mode)
	slog.InfoContext(ctx, "すべての生成工程が完了したのだ！", "run_id", run.RunID, "primary", primary)
	fmt.Println(primary)
	return nil
}

// prepareRun は、明示された実行IDと高速モードの指定を run に反映するのだ。
// 読み戻しに失敗した場合は警告だけ残し、通常の全生成へ切り替える。
func prepareRun(ctx context.Context, appCtx *builder.AppContext, registry *workflow.Registry, run *domain.Run) {
	opts := appCtx.Options
	if opts.RunID != "" {
		run.RunID = opts.RunID
	}

	if !opts.FastMode {
		return
	}

	if opts.RunID == "" {
		latest, err := registry.Latest(ctx)
		if err != nil {
			slog.WarnContext(ctx, "再利用できる実行が見つからないため新規に生成します", "error", err)
			return
		}
		run.RunID = latest
	}

	if err := appCtx.Workflow.BuildResumer().Resume(ctx, run); err != nil {
		slog.WarnContext(ctx, "保存済み実行の読み戻しに失敗したため新規に生成します", "run_id", run.RunID, "error", err)
	}
}

// resolveTopic は、コマンド引数または --from-url の抽出結果からお題を決定します。
func resolveTopic(ctx context.Context, appCtx *builder.AppContext) (string, error) {
	opts := appCtx.Options
	if opts.FromURL == "" {
		if strings.TrimSpace(opts.Topic) == "" {
			return "", fmt.Errorf("お題（引数 または --from-url）を指定してほしいのだ")
		}
		return opts.Topic, nil
	}

	extractor, err := appCtx.BuildExtractor()
	if err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "Webページからお題を抽出します", "url", opts.FromURL)
	text, _, err := extractor.FetchAndExtractText(ctx, opts.FromURL)
	if err != nil {
		return "", fmt.Errorf("お題の抽出に失敗しました: %w", err)
	}

	topic := strings.TrimSpace(text)
	if topic == "" {
		return "", fmt.Errorf("抽出したページ本文が空でした: %s", opts.FromURL)
	}
	return topic, nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
// ライフサイクル管理用の context と設定オブジェクトを受け取るのだ。
// 初期化中にエラーが発生した場合は、AppContext のポインタとエラーを返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	aiClient, err := builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	htmlRunner, err := builder.BuildHTMLRunner()
	if err != nil {
		return nil, err
	}

	oracle := ai.NewGeminiOracle(aiClient, cfg.GeminiModel, nil)

	// ワークフロービルダーを一度だけ初期化
	wf, err := workflow.NewBuilder(workflow.BuilderArgs{
		Oracle:       oracle,
		HTTPClient:   httpClient,
		Reader:       reader,
		Writer:       writer,
		HTMLRunner:   htmlRunner,
		BaseURL:      cfg.ComicBaseURL,
		RunsDir:      cfg.RunsDir,
		RateInterval: cfg.Options.RateInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("ワークフロービルダーの初期化に失敗しました: %w", err)
	}

	appCtx := builder.NewAppContext(cfg, httpClient, aiClient, reader, writer, wf)
	return &appCtx, nil
}
