package workflow

import (
	"fmt"
	"time"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"

	"github.com/shouni/go-comicgen-kit/pkg/ai"
	"github.com/shouni/go-comicgen-kit/pkg/asset"
	"github.com/shouni/go-comicgen-kit/pkg/compose"
	"github.com/shouni/go-comicgen-kit/pkg/director"
	"github.com/shouni/go-comicgen-kit/pkg/prompts"
	"github.com/shouni/go-comicgen-kit/pkg/publisher"
)

// BuilderArgs は Builder の組み立てに必要な依存部品です。
// 外部クライアントの生成は呼び出し側（アプリケーション層）の責務とし、
// この層は受け取った部品の配線だけを行います。
type BuilderArgs struct {
	Oracle     ai.TextOracle
	HTTPClient asset.HTTPDoer
	Reader     remoteio.InputReader
	Writer     remoteio.OutputWriter

	// HTMLRunner は台詞記録の HTML 変換器です。nil なら変換を省略します。
	HTMLRunner md2htmlrunner.Runner

	// BaseURL はレンダリングサービスのエンドポイントです。空なら既定値を使います。
	BaseURL string
	// RunsDir は全実行ディレクトリの親です（ローカルパスまたは GCS URI）。
	RunsDir string
	// RateInterval はアセット解決ワーカーのペーシング間隔です。ゼロなら既定値を使います。
	RateInterval time.Duration
}

// Builder はパイプラインの各工程と周辺部品を構築・管理するのだ。
type Builder struct {
	args    BuilderArgs
	prompts prompts.PromptBuilder
}

// NewBuilder は依存部品を検証して新しい Builder を作成します。
func NewBuilder(args BuilderArgs) (*Builder, error) {
	if args.Oracle == nil {
		return nil, fmt.Errorf("oracle は必須です")
	}
	if args.HTTPClient == nil {
		return nil, fmt.Errorf("httpClient は必須です")
	}
	if args.Reader == nil {
		return nil, fmt.Errorf("InputReader は必須です")
	}
	if args.Writer == nil {
		return nil, fmt.Errorf("OutputWriter は必須です")
	}
	if args.RunsDir == "" {
		return nil, fmt.Errorf("runsDir は必須です")
	}

	pb, err := prompts.NewTextPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("プロンプトビルダーの作成に失敗しました: %w", err)
	}

	return &Builder{args: args, prompts: pb}, nil
}

// BuildPipeline は Director → AssetResolver → Compositor の直列パイプラインを構築します。
func (b *Builder) BuildPipeline() (*Pipeline, error) {
	d := director.New(b.args.Oracle, b.prompts)

	resolver := asset.NewResolver(asset.ResolverConfig{
		Configurator: asset.NewConfigurator(b.args.Oracle, b.prompts),
		HTTPClient:   b.args.HTTPClient,
		Writer:       b.args.Writer,
		BaseURL:      b.args.BaseURL,
		RunsDir:      b.args.RunsDir,
		RateInterval: b.args.RateInterval,
	})

	compositor, err := compose.NewCompositor(compose.NewTitler(b.args.Oracle, b.prompts))
	if err != nil {
		return nil, fmt.Errorf("コンポジタの初期化に失敗しました: %w", err)
	}

	return NewPipeline(
		NewStage("director", d.Direct),
		NewStage("asset_resolver", resolver.Resolve),
		NewStage("compositor", compositor.Compose),
	), nil
}

// BuildPublisher は成果物のパブリッシャーを構築します。
func (b *Builder) BuildPublisher() *publisher.Publisher {
	return publisher.NewPublisher(b.args.Writer, b.args.HTMLRunner)
}

// BuildRegistry は最新実行レジストリを構築します。
func (b *Builder) BuildRegistry() *Registry {
	return NewRegistry(b.args.RunsDir, b.args.Reader, b.args.Writer)
}

// BuildResumer は高速モードの再開器を構築します。
func (b *Builder) BuildResumer() *Resumer {
	return NewResumer(b.args.Reader, b.args.RunsDir)
}
