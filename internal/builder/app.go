package builder

import (
	"github.com/shouni/go-comicgen-kit/internal/config"
	"github.com/shouni/go-comicgen-kit/pkg/workflow"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各実行関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config   *config.Config         // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options  config.GenerateOptions // Optionsは、コマンドラインから渡された実行時の設定です（お題、高速モードなど）。
	Reader   remoteio.InputReader   // Readerは、保存済み台本や外部データの読み込みに使用する入力元です。
	Writer   remoteio.OutputWriter  // Writerは、生成された成果物を保存するための出力先です。
	Workflow *workflow.Builder      // Workflowは、パイプラインと周辺部品を構築するビルダーです。

	aiClient   gemini.GenerativeModel  // aiClient はGeminiの通信に使う共通クライアント
	httpClient httpkit.ClientInterface // httpClient は外部APIとの通信に使う共通クライアント
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	httpClient httpkit.ClientInterface,
	aiClient gemini.GenerativeModel,
	reader remoteio.InputReader,
	writer remoteio.OutputWriter,
	wf *workflow.Builder,
) AppContext {
	return AppContext{
		Config:     cfg,
		Options:    cfg.Options,
		aiClient:   aiClient,
		httpClient: httpClient,
		Reader:     reader,
		Writer:     writer,
		Workflow:   wf,
	}
}
