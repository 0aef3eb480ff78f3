// Package workflow は生成パイプラインの編成を担います。ステージの直列実行、
// 依存部品の組み立て、最新実行の記録、高速モードの再開をこの層に集約します。
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-comicgen-kit/pkg/domain"
)

// Stage はパイプラインの1工程です。Run に成果を書き足して返します。
// 部分的な失敗（生成不能・取得不能）はフォールバック値を Run に載せて
// nil を返すのが約束で、エラーを返すのは続行不能な障害だけです。
type Stage interface {
	Name() string
	Execute(ctx context.Context, run *domain.Run) error
}

// funcStage は関数を Stage として使うためのアダプタなのだ。
type funcStage struct {
	name string
	fn   func(ctx context.Context, run *domain.Run) error
}

func (s funcStage) Name() string { return s.name }

func (s funcStage) Execute(ctx context.Context, run *domain.Run) error {
	return s.fn(ctx, run)
}

// NewStage は名前付きの Stage を関数から作ります。
func NewStage(name string, fn func(ctx context.Context, run *domain.Run) error) Stage {
	return funcStage{name: name, fn: fn}
}

// Pipeline は Stage を宣言順に直列実行する状態機械です。
// 工程間の再試行や分岐は持ちません。再試行は各ステージの内側の責務です。
type Pipeline struct {
	stages []Stage
}

// NewPipeline は与えた順序で実行されるパイプラインを作ります。
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run は全ステージを順に実行します。いずれかのステージがエラーを返すか、
// コンテキストが打ち切られた時点で中断し、以降のステージは実行しません。
func (p *Pipeline) Run(ctx context.Context, run *domain.Run) error {
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("パイプラインが中断されました: %w", err)
		}

		start := time.Now()
		slog.InfoContext(ctx, "ステージを開始します", "stage", stage.Name(), "run_id", run.RunID)

		if err := stage.Execute(ctx, run); err != nil {
			return fmt.Errorf("ステージ %s が失敗しました: %w", stage.Name(), err)
		}

		slog.InfoContext(ctx, "ステージが完了しました",
			"stage", stage.Name(),
			"run_id", run.RunID,
			"duration", time.Since(start),
		)
	}
	return nil
}
