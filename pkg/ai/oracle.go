// Package ai は生成 AI への問い合わせを抽象化します。
// パイプラインの各ステージはここで定義する TextOracle だけに依存し、
// 実際の通信（Gemini クライアント、一時的エラーの再試行、呼び出しの
// ペーシング）はこのパッケージに集約します。
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"golang.org/x/time/rate"
)

// TextOracle は1回のテキスト生成要求です。応答は生のテキストで返します。
type TextOracle interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	// transportInitialInterval は一時的エラー時の初回待機時間です。
	transportInitialInterval = 3 * time.Second
	// transportMaxRetries は一時的エラーに対する再試行回数の上限です。
	transportMaxRetries = 4
)

// GeminiOracle は Gemini クライアントを TextOracle として使うための薄い皮です。
// 一時的な通信エラーはジッター付き指数バックオフで再試行します。
type GeminiOracle struct {
	client  gemini.GenerativeModel
	model   string
	limiter *rate.Limiter
}

// NewGeminiOracle は GeminiOracle を生成します。limiter は nil でも構いません。
// nil のときは呼び出しのペーシングを行いません。
func NewGeminiOracle(client gemini.GenerativeModel, model string, limiter *rate.Limiter) *GeminiOracle {
	return &GeminiOracle{client: client, model: model, limiter: limiter}
}

// Generate はプロンプトを送り、応答テキストを返します。
func (o *GeminiOracle) Generate(ctx context.Context, prompt string) (string, error) {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("AI 呼び出しの順番待ちが中断されました: %w", err)
		}
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = transportInitialInterval

	var text string
	operation := func() error {
		resp, err := o.client.GenerateContent(ctx, prompt, o.model)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			slog.Warn("AI 呼び出しに失敗したため再試行します", "model", o.model, "error", err)
			return err
		}
		text = resp.Text
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, transportMaxRetries), ctx))
	if err != nil {
		return "", fmt.Errorf("AI 応答の取得に失敗しました (model=%s): %w", o.model, err)
	}
	return text, nil
}
