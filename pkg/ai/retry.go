package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrAttemptsExhausted は全試行が受理されずに終わったことを示します。
// 呼び出し側はフォールバック（プレースホルダーなど）へ切り替えます。
var ErrAttemptsExhausted = errors.New("全試行が受理されませんでした")

// DefaultMaxAttempts はスキーマ違反に対する再指示の既定試行回数です。
const DefaultMaxAttempts = 3

// RetryLoop はスキーマ違反をプロンプトに織り込みながら再試行する方針です。
// 通信層の一時的エラーの再試行（GeminiOracle 側）とは独立しています。
type RetryLoop struct {
	Oracle      TextOracle
	MaxAttempts int
	// Augment は失敗理由を元プロンプトへ織り込み、次の試行用の
	// プロンプトを作ります。nil のときは元プロンプトを使い回します。
	Augment func(prompt string, cause error) string
}

// Do は accept が nil を返すまで試行を繰り返し、受理された応答を返します。
// accept の失敗は Augment を通じて次の試行へフィードバックされます。
func (l *RetryLoop) Do(ctx context.Context, prompt string, accept func(raw string) error) (string, error) {
	maxAttempts := l.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	current := prompt
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("再試行が中断されました: %w", err)
		}

		raw, err := l.Oracle.Generate(ctx, current)
		if err == nil {
			if err = accept(raw); err == nil {
				return raw, nil
			}
		}

		lastErr = err
		slog.Warn("応答が受理されなかったため再試行します",
			"attempt", attempt, "max_attempts", maxAttempts, "reason", err)
		if l.Augment != nil {
			current = l.Augment(prompt, err)
		}
	}

	return "", fmt.Errorf("%w (試行 %d 回, 最終原因: %v)", ErrAttemptsExhausted, maxAttempts, lastErr)
}
