package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// scriptedOracle はテスト用の TextOracle です。応答を順番に返します。
type scriptedOracle struct {
	responses []string
	errs      []error
	prompts   []string
}

func (o *scriptedOracle) Generate(_ context.Context, prompt string) (string, error) {
	o.prompts = append(o.prompts, prompt)
	i := len(o.prompts) - 1
	if i < len(o.errs) && o.errs[i] != nil {
		return "", o.errs[i]
	}
	if i < len(o.responses) {
		return o.responses[i], nil
	}
	return "", errors.New("scripted responses exhausted")
}

func TestRetryLoop_Do(t *testing.T) {
	t.Run("正常系: 初回で受理されればそのまま返す", func(t *testing.T) {
		oracle := &scriptedOracle{responses: []string{"ok"}}
		loop := &RetryLoop{Oracle: oracle}

		got, err := loop.Do(context.Background(), "p", func(raw string) error { return nil })
		if err != nil {
			t.Fatalf("Do がエラーを返しました: %v", err)
		}
		if got != "ok" {
			t.Errorf("応答 = %q, want %q", got, "ok")
		}
		if len(oracle.prompts) != 1 {
			t.Errorf("試行回数 = %d, want 1", len(oracle.prompts))
		}
	})

	t.Run("正常系: 失敗理由が次のプロンプトへ織り込まれる", func(t *testing.T) {
		oracle := &scriptedOracle{responses: []string{"bad", "good"}}
		loop := &RetryLoop{
			Oracle: oracle,
			Augment: func(prompt string, cause error) string {
				return fmt.Sprintf("%s\n\nPrevious attempt failed: %v", prompt, cause)
			},
		}

		accept := func(raw string) error {
			if raw != "good" {
				return errors.New("emotion \"meh\" is not allowed")
			}
			return nil
		}
		got, err := loop.Do(context.Background(), "base prompt", accept)
		if err != nil {
			t.Fatalf("Do がエラーを返しました: %v", err)
		}
		if got != "good" {
			t.Errorf("応答 = %q, want %q", got, "good")
		}
		if len(oracle.prompts) != 2 {
			t.Fatalf("試行回数 = %d, want 2", len(oracle.prompts))
		}
		second := oracle.prompts[1]
		if !strings.Contains(second, "base prompt") || !strings.Contains(second, `emotion "meh" is not allowed`) {
			t.Errorf("2回目のプロンプトに失敗理由が織り込まれていません: %q", second)
		}
	})

	t.Run("正常系: 織り込みは常に元プロンプトを基準にする", func(t *testing.T) {
		oracle := &scriptedOracle{responses: []string{"bad", "bad", "good"}}
		loop := &RetryLoop{
			Oracle:  oracle,
			Augment: func(prompt string, cause error) string { return prompt + " +hint" },
		}

		accept := func(raw string) error {
			if raw != "good" {
				return errors.New("rejected")
			}
			return nil
		}
		if _, err := loop.Do(context.Background(), "base", accept); err != nil {
			t.Fatalf("Do がエラーを返しました: %v", err)
		}
		// 3回目のプロンプトにヒントが重なって蓄積してはいけません。
		if got := oracle.prompts[2]; got != "base +hint" {
			t.Errorf("3回目のプロンプト = %q, want %q", got, "base +hint")
		}
	})

	t.Run("異常系: 全試行が尽きたら ErrAttemptsExhausted を返す", func(t *testing.T) {
		oracle := &scriptedOracle{responses: []string{"a", "b", "c"}}
		loop := &RetryLoop{Oracle: oracle, MaxAttempts: 3}

		_, err := loop.Do(context.Background(), "p", func(raw string) error {
			return errors.New("never acceptable")
		})
		if !errors.Is(err, ErrAttemptsExhausted) {
			t.Fatalf("ErrAttemptsExhausted が返りません: %v", err)
		}
		if len(oracle.prompts) != 3 {
			t.Errorf("試行回数 = %d, want 3", len(oracle.prompts))
		}
	})

	t.Run("異常系: 通信エラーも試行として数える", func(t *testing.T) {
		oracle := &scriptedOracle{
			responses: []string{"", "good"},
			errs:      []error{errors.New("transport down"), nil},
		}
		loop := &RetryLoop{Oracle: oracle}

		got, err := loop.Do(context.Background(), "p", func(raw string) error { return nil })
		if err != nil {
			t.Fatalf("Do がエラーを返しました: %v", err)
		}
		if got != "good" {
			t.Errorf("応答 = %q, want %q", got, "good")
		}
	})

	t.Run("異常系: コンテキスト取り消しで打ち切る", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		oracle := &scriptedOracle{responses: []string{"ok"}}
		loop := &RetryLoop{Oracle: oracle}
		if _, err := loop.Do(ctx, "p", func(raw string) error { return nil }); err == nil {
			t.Fatal("取り消し済みコンテキストでエラーが返りません")
		}
		if len(oracle.prompts) != 0 {
			t.Errorf("取り消し後に呼び出しが行われました: %d", len(oracle.prompts))
		}
	})
}
