package asset

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shouni/go-comicgen-kit/pkg/ai"
	"github.com/shouni/go-comicgen-kit/pkg/prompts"
	"github.com/shouni/go-comicgen-kit/pkg/schema"
)

// Request は1インスタンス分の設定生成に渡すパネル文脈です。
type Request struct {
	InstanceID string
	Name       string
	VisualDesc string
	Slot       string
	Facing     string
	Pose       string
	Expression string
	// PreviousStyle は同名キャラクターの確定済みスタイル（JSON 文字列）です。
	// 空のときは初登場として扱います。
	PreviousStyle string
}

// Configurator は AI にキャラクター設定を生成させ、スキーマで厳密に検証します。
// スキーマ違反は英語のエラー文ごとプロンプトへ織り込んで再試行します。
type Configurator struct {
	loop    *ai.RetryLoop
	builder prompts.PromptBuilder
}

// NewConfigurator は Configurator を生成します。
func NewConfigurator(oracle ai.TextOracle, builder prompts.PromptBuilder) *Configurator {
	return &Configurator{
		loop: &ai.RetryLoop{
			Oracle:      oracle,
			MaxAttempts: ai.DefaultMaxAttempts,
			Augment:     prompts.AugmentWithError,
		},
		builder: builder,
	}
}

// Configure は設定を生成して検証し、確定した設定と正規化済み JSON を返します。
// 返る JSON は params/ への永続化とスタイルキャッシュの両方に使います。
func (c *Configurator) Configure(ctx context.Context, req Request) (*schema.CharacterConfig, []byte, error) {
	prompt, err := c.builder.Build(prompts.ModeConfigurator, prompts.TemplateData{
		CharacterName: req.Name,
		VisualDesc:    req.VisualDesc,
		Slot:          req.Slot,
		Facing:        req.Facing,
		Pose:          req.Pose,
		Expression:    req.Expression,
		PreviousStyle: req.PreviousStyle,
		Schema:        schema.PromptSchema(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("設定プロンプトの構築に失敗しました: %w", err)
	}

	var cfg *schema.CharacterConfig
	if _, err := c.loop.Do(ctx, prompt, func(raw string) error {
		decoded, decodeErr := schema.Decode([]byte(ai.ExtractJSON(raw)))
		if decodeErr != nil {
			return decodeErr
		}
		cfg = decoded
		return nil
	}); err != nil {
		return nil, nil, fmt.Errorf("キャラクター設定の生成に失敗しました (%s): %w", req.Name, err)
	}

	normalized, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("設定JSONの整形に失敗しました: %w", err)
	}
	return cfg, normalized, nil
}
