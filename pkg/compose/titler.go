package compose

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shouni/go-comicgen-kit/pkg/ai"
	"github.com/shouni/go-comicgen-kit/pkg/domain"
	"github.com/shouni/go-comicgen-kit/pkg/prompts"
)

// TitleCard は作品の題字（タイトルとサブタイトル）です。
type TitleCard struct {
	Title    string
	Subtitle string
}

// defaultTitleCard は応答の解析を始める前の初期値です。
// Title:/Subtitle: 行が見つからなかった項目はこの値のまま残ります。
func defaultTitleCard(mode domain.Mode) TitleCard {
	if mode == domain.ModeStory {
		return TitleCard{Title: "Amazing Story", Subtitle: "A visual adventure."}
	}
	return TitleCard{Title: "Amazing Cartoon Explanation", Subtitle: "Featuring fun characters!"}
}

// fallbackTitleCard は題字の生成自体に失敗したときの値です。
func fallbackTitleCard(mode domain.Mode) TitleCard {
	if mode == domain.ModeStory {
		return TitleCard{Title: "Amazing Story", Subtitle: "A visual adventure."}
	}
	return TitleCard{Title: "Fun Cartoon Explanation", Subtitle: "Starring our heroes!"}
}

// Titler は AI に題字を1回だけ問い合わせます。失敗しても既定の題字で
// 続行し、エラーは返しません。
type Titler struct {
	oracle  ai.TextOracle
	builder prompts.PromptBuilder
}

// NewTitler は Titler を生成します。
func NewTitler(oracle ai.TextOracle, builder prompts.PromptBuilder) *Titler {
	return &Titler{oracle: oracle, builder: builder}
}

// Generate は依頼文に合う題字を生成します。
func (t *Titler) Generate(ctx context.Context, topic string, mode domain.Mode) TitleCard {
	promptMode := prompts.ModeTitleSingle
	if mode == domain.ModeStory {
		promptMode = prompts.ModeTitleStory
	}

	prompt, err := t.builder.Build(promptMode, prompts.TemplateData{Topic: topic})
	if err != nil {
		slog.WarnContext(ctx, "題字プロンプトの構築に失敗したため既定の題字を使います", "error", err)
		return fallbackTitleCard(mode)
	}

	raw, err := t.oracle.Generate(ctx, prompt)
	if err != nil {
		slog.WarnContext(ctx, "題字の生成に失敗したため既定の題字を使います", "error", err)
		return fallbackTitleCard(mode)
	}

	return ParseTitleResponse(raw, defaultTitleCard(mode))
}

// ParseTitleResponse は応答から Title:/Subtitle: 行を探して題字を組み立てます。
// 行が見つからない項目は defaults の値を保ちます。
func ParseTitleResponse(raw string, defaults TitleCard) TitleCard {
	card := defaults
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "Title:"); ok {
			card.Title = strings.TrimSpace(after)
		} else if after, ok := strings.CutPrefix(line, "Subtitle:"); ok {
			card.Subtitle = strings.TrimSpace(after)
		}
	}
	return card
}
