package compose

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shouni/go-comicgen-kit/pkg/domain"
	"github.com/shouni/go-comicgen-kit/pkg/prompts"
)

// titleOracle は決め打ちの応答を返すテスト用オラクルなのだ。
type titleOracle struct {
	response string
	err      error
	prompts  []string
}

func (o *titleOracle) Generate(_ context.Context, prompt string) (string, error) {
	o.prompts = append(o.prompts, prompt)
	if o.err != nil {
		return "", o.err
	}
	return o.response, nil
}

func newTestTitler(t *testing.T, oracle *titleOracle) *Titler {
	t.Helper()
	builder, err := prompts.NewTextPromptBuilder()
	if err != nil {
		t.Fatalf("プロンプトビルダーの初期化に失敗しました: %v", err)
	}
	return NewTitler(oracle, builder)
}

func TestParseTitleResponse(t *testing.T) {
	defaults := TitleCard{Title: "Default Title", Subtitle: "Default Subtitle"}

	tests := []struct {
		name string
		raw  string
		want TitleCard
	}{
		{
			name: "正常系: 両方の行を拾う",
			raw:  "Title: Gravity Explained\nSubtitle: A deep dive with Bean",
			want: TitleCard{Title: "Gravity Explained", Subtitle: "A deep dive with Bean"},
		},
		{
			name: "正常系: 行頭の空白や前置きがあっても拾う",
			raw:  "Sure! Here you go:\n\n  Title: Space Adventure  \n  Subtitle: To the stars!  \n",
			want: TitleCard{Title: "Space Adventure", Subtitle: "To the stars!"},
		},
		{
			name: "正常系: Title行だけならSubtitleは既定のまま",
			raw:  "Title: Only a Title",
			want: TitleCard{Title: "Only a Title", Subtitle: "Default Subtitle"},
		},
		{
			name: "正常系: どちらの行もなければ既定のまま",
			raw:  "I could not think of anything.",
			want: defaults,
		},
		{
			name: "正常系: 後の行が前の行を上書きする",
			raw:  "Title: First\nTitle: Second",
			want: TitleCard{Title: "Second", Subtitle: "Default Subtitle"},
		},
		{
			name: "エッジケース: 空の応答は既定のまま",
			raw:  "",
			want: defaults,
		},
		{
			name: "エッジケース: 値が空のTitle行は空文字で上書きする",
			raw:  "Title:\nSubtitle: Still here",
			want: TitleCard{Title: "", Subtitle: "Still here"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTitleResponse(tt.raw, defaults); got != tt.want {
				t.Errorf("ParseTitleResponse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTitler_Generate(t *testing.T) {
	t.Run("正常系: 応答を解析して題字を返す", func(t *testing.T) {
		oracle := &titleOracle{response: "Title: How Magnets Work\nSubtitle: Attraction explained!"}
		titler := newTestTitler(t, oracle)

		card := titler.Generate(context.Background(), "how magnets work", domain.ModeSingle)

		want := TitleCard{Title: "How Magnets Work", Subtitle: "Attraction explained!"}
		if card != want {
			t.Errorf("Generate() = %+v, want %+v", card, want)
		}
		if len(oracle.prompts) != 1 {
			t.Fatalf("オラクル呼び出し回数 = %d, want 1", len(oracle.prompts))
		}
		if !strings.Contains(oracle.prompts[0], "how magnets work") {
			t.Error("プロンプトに依頼文が含まれていません")
		}
	})

	t.Run("正常系: 解析できない応答は既定の題字を保つ", func(t *testing.T) {
		oracle := &titleOracle{response: "no usable lines here"}
		titler := newTestTitler(t, oracle)

		card := titler.Generate(context.Background(), "topic", domain.ModeStory)

		if card != defaultTitleCard(domain.ModeStory) {
			t.Errorf("Generate() = %+v, want ストーリー既定値", card)
		}
	})

	t.Run("異常系: 生成失敗時は単一ページ用の代替題字", func(t *testing.T) {
		oracle := &titleOracle{err: errors.New("quota exceeded")}
		titler := newTestTitler(t, oracle)

		card := titler.Generate(context.Background(), "topic", domain.ModeSingle)

		want := TitleCard{Title: "Fun Cartoon Explanation", Subtitle: "Starring our heroes!"}
		if card != want {
			t.Errorf("Generate() = %+v, want %+v", card, want)
		}
	})

	t.Run("異常系: 生成失敗時のストーリー用代替題字", func(t *testing.T) {
		oracle := &titleOracle{err: errors.New("quota exceeded")}
		titler := newTestTitler(t, oracle)

		card := titler.Generate(context.Background(), "topic", domain.ModeStory)

		want := TitleCard{Title: "Amazing Story", Subtitle: "A visual adventure."}
		if card != want {
			t.Errorf("Generate() = %+v, want %+v", card, want)
		}
	})
}
