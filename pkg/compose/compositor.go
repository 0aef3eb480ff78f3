// Package compose は確定した台本とアセットマップから最終成果物の
// HTML 文書群を組み立てるコンポジタを提供します。単一ページモードでは
// index.html を1枚、ストーリーモードでは目次 + ページ群を生成します。
// 部分的な失敗（タイトル生成・描画エラー）は本文に埋め込んで続行し、
// テンプレート自体の解析失敗だけを致命傷として扱います。
package compose

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/shouni/go-comicgen-kit/pkg/domain"
)

const (
	// IndexDocumentName は入口となる文書名です。単一ページモードでは
	// 漫画本体、ストーリーモードでは目次がこの名前になります。
	IndexDocumentName = "index.html"

	// noScriptBody は台本が空のまま終盤に到達したときの代替本文なのだ。
	noScriptBody = "Error: No script generated."
)

//go:embed templates/comic_page.html
var comicPageHTML string

//go:embed templates/story_page.html
var storyPageHTML string

//go:embed templates/story_index.html
var storyIndexHTML string

// pageDocumentName はストーリーモードの n ページ目の文書名を返すのだ。
func pageDocumentName(n int) string {
	return fmt.Sprintf("page_%d.html", n)
}

// Compositor は Run の台本・アセット・タイトルを HTML 文書群へ合成します。
type Compositor struct {
	titler     *Titler
	comicPage  *template.Template
	storyPage  *template.Template
	storyIndex *template.Template
}

// NewCompositor は埋め込みテンプレートを解析してコンポジタを構築します。
// テンプレートの解析失敗はフォールバックしようのない構成不備なので、
// ここでだけエラーを返します。
func NewCompositor(titler *Titler) (*Compositor, error) {
	comicPage, err := template.New("comic_page").Parse(comicPageHTML)
	if err != nil {
		return nil, fmt.Errorf("漫画ページテンプレートの解析に失敗しました: %w", err)
	}
	storyPage, err := template.New("story_page").Parse(storyPageHTML)
	if err != nil {
		return nil, fmt.Errorf("ストーリーページテンプレートの解析に失敗しました: %w", err)
	}
	storyIndex, err := template.New("story_index").Parse(storyIndexHTML)
	if err != nil {
		return nil, fmt.Errorf("目次テンプレートの解析に失敗しました: %w", err)
	}

	return &Compositor{
		titler:     titler,
		comicPage:  comicPage,
		storyPage:  storyPage,
		storyIndex: storyIndex,
	}, nil
}

// Compose は run.Documents を成果物一覧で置き換えます。台本が空の場合は
// エラー本文だけの index.html を、描画に失敗したページはエラー文を本文に
// 持つ文書を生成し、どちらもステージ失敗にはしません。
func (c *Compositor) Compose(ctx context.Context, run *domain.Run) error {
	if !run.HasScript() {
		slog.WarnContext(ctx, "台本が空のためエラーページのみを合成します", "run_id", run.RunID)
		run.Documents = []domain.Document{{Name: IndexDocumentName, HTML: noScriptBody}}
		return nil
	}

	card := c.titler.Generate(ctx, run.UserPrompt, run.Mode)
	panels := buildPanelViews(run.Script, run.Assets)

	if run.Mode == domain.ModeStory {
		c.composeStory(ctx, run, card, panels)
	} else {
		c.composeSingle(ctx, run, card, panels)
	}
	return nil
}

func (c *Compositor) composeSingle(ctx context.Context, run *domain.Run, card TitleCard, panels []PanelView) {
	view := PageView{
		Title:    card.Title,
		Subtitle: card.Subtitle,
		Panels:   panels,
	}
	run.Documents = []domain.Document{{
		Name: IndexDocumentName,
		HTML: c.renderOrErrorBody(ctx, c.comicPage, view),
	}}

	slog.InfoContext(ctx, "単一ページ漫画を合成しました",
		"run_id", run.RunID,
		"panels", len(panels),
		"title", card.Title,
	)
}

func (c *Compositor) composeStory(ctx context.Context, run *domain.Run, card TitleCard, panels []PanelView) {
	pages := chunkViews(panels, domain.PanelsPerPage)
	total := len(pages)

	pageDocs := make([]domain.Document, 0, total)
	indexEntries := make([]IndexEntry, 0, total)
	for i, pagePanels := range pages {
		num := i + 1

		// 1ページ目の「前へ」は目次に戻し、最終ページの「次へ」は出さないのだ。
		prev := pageDocumentName(num - 1)
		if num == 1 {
			prev = IndexDocumentName
		}
		next := ""
		if num < total {
			next = pageDocumentName(num + 1)
		}

		view := PageView{
			Title:      card.Title,
			Subtitle:   card.Subtitle,
			PageNum:    num,
			TotalPages: total,
			PrevLink:   prev,
			NextLink:   next,
			IndexLink:  IndexDocumentName,
			Panels:     pagePanels,
		}
		pageDocs = append(pageDocs, domain.Document{
			Name: pageDocumentName(num),
			HTML: c.renderOrErrorBody(ctx, c.storyPage, view),
		})
		indexEntries = append(indexEntries, IndexEntry{Num: num, Link: pageDocumentName(num)})
	}

	indexView := IndexView{
		Title:      card.Title,
		Subtitle:   card.Subtitle,
		TotalPages: total,
		StartLink:  pageDocumentName(1),
		Pages:      indexEntries,
	}
	documents := make([]domain.Document, 0, total+1)
	documents = append(documents, domain.Document{
		Name: IndexDocumentName,
		HTML: c.renderOrErrorBody(ctx, c.storyIndex, indexView),
	})
	documents = append(documents, pageDocs...)
	run.Documents = documents

	slog.InfoContext(ctx, "ストーリー漫画を合成しました",
		"run_id", run.RunID,
		"pages", total,
		"documents", len(documents),
		"title", card.Title,
	)
}

// renderOrErrorBody はテンプレートを描画し、失敗時にはエラー文そのものを
// 本文として返します。1文書の描画失敗で実行全体を落とさないためです。
func (c *Compositor) renderOrErrorBody(ctx context.Context, tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.ErrorContext(ctx, "テンプレートの描画に失敗しました",
			"template", tmpl.Name(),
			"error", err,
		)
		return fmt.Sprintf("Error rendering template: %v", err)
	}
	return buf.String()
}
