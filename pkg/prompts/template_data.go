// Package prompts はパイプラインが AI へ渡すプロンプトを組み立てます。
// テンプレート本文は go:embed でバイナリに埋め込み、モード名で選択します。
package prompts

import (
	_ "embed"
)

const (
	// ModeDirectorSingle は1ページ（3コマ）台本のディレクター用モードです。
	ModeDirectorSingle = "director_single"
	// ModeDirectorStory は複数ページ台本のディレクター用モードです。
	ModeDirectorStory = "director_story"
	// ModeConfigurator はキャラクター設定生成用モードです。
	ModeConfigurator = "configurator"
	// ModeTitleSingle は1ページ作品の題字生成用モードです。
	ModeTitleSingle = "title_single"
	// ModeTitleStory は物語作品の題字生成用モードです。
	ModeTitleStory = "title_story"
)

// TemplateData はプロンプトテンプレートへ流し込むデータ構造です。
// モードにより使うフィールドが異なります。未使用フィールドは空のままで構いません。
type TemplateData struct {
	// Topic は利用者の依頼文です。
	Topic string
	// Roster はディレクターへ提示するキャラクター一覧です。
	Roster string
	// Schema はコンフィギュレーターへ提示する設定スキーマ全文です。
	Schema string

	// 以下はコンフィギュレーター用のパネル文脈です。
	CharacterName string
	VisualDesc    string
	Slot          string
	Facing        string
	Pose          string
	Expression    string
	// PreviousStyle は同名キャラクターの確定済み設定（JSON 文字列）です。
	// 空のときは初登場として扱います。
	PreviousStyle string
}

var (
	//go:embed director_single.md
	directorSinglePrompt string
	//go:embed director_story.md
	directorStoryPrompt string
	//go:embed configurator.md
	configuratorPrompt string
	//go:embed title_single.md
	titleSinglePrompt string
	//go:embed title_story.md
	titleStoryPrompt string
)

// allTemplates はモードとテンプレート文字列を紐づけるマップなのだ。
var allTemplates = map[string]string{
	ModeDirectorSingle: directorSinglePrompt,
	ModeDirectorStory:  directorStoryPrompt,
	ModeConfigurator:   configuratorPrompt,
	ModeTitleSingle:    titleSinglePrompt,
	ModeTitleStory:     titleStoryPrompt,
}
