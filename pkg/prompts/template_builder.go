package prompts

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// PromptBuilder は、AIプロンプトを構築する契約です。
type PromptBuilder interface {
	Build(mode string, data TemplateData) (string, error)
}

// TextPromptBuilder は埋め込みテンプレート群を解析済みの状態で保持し、
// モード選択のロジックを内包します。
type TextPromptBuilder struct {
	templates map[string]*template.Template
}

// NewTextPromptBuilder は TextPromptBuilder を初期化します。
// 全テンプレートをこの時点で解析するため、壊れたテンプレートは起動時に検出されます。
func NewTextPromptBuilder() (*TextPromptBuilder, error) {
	parsedTemplates := make(map[string]*template.Template)
	for mode, content := range allTemplates {
		if content == "" {
			return nil, fmt.Errorf("プロンプトテンプレート '%s' (go:embed) の読み込みに失敗しました: 内容が空です", mode)
		}

		tmpl, err := template.New(mode).Parse(content)
		if err != nil {
			return nil, fmt.Errorf("プロンプト '%s' の解析に失敗: %w", mode, err)
		}
		parsedTemplates[mode] = tmpl
	}

	return &TextPromptBuilder{
		templates: parsedTemplates,
	}, nil
}

// Build は、要求されたモードに応じて適切なテンプレートを実行します。
func (b *TextPromptBuilder) Build(mode string, data TemplateData) (string, error) {
	tmpl, ok := b.templates[mode]
	if !ok {
		return "", fmt.Errorf("不明なモードです: '%s' (サポート対象: %s)", mode, strings.Join(b.Modes(), ", "))
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("プロンプトテンプレートの実行に失敗しました: %w", err)
	}

	return sb.String(), nil
}

// Modes はサポートしているモード名を辞書順で返します。
func (b *TextPromptBuilder) Modes() []string {
	modes := make([]string, 0, len(b.templates))
	for mode := range b.templates {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	return modes
}

// AugmentWithError は失敗理由を元プロンプトへ追記した再試行用プロンプトを返します。
// AI への指示文なので英語で組み立てます。
func AugmentWithError(prompt string, cause error) string {
	if cause == nil {
		return prompt
	}
	return fmt.Sprintf("%s\n\nFailed to parse JSON. Error: %v. Please correct the JSON schema and try again.", prompt, cause)
}
