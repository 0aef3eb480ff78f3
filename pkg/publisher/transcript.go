package publisher

import (
	"fmt"
	"strings"

	"github.com/shouni/go-comicgen-kit/pkg/compose"
	"github.com/shouni/go-comicgen-kit/pkg/domain"
)

// placeholderImageName はアセット未解決のインスタンスに充てる画像名なのだ。
const placeholderImageName = "placeholder.png"

// BuildTranscript は、台本とアセット表から構造化された台詞記録の
// Markdown 文字列を生成します。話者名はハッシュ化した CSS 安全な ID で
// 出力し、セリフからは演出用のメタタグを取り除きます。
// 保存処理を伴わないため、Webハンドラーでの表示用にもそのまま使えます。
func BuildTranscript(run *domain.Run) string {
	var sb strings.Builder

	// 1. タイトルの出力（依頼文をそのまま見出しに使う）
	sb.WriteString(fmt.Sprintf("# %s\n\n", run.UserPrompt))

	if run.Script == nil {
		return sb.String()
	}

	for pi, panel := range run.Script.Panels {
		// 2. パネルヘッダーの出力
		sb.WriteString(fmt.Sprintf("## Panel %d: %s\n", pi+1, panel.Concept))
		sb.WriteString("- layout: standard\n")

		for ci, ch := range panel.Characters {
			imagePath := placeholderImageName
			if resolved, ok := run.Assets[domain.InstanceID(pi, ci)]; ok {
				imagePath = resolved
			}

			// 3. 話者の処理（日本語名でも CSS 安全な ID になる）
			sb.WriteString(fmt.Sprintf("- speaker: %s\n", compose.SpeakerID(ch.Name)))
			sb.WriteString(fmt.Sprintf("- image: %s\n", imagePath))

			// 4. セリフの出力（メタタグを除去した表示用テキスト）
			if text := compose.StripDialogueTags(ch.Dialogue); text != "" {
				sb.WriteString(fmt.Sprintf("- text: %s\n", text))
			} else {
				sb.WriteString("- type: none\n")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
