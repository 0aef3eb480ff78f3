package compose

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// 吹き出しの種類です。テンプレート側の CSS クラス名に一致します。
const (
	DialogueNormal  = "normal"
	DialogueShout   = "shout"
	DialogueThought = "thought"
)

// DetermineDialogueType はセリフに含まれるメタタグから吹き出しの種類を判定します。
func DetermineDialogueType(text string) string {
	switch {
	case strings.Contains(text, "[shout]"):
		return DialogueShout
	case strings.Contains(text, "[thought]"):
		return DialogueThought
	default:
		return DialogueNormal
	}
}

// StripDialogueTags は表示用テキストからメタタグを取り除きます。
func StripDialogueTags(text string) string {
	text = strings.ReplaceAll(text, "[shout]", "")
	text = strings.ReplaceAll(text, "[thought]", "")
	return strings.TrimSpace(text)
}

// SpeakerID は話者名から CSS 安全なハッシュ ID を生成します。
// 同じ名前からは常に同じ ID が得られます。
func SpeakerID(name string) string {
	if name == "" {
		return "speaker-narration"
	}
	h := sha256.New()
	h.Write([]byte(strings.ToLower(name)))
	return "speaker-" + hex.EncodeToString(h.Sum(nil))[:10]
}
