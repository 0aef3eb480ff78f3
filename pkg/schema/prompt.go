package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Roster はディレクター用プロンプトに埋め込むキャラクター一覧を返します。
// 種別の辞書順で安定しています。
func Roster() string {
	var b strings.Builder
	for _, k := range Kinds() {
		fmt.Fprintf(&b, "- %q: %s\n", string(k), kindDescriptions[k])
	}
	return strings.TrimRight(b.String(), "\n")
}

// PromptSchema はコンフィギュレーター用プロンプトに埋め込むスキーマ全文を
// 返します。全種別の属性語彙を列挙した決定的なカタログで、同じ語彙表から
// は常に同じ文字列が得られます。
func PromptSchema() string {
	var b strings.Builder
	b.WriteString("Return ONE JSON object with exactly this shape:\n")
	b.WriteString(`{"visuals": {"mirror": <bool>, "box": "<shape>", "boxcolor": "<#RRGGBB>"}, "character_data": {...}}`)
	b.WriteString("\n\n")
	b.WriteString("visuals.box must be one of: \"\" (no background), \"box\", \"circle\", \"outline\".\n")
	b.WriteString("visuals.boxcolor is a hex color code such as \"#FFFFFF\" (defaults to \"#000000\").\n")
	b.WriteString("Set visuals.mirror to true to flip the character horizontally.\n\n")
	b.WriteString("character_data must match EXACTLY ONE of the kinds below. The \"character\" field selects the kind. Do not add fields that are not listed.\n")

	for _, k := range Kinds() {
		b.WriteString("\n")
		writeKindSchema(&b, k)
	}
	return b.String()
}

func writeKindSchema(b *strings.Builder, k Kind) {
	fmt.Fprintf(b, "### kind %q: %s\n", string(k), kindDescriptions[k])
	switch {
	case k == KindAavatar:
		b.WriteString(`Shape: {"character": "aavatar", "head": {"gender", "hairstyle"}, "face": {"style", "emotion"}, "body": {"attire", "pose"}}` + "\n")
		fmt.Fprintf(b, "head.gender: %s\n", aavatarGenders)
		for _, gender := range sortedKeys(aavatarHairstyles) {
			fmt.Fprintf(b, "head.hairstyle (gender=%s): %s\n", gender, aavatarHairstyles[gender])
		}
		fmt.Fprintf(b, "face.style: %s\n", aavatarFaceStyles)
		fmt.Fprintf(b, "face.emotion: %s\n", aavatarEmotions)
		for _, attire := range sortedKeys(aavatarPoses) {
			fmt.Fprintf(b, "body.pose (attire=%s): %s\n", attire, aavatarPoses[attire])
		}
	case anglePersonas[k] != nil:
		fmt.Fprintf(b, `Shape: {"character": %q, "properties": {"angle", "emotion", "pose"}}`+"\n", string(k))
		angles := anglePersonas[k]
		fmt.Fprintf(b, "properties.angle: %s\n", angleNames(angles))
		for _, angle := range angleNames(angles) {
			av := angles[angle]
			fmt.Fprintf(b, "properties.emotion (angle=%s): %s\n", angle, av.emotions)
			fmt.Fprintf(b, "properties.pose (angle=%s): %s\n", angle, av.poses)
		}
	default:
		fmt.Fprintf(b, `Shape: {"character": %q, "emotion": "...", "pose": "..."}`+"\n", string(k))
		fv := flatPersonas[k]
		fmt.Fprintf(b, "emotion: %s\n", fv.emotions)
		fmt.Fprintf(b, "pose: %s\n", fv.poses)
	}
}

func sortedKeys(m map[string]vocab) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
