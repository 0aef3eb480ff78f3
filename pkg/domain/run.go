package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// InstanceID は「第何パネルの何人目か」を表す実行内一意のキーを生成します。
// キャラクター名ではなくこのキーでアセットを引くのは、同名キャラクターが
// パネルごとに異なるポーズ・表情で再登場するためです。
func InstanceID(panelIdx, charIdx int) string {
	return fmt.Sprintf("%d_%d", panelIdx, charIdx)
}

// AssetMap はインスタンスID（または風景・背景要素などの識別子）から
// 解決済みリソースロケータ（相対パスやプレースホルダURL）への対応表です。
// パイプラインの進行に伴って単調に増えるだけで、縮むことはありません。
type AssetMap map[string]string

// Clone は防御的コピーを返すのだ。nil マップには空のマップを返すのだ。
func (m AssetMap) Clone() AssetMap {
	copied := make(AssetMap, len(m))
	for k, v := range m {
		copied[k] = v
	}
	return copied
}

// Union は既存エントリを一切上書きせずに newEntries を取り込んだ
// 新しいマップを返します。リゾルバが1パスの最後に一度だけ呼ぶ合流点です。
func (m AssetMap) Union(newEntries AssetMap) AssetMap {
	merged := m.Clone()
	for k, v := range newEntries {
		if _, exists := merged[k]; exists {
			continue
		}
		merged[k] = v
	}
	return merged
}

// Document は Compositor が生成した1つの成果物（ファイル名と本文）です。
type Document struct {
	Name string
	HTML string
}

// Run は1回のパイプライン実行の状態です。生成時に確定する識別情報と、
// 各ステージが書き足していく成果物（台本・アセット・文書）を束ねます。
type Run struct {
	RunID      string
	UserPrompt string
	FastMode   bool
	Mode       Mode

	Script    *Script
	Assets    AssetMap
	Documents []Document
}

// NewRun は新しい実行状態を初期化します。RunID は実行ディレクトリ名に
// そのまま使われるため、衝突しない不透明トークンとして UUID を採用しています。
func NewRun(prompt string, mode Mode, fastMode bool) Run {
	return Run{
		RunID:      uuid.NewString(),
		UserPrompt: prompt,
		FastMode:   fastMode,
		Mode:       mode,
		Assets:     make(AssetMap),
	}
}

// HasScript は Director 済みの台本が載っているかを返すのだ。
func (r Run) HasScript() bool {
	return r.Script != nil && !r.Script.IsEmpty()
}

// HasAssets はアセットマップが1件でも埋まっているかを返すのだ。
// 高速モードの再利用条件（台本とアセットの両方が揃っていること）の半分を担うのだ。
func (r Run) HasAssets() bool {
	return len(r.Assets) > 0
}

// CanFastForward は高速モードの再利用条件を満たしているかを返します。
// 既存の台本と空でないアセットマップの両方が同じ Run に載っている場合のみ真です。
func (r Run) CanFastForward() bool {
	return r.FastMode && r.HasScript() && r.HasAssets()
}
