package asset

import (
	"fmt"
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// ImagesDir は実行ディレクトリ配下の画像格納ディレクトリ名です。
	ImagesDir = "images"
	// ParamsDir は解決済みキャラクター設定の格納ディレクトリ名です。
	ParamsDir = "params"
	// ScriptFileName は実行ディレクトリ直下に保存する台本ファイル名です。
	ScriptFileName = "script.json"

	// PlaceholderFetchError は画像の取得に失敗したときの代替画像です。
	PlaceholderFetchError = "https://placehold.co/400x800/FF0000/FFFFFF/png?text=FetchError"
	// PlaceholderConfigError は設定の生成に失敗したときの代替画像です。
	PlaceholderConfigError = "https://placehold.co/400x800/FF0000/FFFFFF/png?text=ConfigError"

	placeholderPrefix = "https://placehold.co/"
)

// SafeName はキャラクター名をファイル名に使える形へ正規化します。
// 小文字化と空白のアンダースコア置換のみを行います。
func SafeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// ImageFileName はパネル内インスタンスの画像ファイル名を返します。
// 同じキャラクター・同じ位置なら常に同じ名前になるため、
// 高速モードの再開時に存在確認だけでアセット表を再構成できます。
func ImageFileName(name string, panelIdx, charIdx int) string {
	return fmt.Sprintf("%s_p%d_%d.png", SafeName(name), panelIdx, charIdx)
}

// ImageRelPath は HTML から参照する画像の相対パスを返します。
func ImageRelPath(name string, panelIdx, charIdx int) string {
	return ImagesDir + "/" + ImageFileName(name, panelIdx, charIdx)
}

// ParamsRelPath は解決済み設定 JSON の相対パスを返します。
func ParamsRelPath(instanceID string) string {
	return ParamsDir + "/" + instanceID + ".json"
}

// IsPlaceholder はアセットパスが代替画像かどうかを返します。
// 代替画像はディスクに存在しないため、再開時の存在確認から除外します。
func IsPlaceholder(path string) bool {
	return strings.HasPrefix(path, placeholderPrefix)
}

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}

// ResolveBaseURL は、入力パス（URLまたはローカルパス）から
// 親ディレクトリのパスを解決し、末尾がセパレータで終わるように正規化します。
func ResolveBaseURL(rawPath string) string {
	return urlpath.ResolveBaseURL(rawPath)
}

// RunDir は実行 ID ごとの出力ディレクトリを解決します。
func RunDir(runsDir, runID string) (string, error) {
	return urlpath.ResolveOutputPath(runsDir, runID)
}
