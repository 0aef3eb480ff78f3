package schema

import "net/url"

// DefaultBaseURL はキャラクター画像を提供する comicgen サービスのエンドポイントです。
const DefaultBaseURL = "https://gramener.com/comicgen/v1/comic"

// Request は設定をレンダリング要求のクエリパラメータへ変換します。
// 同じ設定からは常に同じパラメータ集合が得られます。偽値（false と空文字）
// のパラメータは含めません。
func (c *CharacterConfig) Request() url.Values {
	v := url.Values{}
	if c.Data != nil {
		v.Set("name", string(c.Data.Kind()))
		c.Data.queryParams(v)
	}
	if c.Visuals.Mirror {
		v.Set("mirror", "mirror")
	}
	setIfNotEmpty(v, "box", c.Visuals.Box)
	setIfNotEmpty(v, "boxcolor", c.Visuals.BoxColor)
	return v
}

// URL は完全なレンダリング URL を組み立てます。クエリはキーの辞書順に
// 並ぶため、同じ設定からは常に同じ URL 文字列が得られます。
// 出力形式の指定（ext=png）は末尾に固定で付与します。
func (c *CharacterConfig) URL(base string) string {
	return base + "?" + c.Request().Encode() + "&ext=png"
}
