// Package schema は comicgen サービスのキャラクター設定スキーマを定義します。
// 設定は「どのキャラクターか」を示すタグ付きユニオンで、種別ごとに
// 許される属性の組み合わせ（語彙）が閉じた集合として決まっています。
// AI が生成した JSON をこのスキーマで厳密に検証し、正当な設定だけを
// レンダリング要求へ変換するのがこのパッケージの役割なのだ。
package schema

import (
	"fmt"
	"net/url"
	"sort"
)

// Kind はキャラクター種別の判別タグです。JSON の "character" フィールドに対応します。
type Kind string

const (
	KindAavatar    Kind = "aavatar"
	KindEthan      Kind = "ethan"
	KindBean       Kind = "bean"
	KindDeenuova   Kind = "deenuova"
	KindDeynuovo   Kind = "deynuovo"
	KindPriyanuova Kind = "priyanuova"
	KindRingonuovo Kind = "ringonuovo"
	KindBill       Kind = "bill"
	KindSophie     Kind = "sophie"
	KindAryan      Kind = "aryan"
)

// kindDescriptions はプロンプトやカタログ表示で使う種別の説明です。
// AI に渡す文面なので英語で記述します。
var kindDescriptions = map[Kind]string{
	KindAavatar:    "Generic customizable avatar (hair, face style, attire).",
	KindEthan:      "Man with beard & glasses. Supports back, side and straight angles.",
	KindBean:       "A living coffee mug character. Supports side and straight angles.",
	KindDeenuova:   "Female with glasses and curly hair. Supports side, sitting and straight angles.",
	KindDeynuovo:   "Male with long hair and beard. Supports side, sitting and straight angles.",
	KindPriyanuova: "Female comic-style character. Supports sitting and straight angles.",
	KindRingonuovo: "Male comic-style character. Supports sitting and straight angles.",
	KindBill:       "Man in a suit. Front view only.",
	KindSophie:     "Grandma-style woman. Front view only.",
	KindAryan:      "Young male comic-style avatar. Front view only.",
}

// Kinds は有効な種別タグを辞書順で返します。
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindDescriptions))
	for k := range kindDescriptions {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// IsValidKind はタグが有効な種別かどうかを返します。
func IsValidKind(k Kind) bool {
	_, ok := kindDescriptions[k]
	return ok
}

// Variant はキャラクター種別ごとの設定本体が満たすインターフェースです。
// 種別により属性構造が異なるため、検証とクエリ変換だけを共通化します。
type Variant interface {
	// Kind は判別タグを返します。
	Kind() Kind
	// Validate は属性の組み合わせを語彙表と照合します。
	// エラー文は AI への再指示に使うため英語で返します。
	Validate() error
	// queryParams は種別固有の属性をレンダリング要求へ書き込みます。
	// 空値は書き込みません。
	queryParams(v url.Values)
}

// GlobalVisuals は全種別に共通する見た目の修飾です。
type GlobalVisuals struct {
	// Mirror は true のとき左右反転して描画します。
	Mirror bool `json:"mirror"`
	// Box はキャラクター背景の形状です。空文字は背景なしを意味します。
	Box string `json:"box"`
	// BoxColor は背景の色（16進カラーコード）です。省略時は黒になります。
	BoxColor string `json:"boxcolor"`
}

// DefaultBoxColor は BoxColor 省略時に適用される既定値です。
const DefaultBoxColor = "#000000"

func (g GlobalVisuals) validate() error {
	if !boxShapes.contains(g.Box) {
		return fmt.Errorf("visuals: box %q is not allowed (legal values: %s)", g.Box, boxShapes)
	}
	return nil
}

// CharacterConfig は1体のキャラクターを描画するための完全な設定です。
// Data には種別に応じた具象 Variant が入ります。
type CharacterConfig struct {
	Visuals GlobalVisuals
	Data    Variant
}

// Validate は共通修飾と種別固有属性の両方を検証します。
func (c *CharacterConfig) Validate() error {
	if c.Data == nil {
		return fmt.Errorf("character_data is required")
	}
	if err := c.Visuals.validate(); err != nil {
		return err
	}
	return c.Data.Validate()
}

// --- aavatar: 頭部・顔・身体の三部構成 ---

// AavatarHead は頭部の設定です。髪型の語彙は性別に依存します。
type AavatarHead struct {
	Gender    string `json:"gender"`
	Hairstyle string `json:"hairstyle"`
}

// AavatarFace は顔の設定です。表情の語彙は画風に依存しません。
type AavatarFace struct {
	Style   string `json:"style"`
	Emotion string `json:"emotion"`
}

// AavatarBody は身体の設定です。ポーズの語彙は衣装に依存します。
type AavatarBody struct {
	Attire string `json:"attire"`
	Pose   string `json:"pose"`
}

// Aavatar は汎用カスタマイズ可能アバターの設定です。
type Aavatar struct {
	Character   Kind        `json:"character"`
	Description string      `json:"description,omitempty"`
	Head        AavatarHead `json:"head"`
	Face        AavatarFace `json:"face"`
	Body        AavatarBody `json:"body"`
}

func (a *Aavatar) Kind() Kind { return KindAavatar }

func (a *Aavatar) Validate() error {
	if a.Head.Gender == "" {
		return fmt.Errorf("aavatar head: gender is required (legal values: %s)", aavatarGenders)
	}
	hairstyles, ok := aavatarHairstyles[a.Head.Gender]
	if !ok {
		return fmt.Errorf("aavatar head: gender %q is not allowed (legal values: %s)", a.Head.Gender, aavatarGenders)
	}
	if !hairstyles.contains(a.Head.Hairstyle) {
		return fmt.Errorf("aavatar head: hairstyle %q is not allowed for gender %q (legal values: %s)", a.Head.Hairstyle, a.Head.Gender, hairstyles)
	}
	if !aavatarFaceStyles.contains(a.Face.Style) {
		return fmt.Errorf("aavatar face: style %q is not allowed (legal values: %s)", a.Face.Style, aavatarFaceStyles)
	}
	if !aavatarEmotions.contains(a.Face.Emotion) {
		return fmt.Errorf("aavatar face: emotion %q is not allowed (legal values: %s)", a.Face.Emotion, aavatarEmotions)
	}
	if a.Body.Attire == "" {
		return fmt.Errorf("aavatar body: attire is required (legal values: %s)", attireNames())
	}
	poses, ok := aavatarPoses[a.Body.Attire]
	if !ok {
		return fmt.Errorf("aavatar body: attire %q is not allowed (legal values: %s)", a.Body.Attire, attireNames())
	}
	if !poses.contains(a.Body.Pose) {
		return fmt.Errorf("aavatar body: pose %q is not allowed for attire %q (legal values: %s)", a.Body.Pose, a.Body.Attire, poses)
	}
	return nil
}

func (a *Aavatar) queryParams(v url.Values) {
	setIfNotEmpty(v, "gender", a.Head.Gender)
	// 髪型はサービス側の都合で "character" パラメータに載ります。
	setIfNotEmpty(v, "character", a.Head.Hairstyle)
	setIfNotEmpty(v, "facestyle", a.Face.Style)
	setIfNotEmpty(v, "emotion", a.Face.Emotion)
	setIfNotEmpty(v, "attire", a.Body.Attire)
	setIfNotEmpty(v, "pose", a.Body.Pose)
}

func attireNames() vocab {
	names := make(vocab, 0, len(aavatarPoses))
	for name := range aavatarPoses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --- 角度依存ペルソナ ---

// AngleProps は角度依存ペルソナの属性です。角度ごとに表情・ポーズの語彙が変わります。
type AngleProps struct {
	Angle   string `json:"angle"`
	Emotion string `json:"emotion"`
	Pose    string `json:"pose"`
}

// AnglePersona はカメラ角度を持つ固定キャラクターの設定です。
// ethan, bean, deenuova, deynuovo, priyanuova, ringonuovo が該当します。
type AnglePersona struct {
	Character   Kind       `json:"character"`
	Description string     `json:"description,omitempty"`
	Props       AngleProps `json:"properties"`
}

func (p *AnglePersona) Kind() Kind { return p.Character }

func (p *AnglePersona) Validate() error {
	angles, ok := anglePersonas[p.Character]
	if !ok {
		return fmt.Errorf("character %q does not take an angle", p.Character)
	}
	av, ok := angles[p.Props.Angle]
	if !ok {
		return fmt.Errorf("%s: angle %q is not allowed (legal values: %s)", p.Character, p.Props.Angle, angleNames(angles))
	}
	if !av.emotions.contains(p.Props.Emotion) {
		return fmt.Errorf("%s (angle %s): emotion %q is not allowed (legal values: %s)", p.Character, p.Props.Angle, p.Props.Emotion, av.emotions)
	}
	if !av.poses.contains(p.Props.Pose) {
		return fmt.Errorf("%s (angle %s): pose %q is not allowed (legal values: %s)", p.Character, p.Props.Angle, p.Props.Pose, av.poses)
	}
	return nil
}

func (p *AnglePersona) queryParams(v url.Values) {
	setIfNotEmpty(v, "angle", p.Props.Angle)
	setIfNotEmpty(v, "emotion", p.Props.Emotion)
	setIfNotEmpty(v, "pose", p.Props.Pose)
}

func angleNames(angles map[string]angleVocab) vocab {
	names := make(vocab, 0, len(angles))
	for name := range angles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --- 正面固定ペルソナ ---

// FlatPersona は角度を持たない正面向きキャラクターの設定です。
// bill, sophie, aryan が該当します。
type FlatPersona struct {
	Character   Kind   `json:"character"`
	Description string `json:"description,omitempty"`
	Emotion     string `json:"emotion"`
	Pose        string `json:"pose"`
}

func (p *FlatPersona) Kind() Kind { return p.Character }

func (p *FlatPersona) Validate() error {
	fv, ok := flatPersonas[p.Character]
	if !ok {
		return fmt.Errorf("character %q is not a front-view persona", p.Character)
	}
	if !fv.emotions.contains(p.Emotion) {
		return fmt.Errorf("%s: emotion %q is not allowed (legal values: %s)", p.Character, p.Emotion, fv.emotions)
	}
	if !fv.poses.contains(p.Pose) {
		return fmt.Errorf("%s: pose %q is not allowed (legal values: %s)", p.Character, p.Pose, fv.poses)
	}
	return nil
}

func (p *FlatPersona) queryParams(v url.Values) {
	setIfNotEmpty(v, "emotion", p.Emotion)
	setIfNotEmpty(v, "pose", p.Pose)
}

func setIfNotEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
