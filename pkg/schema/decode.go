package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// wireConfig は JSON 上の表現です。character_data は種別判定まで生のまま保持します。
type wireConfig struct {
	Visuals GlobalVisuals   `json:"visuals"`
	Data    json.RawMessage `json:"character_data"`
}

// Decode は AI が生成した JSON をキャラクター設定として厳密に読み取ります。
// 未知のフィールドや語彙外の値は受理しません。スキーマ違反のエラー文は
// AI へのフィードバックに使うため英語で返します。
func Decode(data []byte) (*CharacterConfig, error) {
	var cfg CharacterConfig
	if err := strictUnmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UnmarshalJSON は "character" タグで具象型を選んでから厳密に読み取ります。
func (c *CharacterConfig) UnmarshalJSON(data []byte) error {
	var wire wireConfig
	if err := strictUnmarshal(data, &wire); err != nil {
		return fmt.Errorf("character config: %w", err)
	}
	if len(wire.Data) == 0 || bytes.Equal(wire.Data, []byte("null")) {
		return fmt.Errorf("character_data is required")
	}

	var probe struct {
		Character Kind `json:"character"`
	}
	if err := json.Unmarshal(wire.Data, &probe); err != nil {
		return fmt.Errorf("character_data: %w", err)
	}

	variant, err := newVariant(probe.Character)
	if err != nil {
		return err
	}
	if err := strictUnmarshal(wire.Data, variant); err != nil {
		return fmt.Errorf("character_data (%s): %w", probe.Character, err)
	}

	c.Visuals = wire.Visuals
	if c.Visuals.BoxColor == "" {
		c.Visuals.BoxColor = DefaultBoxColor
	}
	c.Data = variant
	return nil
}

// MarshalJSON は設定を生成時と同じワイヤ表現へ書き戻します。
// 解決済みパラメータの永続化（params/*.json）で使います。
func (c *CharacterConfig) MarshalJSON() ([]byte, error) {
	if c.Data == nil {
		return nil, errors.New("character_data is required")
	}
	raw, err := json.Marshal(c.Data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireConfig{Visuals: c.Visuals, Data: raw})
}

// newVariant は判別タグに対応する空の具象 Variant を返します。
func newVariant(kind Kind) (Variant, error) {
	switch {
	case kind == KindAavatar:
		return &Aavatar{Character: kind}, nil
	case anglePersonas[kind] != nil:
		return &AnglePersona{Character: kind}, nil
	case flatPersonas[kind].emotions != nil:
		return &FlatPersona{Character: kind}, nil
	case kind == "":
		return nil, fmt.Errorf("character_data: field \"character\" is required (legal values: %s)", kindList())
	default:
		return nil, fmt.Errorf("character_data: character %q is unknown (legal values: %s)", kind, kindList())
	}
}

func kindList() string {
	kinds := Kinds()
	names := make(vocab, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names.String()
}

// strictUnmarshal は未知フィールドを拒否し、JSON 値が1つだけであることも確認します。
func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(new(json.RawMessage)); err != io.EOF {
		return errors.New("unexpected trailing data after JSON value")
	}
	return nil
}
