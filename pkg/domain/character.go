package domain

import "fmt"

// Gender はキャラクターの性別区分です。
// AIが空を返した場合は GenderNeutral にフォールバックします。
type Gender string

const (
	GenderMale      Gender = "Male"
	GenderFemale    Gender = "Female"
	GenderNeutral   Gender = "Neutral"
	GenderNonBinary Gender = "Non-Binary"
)

// Outfit はキャラクターの衣装コンセプト1着分の定義を保持します。
type Outfit struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"` // 生成済み衣装イメージ（data URL）
	IsDefault   bool   `json:"isDefault,omitempty"`
}

// Character は作品に登場するキャラクターの定義を保持します。
// ID はゲートウェイ側で採番されるのだ（AIが返すIDは信用しない）。
type Character struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Gender      Gender   `json:"gender"`
	Age         string   `json:"age,omitempty"`
	Race        string   `json:"race,omitempty"`
	BodyType    string   `json:"bodyType,omitempty"`
	Description string   `json:"description"`
	Role        string   `json:"role"`
	AvatarURL   string   `json:"avatarUrl,omitempty"` // 生成済みポートレート（data URL）
	Outfits     []Outfit `json:"outfits,omitempty"`
}

// String はキャラクターの情報を文字列で返すのだ。
func (c Character) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Role)
}

// CharactersMap は名前をキーとしたキャラクターの検索用マップなのだ。
type CharactersMap map[string]Character

// BuildCharactersMap はスライス形式のデータを検索効率の良いマップ形式に変換するのだ。
func BuildCharactersMap(chars []Character) CharactersMap {
	m := make(CharactersMap, len(chars))
	for _, c := range chars {
		key := c.Name
		if key == "" {
			key = c.ID
		}
		m[key] = c
	}
	return m
}

// FindCharacter は名前からキャラクター情報を特定します。見つからない場合は nil を返します。
func (m CharactersMap) FindCharacter(name string) *Character {
	if m == nil {
		return nil
	}
	if char, ok := m[name]; ok {
		res := char
		return &res
	}
	return nil
}

// LocationSetting は撮影ロケーション1件分の定義を保持します。
type LocationSetting struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"` // 生成済みロケーションプレート（data URL）
}
