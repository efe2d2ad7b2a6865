package domain

import "time"

// User はローカルストアに登録されたユーザー1名分のレコードです。
type User struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
}

// Project は保存済みプロジェクト1件（制作台本とそのメタデータ）です。
type Project struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Title     string           `json:"title"`
	CreatedAt time.Time        `json:"createdAt"`
	Script    ProductionScript `json:"script"`
}

// WorldSetting はプロジェクト間で再利用できる「ワールド」
// （キャラクター・ロケーション・ジャンル・画風のバンドル）です。
type WorldSetting struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	Title       string            `json:"title"`
	Genre       string            `json:"genre"`
	Description string            `json:"description,omitempty"`
	VisualStyle string            `json:"visualStyle"`
	Characters  []Character       `json:"characters"`
	Locations   []LocationSetting `json:"locations"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// NewWorldFromScript は保存済み台本からワールド設定を切り出すのだ。
// ジャンルや画風が空の台本でも、ゼロ値ではなく無難な既定値を入れておく。
func NewWorldFromScript(id, userID, title string, script ProductionScript, createdAt time.Time) WorldSetting {
	genre := script.Genre
	if genre == "" {
		genre = "General"
	}
	style := script.SelectedVisualStyle
	if style == "" {
		style = "Cinematic"
	}
	if title == "" {
		title = "New World"
	}

	return WorldSetting{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Genre:       genre,
		VisualStyle: style,
		Characters:  script.Characters,
		Locations:   script.Locations,
		CreatedAt:   createdAt,
	}
}
