package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

// SaveWorld はワールド設定を挿入または上書きするのだ。
// キャラ・ロケを含む全体を payload 列にJSONで入れる。
func (s *Store) SaveWorld(w domain.WorldSetting) error {
	payload, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("ワールドのエンコードに失敗しました: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO worlds (id, user_id, title, created_at, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, payload = excluded.payload`,
		w.ID, w.UserID, w.Title, w.CreatedAt, string(payload))
	if err != nil {
		return fmt.Errorf("ワールドの保存に失敗しました: %w", err)
	}
	return nil
}

// GetWorld はIDと所有者でワールドを引きます。
func (s *Store) GetWorld(id, userID string) (*domain.WorldSetting, error) {
	var payload string
	err := s.db.QueryRow(
		"SELECT payload FROM worlds WHERE id = ? AND user_id = ?", id, userID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ワールドの照会に失敗しました: %w", err)
	}

	var w domain.WorldSetting
	if err := json.Unmarshal([]byte(payload), &w); err != nil {
		return nil, fmt.Errorf("ワールドのデコードに失敗しました: %w", err)
	}
	return &w, nil
}

// ListWorlds はユーザーのワールドを新しい順で返すのだ。
func (s *Store) ListWorlds(userID string) ([]domain.WorldSetting, error) {
	rows, err := s.db.Query(
		"SELECT payload FROM worlds WHERE user_id = ? ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("ワールド一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var worlds []domain.WorldSetting
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("ワールド行の読み出しに失敗しました: %w", err)
		}
		var w domain.WorldSetting
		if err := json.Unmarshal([]byte(payload), &w); err != nil {
			return nil, fmt.Errorf("ワールドのデコードに失敗しました: %w", err)
		}
		worlds = append(worlds, w)
	}
	return worlds, rows.Err()
}

// DeleteWorld は所有者一致を条件にワールドを削除します。
func (s *Store) DeleteWorld(id, userID string) error {
	res, err := s.db.Exec("DELETE FROM worlds WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("ワールドの削除に失敗しました: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
