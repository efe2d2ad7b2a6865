package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

// SaveProject はプロジェクトを挿入または上書きするのだ。
// 台本本体はJSONのまま payload 列に入れる。列に展開するのはクエリに使う
// メタデータだけです。
func (s *Store) SaveProject(p domain.Project) error {
	payload, err := json.Marshal(p.Script)
	if err != nil {
		return fmt.Errorf("台本のエンコードに失敗しました: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO projects (id, user_id, title, created_at, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, payload = excluded.payload`,
		p.ID, p.UserID, p.Title, p.CreatedAt, string(payload))
	if err != nil {
		return fmt.Errorf("プロジェクトの保存に失敗しました: %w", err)
	}
	return nil
}

// GetProject はIDでプロジェクトを引きます。所有者も一致しないと見えないのだ。
func (s *Store) GetProject(id, userID string) (*domain.Project, error) {
	var p domain.Project
	var payload string
	err := s.db.QueryRow(
		"SELECT id, user_id, title, created_at, payload FROM projects WHERE id = ? AND user_id = ?",
		id, userID,
	).Scan(&p.ID, &p.UserID, &p.Title, &p.CreatedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("プロジェクトの照会に失敗しました: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &p.Script); err != nil {
		return nil, fmt.Errorf("台本のデコードに失敗しました: %w", err)
	}
	return &p, nil
}

// ListProjects はユーザーのプロジェクトを新しい順で返します。
func (s *Store) ListProjects(userID string) ([]domain.Project, error) {
	return s.queryProjects("SELECT id, user_id, title, created_at, payload FROM projects WHERE user_id = ? ORDER BY created_at DESC", userID)
}

// ListAllProjects は管理画面向けに全プロジェクトを返すのだ。
func (s *Store) ListAllProjects() ([]domain.Project, error) {
	return s.queryProjects("SELECT id, user_id, title, created_at, payload FROM projects ORDER BY created_at DESC")
}

func (s *Store) queryProjects(query string, args ...any) ([]domain.Project, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("プロジェクト一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		var payload string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.CreatedAt, &payload); err != nil {
			return nil, fmt.Errorf("プロジェクト行の読み出しに失敗しました: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &p.Script); err != nil {
			return nil, fmt.Errorf("台本のデコードに失敗しました(id=%s): %w", p.ID, err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// DeleteProject は所有者一致を条件にプロジェクトを削除します。
func (s *Store) DeleteProject(id, userID string) error {
	res, err := s.db.Exec("DELETE FROM projects WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("プロジェクトの削除に失敗しました: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
