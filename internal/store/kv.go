package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// kv テーブルのキー定義なのだ。セッションと自動保存はユーザー単位なので
// 接尾辞にメールアドレスを連結する。
const (
	keySession       = "session"
	keyAdminPassword = "admin_password"
	keyAutosave      = "autosave:" // + user email
)

// ErrNotFound はキーまたはレコードが存在しない場合のセンチネルです。
var ErrNotFound = errors.New("record not found")

// GetKV はキーの値を返します。未設定なら ErrNotFound なのだ。
func (s *Store) GetKV(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv の読み出しに失敗しました: %w", err)
	}
	return value, nil
}

// SetKV はキーの値を書き込みます。既存なら上書きです。
func (s *Store) SetKV(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return fmt.Errorf("kv の書き込みに失敗しました: %w", err)
	}
	return nil
}

// DeleteKV はキーを削除します。存在しなくてもエラーにしないのだ。
func (s *Store) DeleteKV(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("kv の削除に失敗しました: %w", err)
	}
	return nil
}

// SaveSession はログイン中ユーザーのメールアドレスを記録するのだ。
func (s *Store) SaveSession(userEmail string) error {
	return s.SetKV(keySession, userEmail)
}

// LoadSession はログイン中ユーザーのメールアドレスを返します。
// 未ログインなら ErrNotFound です。
func (s *Store) LoadSession() (string, error) {
	return s.GetKV(keySession)
}

// ClearSession はセッションを破棄します。
func (s *Store) ClearSession() error {
	return s.DeleteKV(keySession)
}

// SaveAutosave はウィザードの途中状態をユーザー単位で退避するのだ。
func (s *Store) SaveAutosave(userEmail, payload string) error {
	return s.SetKV(keyAutosave+userEmail, payload)
}

// LoadAutosave は退避済みの途中状態を返します。無ければ ErrNotFound です。
func (s *Store) LoadAutosave(userEmail string) (string, error) {
	return s.GetKV(keyAutosave + userEmail)
}

// ClearAutosave は途中状態を破棄します。
func (s *Store) ClearAutosave(userEmail string) error {
	return s.DeleteKV(keyAutosave + userEmail)
}
