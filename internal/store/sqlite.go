// Package store は、プロジェクト・ワールド・ユーザーを SQLite に永続化します。
// スキーマは PRAGMA user_version による前進専用マイグレーションで管理するのだ。
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"
)

// Store は全リポジトリが共有する SQLite ハンドルです。
type Store struct {
	db *sql.DB
}

// migrations はスキーマ変更の履歴なのだ。末尾に追記するだけで、
// 既存エントリの書き換えは禁止。user_version が適用済みの数を指す。
var migrations = []string{
	`CREATE TABLE users (
		email      TEXT NOT NULL PRIMARY KEY,
		name       TEXT NOT NULL,
		password   TEXT NOT NULL,
		is_admin   INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE kv (
		key   TEXT NOT NULL PRIMARY KEY,
		value TEXT NOT NULL
	);`,
	`CREATE TABLE projects (
		id         TEXT NOT NULL PRIMARY KEY,
		user_id    TEXT NOT NULL,
		title      TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		payload    TEXT NOT NULL
	);
	CREATE INDEX idx_projects_user_id ON projects (user_id);`,
	`CREATE TABLE worlds (
		id         TEXT NOT NULL PRIMARY KEY,
		user_id    TEXT NOT NULL,
		title      TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		payload    TEXT NOT NULL
	);
	CREATE INDEX idx_worlds_user_id ON worlds (user_id);`,
}

// Open はデータベースファイルを開き、必要なマイグレーションを適用するのだ。
func Open(file string) (*Store, error) {
	// modernc ドライバはファイルが無いと即エラーにしない場合があるので、
	// 先に touch して権限エラーをここで顕在化させる。
	if f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE, 0o644); err != nil {
		return nil, fmt.Errorf("データベースファイルを作成できません: %w", err)
	} else {
		f.Close()
	}

	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, fmt.Errorf("データベースを開けません: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("スキーマバージョンを取得できません: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("データベースのスキーマ(v%d)がこのバイナリ(v%d)より新しいのだ", version, len(migrations))
	}

	for ; version < len(migrations); version++ {
		if _, err := s.db.Exec(migrations[version]); err != nil {
			return fmt.Errorf("マイグレーション %d の適用に失敗しました: %w", version+1, err)
		}
		// PRAGMA はプレースホルダを受け付けないので整形で埋め込む
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version+1)); err != nil {
			return fmt.Errorf("スキーマバージョンを更新できません: %w", err)
		}
		slog.Info("スキーマを更新したのだ", "version", version+1)
	}
	return nil
}

// Close は基盤のデータベースハンドルを閉じます。
func (s *Store) Close() error {
	return s.db.Close()
}
