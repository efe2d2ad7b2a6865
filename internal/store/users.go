package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shouni/go-cinegen-kit/internal/config"
	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

// ErrEmailTaken は登録済みメールアドレスでの再登録を表します。
var ErrEmailTaken = errors.New("email already registered")

// ErrBadCredentials はログイン失敗（存在しない or パスワード不一致）を
// 区別せずに表すのだ。どちらが原因かを攻撃者に教えないためです。
var ErrBadCredentials = errors.New("invalid email or password")

// RegisterUser は新規ユーザーを登録します。メール重複は ErrEmailTaken なのだ。
func (s *Store) RegisterUser(u domain.User) error {
	_, err := s.db.Exec(
		"INSERT INTO users (email, name, password, is_admin) VALUES (?, ?, ?, 0)",
		u.Email, u.Name, u.Password)
	if err != nil {
		var exists int
		if qErr := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", u.Email).Scan(&exists); qErr == nil && exists > 0 {
			return ErrEmailTaken
		}
		return fmt.Errorf("ユーザー登録に失敗しました: %w", err)
	}
	return nil
}

// Login は資格情報を検証してユーザーを返します。
// email が "admin" の場合は kv の管理者パスワード（未設定なら既定値）と
// 照合し、管理者ユーザーを合成して返すのだ。
func (s *Store) Login(email, password string) (*domain.User, error) {
	if email == "admin" {
		adminPass, err := s.GetKV(keyAdminPassword)
		if errors.Is(err, ErrNotFound) {
			adminPass = config.DefaultAdminPass
		} else if err != nil {
			return nil, err
		}
		if password != adminPass {
			return nil, ErrBadCredentials
		}
		return &domain.User{Email: "admin", Name: "Administrator", IsAdmin: true}, nil
	}

	var u domain.User
	var isAdmin int
	err := s.db.QueryRow(
		"SELECT email, name, password, is_admin FROM users WHERE email = ?", email,
	).Scan(&u.Email, &u.Name, &u.Password, &isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザーの照会に失敗しました: %w", err)
	}
	if u.Password != password {
		return nil, ErrBadCredentials
	}
	u.IsAdmin = isAdmin != 0
	return &u, nil
}

// GetUser はメールアドレスでユーザーを引くのだ。
func (s *Store) GetUser(email string) (*domain.User, error) {
	var u domain.User
	var isAdmin int
	err := s.db.QueryRow(
		"SELECT email, name, password, is_admin FROM users WHERE email = ?", email,
	).Scan(&u.Email, &u.Name, &u.Password, &isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザーの照会に失敗しました: %w", err)
	}
	u.IsAdmin = isAdmin != 0
	return &u, nil
}

// UpdateUserProfile は表示名とパスワードを更新します。
// password が空文字のときはパスワードを据え置くのだ。
func (s *Store) UpdateUserProfile(email, name, password string) error {
	var res sql.Result
	var err error
	if password == "" {
		res, err = s.db.Exec("UPDATE users SET name = ? WHERE email = ?", name, email)
	} else {
		res, err = s.db.Exec("UPDATE users SET name = ?, password = ? WHERE email = ?", name, password, email)
	}
	if err != nil {
		return fmt.Errorf("プロフィールの更新に失敗しました: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUsers は管理画面向けに全ユーザーを返します。
func (s *Store) ListUsers() ([]domain.User, error) {
	rows, err := s.db.Query("SELECT email, name, password, is_admin FROM users ORDER BY email")
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var isAdmin int
		if err := rows.Scan(&u.Email, &u.Name, &u.Password, &isAdmin); err != nil {
			return nil, fmt.Errorf("ユーザー行の読み出しに失敗しました: %w", err)
		}
		u.IsAdmin = isAdmin != 0
		users = append(users, u)
	}
	return users, rows.Err()
}

// DeleteUser はユーザーと、そのユーザーが所有するプロジェクト・ワールドを
// まとめて削除するのだ。
func (s *Store) DeleteUser(email string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("トランザクションを開始できません: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM projects WHERE user_id = ?", email); err != nil {
		return fmt.Errorf("プロジェクトの削除に失敗しました: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM worlds WHERE user_id = ?", email); err != nil {
		return fmt.Errorf("ワールドの削除に失敗しました: %w", err)
	}
	res, err := tx.Exec("DELETE FROM users WHERE email = ?", email)
	if err != nil {
		return fmt.Errorf("ユーザーの削除に失敗しました: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// UpdateAdminPassword は管理者パスワードを kv に保存するのだ。
func (s *Store) UpdateAdminPassword(password string) error {
	return s.SetKV(keyAdminPassword, password)
}
