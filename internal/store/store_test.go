package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("ストアを開けないのだ: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMigrateIsIdempotent(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbFile)
	if err != nil {
		t.Fatalf("初回オープンに失敗したのだ: %v", err)
	}
	s.Close()

	// 2回目のオープンでマイグレーションを再適用しようとしないこと
	s, err = Open(dbFile)
	if err != nil {
		t.Fatalf("再オープンに失敗したのだ: %v", err)
	}
	s.Close()
}

func TestUserLifecycle(t *testing.T) {
	s := newTestStore(t)

	u := domain.User{Email: "mira@example.com", Name: "Mira", Password: "secret"}
	if err := s.RegisterUser(u); err != nil {
		t.Fatalf("登録に失敗したのだ: %v", err)
	}

	t.Run("重複登録は ErrEmailTaken", func(t *testing.T) {
		if err := s.RegisterUser(u); !errors.Is(err, ErrEmailTaken) {
			t.Errorf("重複登録の分類が違うのだ: %v", err)
		}
	})

	t.Run("正しい資格情報でログインできること", func(t *testing.T) {
		got, err := s.Login("mira@example.com", "secret")
		if err != nil {
			t.Fatalf("ログインに失敗したのだ: %v", err)
		}
		if got.Name != "Mira" || got.IsAdmin {
			t.Errorf("ユーザー情報が違うのだ: %+v", got)
		}
	})

	t.Run("誤パスワードと未登録は同じエラーになること", func(t *testing.T) {
		_, err1 := s.Login("mira@example.com", "wrong")
		_, err2 := s.Login("nobody@example.com", "secret")
		if !errors.Is(err1, ErrBadCredentials) || !errors.Is(err2, ErrBadCredentials) {
			t.Errorf("資格情報エラーの分類が違うのだ: %v / %v", err1, err2)
		}
	})

	t.Run("プロフィール更新でパスワード空なら据え置きなのだ", func(t *testing.T) {
		if err := s.UpdateUserProfile("mira@example.com", "Mira K.", ""); err != nil {
			t.Fatalf("更新に失敗したのだ: %v", err)
		}
		if _, err := s.Login("mira@example.com", "secret"); err != nil {
			t.Errorf("据え置いたはずのパスワードでログインできないのだ: %v", err)
		}
	})
}

func TestAdminLogin(t *testing.T) {
	s := newTestStore(t)

	t.Run("既定パスワードで管理者ログインできること", func(t *testing.T) {
		got, err := s.Login("admin", "admin")
		if err != nil {
			t.Fatalf("管理者ログインに失敗したのだ: %v", err)
		}
		if !got.IsAdmin {
			t.Error("管理者フラグが立っていないのだ")
		}
	})

	t.Run("パスワード変更後は旧パスワードが無効なこと", func(t *testing.T) {
		if err := s.UpdateAdminPassword("hunter2"); err != nil {
			t.Fatalf("パスワード更新に失敗したのだ: %v", err)
		}
		if _, err := s.Login("admin", "admin"); !errors.Is(err, ErrBadCredentials) {
			t.Errorf("旧パスワードが生きているのだ: %v", err)
		}
		if _, err := s.Login("admin", "hunter2"); err != nil {
			t.Errorf("新パスワードでログインできないのだ: %v", err)
		}
	})
}

func TestProjectLifecycle(t *testing.T) {
	s := newTestStore(t)
	script := domain.ProductionScript{
		Title:  "Last Light",
		Scenes: []domain.Scene{{SceneNumber: 1, Location: "Harbor", VisualPrompt: "wide shot"}},
	}

	older := domain.Project{ID: "p1", UserID: "mira@example.com", Title: "Old", CreatedAt: time.Now().Add(-time.Hour), Script: script}
	newer := domain.Project{ID: "p2", UserID: "mira@example.com", Title: "New", CreatedAt: time.Now(), Script: script}
	for _, p := range []domain.Project{older, newer} {
		if err := s.SaveProject(p); err != nil {
			t.Fatalf("保存に失敗したのだ: %v", err)
		}
	}

	t.Run("一覧は新しい順なのだ", func(t *testing.T) {
		got, err := s.ListProjects("mira@example.com")
		if err != nil {
			t.Fatalf("一覧取得に失敗したのだ: %v", err)
		}
		if len(got) != 2 || got[0].ID != "p2" {
			t.Errorf("並び順が違うのだ: %+v", got)
		}
	})

	t.Run("台本が往復で保たれること", func(t *testing.T) {
		got, err := s.GetProject("p1", "mira@example.com")
		if err != nil {
			t.Fatalf("照会に失敗したのだ: %v", err)
		}
		if len(got.Script.Scenes) != 1 || got.Script.Scenes[0].VisualPrompt != "wide shot" {
			t.Errorf("台本が壊れたのだ: %+v", got.Script)
		}
	})

	t.Run("他人のプロジェクトは見えないこと", func(t *testing.T) {
		if _, err := s.GetProject("p1", "other@example.com"); !errors.Is(err, ErrNotFound) {
			t.Errorf("所有者チェックが効いていないのだ: %v", err)
		}
	})

	t.Run("同一IDの再保存は上書きなのだ", func(t *testing.T) {
		updated := older
		updated.Title = "Renamed"
		if err := s.SaveProject(updated); err != nil {
			t.Fatalf("上書きに失敗したのだ: %v", err)
		}
		got, _ := s.GetProject("p1", "mira@example.com")
		if got.Title != "Renamed" {
			t.Errorf("タイトルが更新されていないのだ: %q", got.Title)
		}
	})

	t.Run("削除後は ErrNotFound", func(t *testing.T) {
		if err := s.DeleteProject("p1", "mira@example.com"); err != nil {
			t.Fatalf("削除に失敗したのだ: %v", err)
		}
		if _, err := s.GetProject("p1", "mira@example.com"); !errors.Is(err, ErrNotFound) {
			t.Errorf("削除済みが見えるのだ: %v", err)
		}
	})
}

func TestWorldLifecycle(t *testing.T) {
	s := newTestStore(t)
	w := domain.WorldSetting{
		ID: "w1", UserID: "mira@example.com", Title: "Harbor Tales",
		Genre: "Drama", VisualStyle: "noir",
		Characters: []domain.Character{{ID: "c1", Name: "Mira"}},
		CreatedAt:  time.Now(),
	}
	if err := s.SaveWorld(w); err != nil {
		t.Fatalf("保存に失敗したのだ: %v", err)
	}

	got, err := s.GetWorld("w1", "mira@example.com")
	if err != nil {
		t.Fatalf("照会に失敗したのだ: %v", err)
	}
	if len(got.Characters) != 1 || got.Characters[0].Name != "Mira" {
		t.Errorf("キャラクターが往復で保たれていないのだ: %+v", got.Characters)
	}
}

func TestAutosaveRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.LoadAutosave("mira@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("未保存なのに何か返ってきたのだ: %v", err)
	}

	if err := s.SaveAutosave("mira@example.com", `{"step":3}`); err != nil {
		t.Fatalf("退避に失敗したのだ: %v", err)
	}
	got, err := s.LoadAutosave("mira@example.com")
	if err != nil || got != `{"step":3}` {
		t.Errorf("途中状態が往復で保たれていないのだ: %q, %v", got, err)
	}

	if err := s.ClearAutosave("mira@example.com"); err != nil {
		t.Fatalf("破棄に失敗したのだ: %v", err)
	}
	if _, err := s.LoadAutosave("mira@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("破棄後も残っているのだ: %v", err)
	}
}
