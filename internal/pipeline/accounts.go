package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shouni/go-cinegen-kit/internal/builder"
	"github.com/shouni/go-cinegen-kit/internal/config"
	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

// ExecuteRegister は新規ユーザーを登録してそのままログインするのだ。
func ExecuteRegister(cfg *config.Config, email, name, password string) error {
	appCtx, err := setupStoreOnly(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	if err := appCtx.Store.RegisterUser(domain.User{Email: email, Name: name, Password: password}); err != nil {
		return err
	}
	if _, err := appCtx.Session.Login(email, password); err != nil {
		return err
	}
	fmt.Printf("%s として登録してログインしたのだ。\n", email)
	return nil
}

// ExecuteLogin はログインしてセッションを保存するのだ。
func ExecuteLogin(cfg *config.Config, email, password string) error {
	appCtx, err := setupStoreOnly(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	u, err := appCtx.Session.Login(email, password)
	if err != nil {
		return err
	}
	fmt.Printf("ようこそ、%s。\n", u.Name)
	return nil
}

// ExecuteLogout はセッションを破棄するのだ。
func ExecuteLogout(cfg *config.Config) error {
	appCtx, err := setupStoreOnly(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	if err := appCtx.Session.Logout(); err != nil {
		return err
	}
	fmt.Println("ログアウトしたのだ。")
	return nil
}

// ExecuteWhoami はログイン中のユーザーを表示するのだ。
func ExecuteWhoami(cfg *config.Config) error {
	appCtx, err := setupStoreOnly(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	u, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>", u.Name, u.Email)
	if u.IsAdmin {
		fmt.Print(" (admin)")
	}
	fmt.Println()
	return nil
}

// ExecuteProfileUpdate は表示名とパスワードを更新するのだ。
// password が空なら据え置きです。
func ExecuteProfileUpdate(cfg *config.Config, name, password string) error {
	appCtx, err := setupStoreOnly(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	u, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	if u.IsAdmin {
		return fmt.Errorf("管理者のパスワードは `admin password` で変更してほしいのだ")
	}
	if name == "" {
		name = u.Name
	}
	if err := appCtx.Store.UpdateUserProfile(u.Email, name, password); err != nil {
		return err
	}
	fmt.Println("プロフィールを更新したのだ。")
	return nil
}

// ExecuteProjectList はログイン中ユーザーのプロジェクト一覧を表示するのだ。
func ExecuteProjectList(cfg *config.Config) error {
	appCtx, err := setupStoreOnly(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	user, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	projects, err := appCtx.Store.ListProjects(user.Email)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("プロジェクトはまだ無いのだ。")
		return nil
	}
	for _, p := range projects {
		done := 0
		for _, s := range p.Script.Scenes {
			if s.GeneratedImageURL != "" {
				done++
			}
		}
		fmt.Printf("%s  %s  (%d/%dシーン生成済み)  %s\n",
			p.ID, p.CreatedAt.Format("2006-01-02 15:04"), done, len(p.Script.Scenes), p.Title)
	}
	return nil
}

// ExecuteProjectDelete はプロジェクトを削除するのだ。
func ExecuteProjectDelete(cfg *config.Config, id string) error {
	appCtx, err := setupStoreOnly(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	user, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	if err := appCtx.Store.DeleteProject(id, user.Email); err != nil {
		return err
	}
	fmt.Printf("プロジェクト %s を削除したのだ。\n", id)
	return nil
}

// ExecuteWorldCreate は、既存プロジェクトのキャラ・ロケ・画風を
// 再利用可能なワールド設定として切り出すのだ。
func ExecuteWorldCreate(cfg *config.Config, projectID, title string) error {
	appCtx, err := setupStoreOnly(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	user, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	project, err := appCtx.Store.GetProject(projectID, user.Email)
	if err != nil {
		return err
	}

	world := domain.NewWorldFromScript(uuid.NewString(), user.Email, title, project.Script, time.Now())
	if err := appCtx.Store.SaveWorld(world); err != nil {
		return err
	}
	fmt.Printf("ワールド %q を %s として保存したのだ（キャラ%d名、ロケ%d件）。\n",
		world.Title, world.ID, len(world.Characters), len(world.Locations))
	return nil
}

// ExecuteWorldList はワールド設定の一覧を表示するのだ。
func ExecuteWorldList(cfg *config.Config) error {
	appCtx, err := setupStoreOnly(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	user, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	worlds, err := appCtx.Store.ListWorlds(user.Email)
	if err != nil {
		return err
	}
	if len(worlds) == 0 {
		fmt.Println("ワールドはまだ無いのだ。")
		return nil
	}
	for _, w := range worlds {
		fmt.Printf("%s  %s / %s  (キャラ%d名)  %s\n",
			w.ID, w.Genre, w.VisualStyle, len(w.Characters), w.Title)
	}
	return nil
}

// ExecuteWorldDelete はワールド設定を削除するのだ。
func ExecuteWorldDelete(cfg *config.Config, id string) error {
	appCtx, err := setupStoreOnly(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	user, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	if err := appCtx.Store.DeleteWorld(id, user.Email); err != nil {
		return err
	}
	fmt.Printf("ワールド %s を削除したのだ。\n", id)
	return nil
}

// requireAdmin は管理者セッションを要求するのだ。
func requireAdmin(appCtx *builder.AppContext) error {
	user, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	if !user.IsAdmin {
		return fmt.Errorf("このコマンドは管理者専用なのだ")
	}
	return nil
}
