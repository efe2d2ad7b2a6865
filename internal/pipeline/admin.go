package pipeline

import (
	"fmt"

	"github.com/shouni/go-cinegen-kit/internal/config"
)

// ExecuteAdminUsers は全ユーザーの一覧を表示するのだ（管理者専用）。
func ExecuteAdminUsers(cfg *config.Config) error {
	appCtx, err := setupStoreOnly(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	if err := requireAdmin(appCtx); err != nil {
		return err
	}
	users, err := appCtx.Store.ListUsers()
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Println("登録ユーザーはまだいないのだ。")
		return nil
	}
	for _, u := range users {
		fmt.Printf("%s  %s\n", u.Email, u.Name)
	}
	return nil
}

// ExecuteAdminProjects は全ユーザーのプロジェクト一覧を表示するのだ（管理者専用）。
func ExecuteAdminProjects(cfg *config.Config) error {
	appCtx, err := setupStoreOnly(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	if err := requireAdmin(appCtx); err != nil {
		return err
	}
	projects, err := appCtx.Store.ListAllProjects()
	if err != nil {
		return err
	}
	for _, p := range projects {
		fmt.Printf("%s  %s  %s  %s\n",
			p.ID, p.CreatedAt.Format("2006-01-02 15:04"), p.UserID, p.Title)
	}
	return nil
}

// ExecuteAdminDeleteUser は、ユーザーとその所有データを削除するのだ（管理者専用）。
func ExecuteAdminDeleteUser(cfg *config.Config, email string) error {
	appCtx, err := setupStoreOnly(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	if err := requireAdmin(appCtx); err != nil {
		return err
	}
	if email == "admin" {
		return fmt.Errorf("管理者アカウントは削除できないのだ")
	}
	if err := appCtx.Store.DeleteUser(email); err != nil {
		return err
	}
	fmt.Printf("ユーザー %s と所有データを削除したのだ。\n", email)
	return nil
}

// ExecuteAdminPassword は管理者パスワードを変更するのだ（管理者専用）。
func ExecuteAdminPassword(cfg *config.Config, password string) error {
	appCtx, err := setupStoreOnly(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	if err := requireAdmin(appCtx); err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("新しいパスワードが空なのだ")
	}
	if err := appCtx.Store.UpdateAdminPassword(password); err != nil {
		return err
	}
	fmt.Println("管理者パスワードを更新したのだ。")
	return nil
}
