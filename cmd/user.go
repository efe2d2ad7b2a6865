package cmd

import (
	"fmt"

	"github.com/shouni/go-cinegen-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	userName     string
	userPassword string
)

// userCmd は、アカウントとセッションの管理をまとめるサブコマンドなのだ。
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "アカウントとログインセッションを管理するのだ。",
}

var userRegisterCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "新規アカウントを登録してログインするのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if userPassword == "" {
			return fmt.Errorf("パスワード（--password）を指定してほしいのだ")
		}
		name := userName
		if name == "" {
			name = args[0]
		}
		return pipeline.ExecuteRegister(loadRuntimeConfig(), args[0], name, userPassword)
	},
}

var userLoginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "ログインしてセッションを保存するのだ。email に admin を指定すると管理者ログインなのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if userPassword == "" {
			return fmt.Errorf("パスワード（--password）を指定してほしいのだ")
		}
		return pipeline.ExecuteLogin(loadRuntimeConfig(), args[0], userPassword)
	},
}

var userLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "セッションを破棄するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteLogout(loadRuntimeConfig())
	},
}

var userWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "ログイン中のユーザーを表示するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteWhoami(loadRuntimeConfig())
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "表示名とパスワードを更新するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteProfileUpdate(loadRuntimeConfig(), userName, userPassword)
	},
}

func init() {
	for _, c := range []*cobra.Command{userRegisterCmd, userLoginCmd, userUpdateCmd} {
		c.Flags().StringVar(&userName, "name", "", "表示名なのだ。")
		c.Flags().StringVar(&userPassword, "password", "", "パスワードなのだ。")
	}
	userCmd.AddCommand(userRegisterCmd, userLoginCmd, userLogoutCmd, userWhoamiCmd, userUpdateCmd)
}
