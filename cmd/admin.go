package cmd

import (
	"github.com/shouni/go-cinegen-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

var adminNewPassword string

// adminCmd は、管理者専用の運用コマンドをまとめるサブコマンドなのだ。
// 先に `user login admin` で管理者としてログインしておく必要があるのだ。
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "ユーザーとデータの運用管理をするのだ（管理者専用）。",
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "全ユーザーを一覧するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteAdminUsers(loadRuntimeConfig())
	},
}

var adminProjectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "全ユーザーのプロジェクトを一覧するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteAdminProjects(loadRuntimeConfig())
	},
}

var adminDeleteUserCmd = &cobra.Command{
	Use:   "delete-user <email>",
	Short: "ユーザーとその所有データを削除するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteAdminDeleteUser(loadRuntimeConfig(), args[0])
	},
}

var adminPasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "管理者パスワードを変更するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteAdminPassword(loadRuntimeConfig(), adminNewPassword)
	},
}

func init() {
	adminPasswordCmd.Flags().StringVar(&adminNewPassword, "new-password", "", "新しい管理者パスワードなのだ。")
	adminCmd.AddCommand(adminUsersCmd, adminProjectsCmd, adminDeleteUserCmd, adminPasswordCmd)
}
