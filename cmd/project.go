package cmd

import (
	"github.com/shouni/go-cinegen-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// projectCmd は、保存済みプロジェクトの管理をまとめるサブコマンドなのだ。
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "保存済みプロジェクトを管理するのだ。",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "自分のプロジェクトを新しい順で一覧するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteProjectList(loadRuntimeConfig())
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "プロジェクトを削除するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteProjectDelete(loadRuntimeConfig(), args[0])
	},
}

func init() {
	projectCmd.AddCommand(projectListCmd, projectDeleteCmd)
}
