package cmd

import (
	"github.com/shouni/go-cinegen-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

var worldTitle string

// worldCmd は、再利用可能なワールド設定の管理をまとめるサブコマンドなのだ。
var worldCmd = &cobra.Command{
	Use:   "world",
	Short: "再利用可能なワールド設定を管理するのだ。",
	Long: `完成したプロジェクトからキャラクター・ロケーション・画風を切り出して、
「ワールド設定」として保存できるのだ。次の作品で --world に指定すれば、
同じ世界観・同じ登場人物で続編が作れるのだよ。`,
}

var worldCreateCmd = &cobra.Command{
	Use:   "create <project-id>",
	Short: "プロジェクトからワールド設定を切り出すのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteWorldCreate(loadRuntimeConfig(), args[0], worldTitle)
	},
}

var worldListCmd = &cobra.Command{
	Use:   "list",
	Short: "自分のワールド設定を一覧するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteWorldList(loadRuntimeConfig())
	},
}

var worldDeleteCmd = &cobra.Command{
	Use:   "delete <world-id>",
	Short: "ワールド設定を削除するのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteWorldDelete(loadRuntimeConfig(), args[0])
	},
}

func init() {
	worldCreateCmd.Flags().StringVar(&worldTitle, "title", "", "ワールドの名前なのだ。省略すると台本から決まるのだ。")
	worldCmd.AddCommand(worldCreateCmd, worldListCmd, worldDeleteCmd)
}
