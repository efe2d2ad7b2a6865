package cmd

import (
	"github.com/shouni/go-cinegen-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	exportFormats []string
	exportScenes  []int
)

// exportCmd は、プロジェクトの成果物を書き出すサブコマンドなのだ。
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "台本とストーリーボードを配布可能な形式で書き出すのだ。",
	Long: `プロジェクトから成果物を書き出すのだ。形式は --format で選べるのだよ:
  screenplay  ワープロ互換の脚本ドキュメント（.doc）
  sheet       ストーリーボードのコンタクトシート（PNG、6シーン/枚）
  zip         生成画像のZIPアーカイブ
省略すると全形式を書き出すのだ。AIを使わないのでAPIキーは不要なのだ。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteExport(cmd.Context(), loadRuntimeConfig(), exportFormats, exportScenes)
	},
}

func init() {
	exportCmd.Flags().StringSliceVar(&exportFormats, "format", nil, "書き出す形式（screenplay / sheet / zip、複数指定可）なのだ。")
	exportCmd.Flags().IntSliceVar(&exportScenes, "scene", nil, "ZIPに入れるシーン番号の絞り込み（複数指定可）なのだ。")
}
