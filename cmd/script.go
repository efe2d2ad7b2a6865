package cmd

import (
	"log/slog"

	"github.com/shouni/go-cinegen-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// scriptCmd は、確定済みの材料から制作台本を生成するサブコマンドなのだ。
var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "コンセプトと質疑応答から制作台本を生成するのだ。",
	Long: `選択済みコンセプト、ピラー質問への回答、キャラ・ロケーションを材料に、
シーン列（スクリーンプレイ）を生成してプロジェクトとして保存するのだ。
未回答の質問にはAIの提案回答が充当されるのだよ。--world を指定すると
ワールド設定のキャラ・ロケが統合されるのだ。`,
	RunE: scriptCommand,
}

func scriptCommand(cmd *cobra.Command, args []string) error {
	cfg := loadRuntimeConfig()
	slog.Info("台本生成を開始するのだ！",
		"text_model", cfg.GeminiModel,
		"language", opts.Language,
		"aspect_ratio", opts.AspectRatio)
	return pipeline.ExecuteScript(cmd.Context(), cfg)
}
