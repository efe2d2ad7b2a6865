package cmd

import (
	"log/slog"

	"github.com/shouni/go-cinegen-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// storyboardCmd は、台本全シーンの画像を一括生成するサブコマンドなのだ。
var storyboardCmd = &cobra.Command{
	Use:   "storyboard",
	Short: "プロジェクトの全シーンのストーリーボード画像を一括生成するのだ。",
	Long: `台本の各シーンの visualPrompt から画像を1枚ずつ生成するのだ。
レート制限のためシーンごとに間隔を空けるので、シーン数に応じて分単位でかかるのだよ。
既定では最初の失敗で中断するけれど、生成済みの分はプロジェクトに保存されるから、
再実行すれば未生成のシーンから続きが進むのだ。--continue-on-error で
失敗をスキップして完走させることもできるのだ。`,
	RunE: storyboardCommand,
}

func storyboardCommand(cmd *cobra.Command, args []string) error {
	cfg := loadRuntimeConfig()
	slog.Info("ストーリーボードの一括生成を起動するのだ！",
		"image_model", cfg.GeminiImageModel,
		"interval", opts.RateInterval,
		"continue_on_error", opts.ContinueOnError)
	return pipeline.ExecuteStoryboard(cmd.Context(), cfg)
}
