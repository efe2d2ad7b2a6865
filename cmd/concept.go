package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-cinegen-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

var conceptFeedback string

// conceptCmd は、トピックからコンセプト3案を立案するサブコマンドなのだ。
// ウィザードの最初のフェーズで、結果は途中状態として保存されるのだよ。
var conceptCmd = &cobra.Command{
	Use:   "concept",
	Short: "トピックから物語コンセプト3案を立案するのだ。",
	Long: `トピック（--topic）を基に、AIが映画のコンセプトを3案立案するのだ。
--audio で音声から歌詞を抽出して文脈に混ぜたり、--style-image で参照画像から
画風を決めたり、--world で既存のワールド設定を下敷きにしたりできるのだよ。
--feedback を付けると、前回の案へのフィードバックを踏まえて作り直すのだ。`,
	RunE: conceptCommand,
}

func init() {
	conceptCmd.Flags().StringVar(&conceptFeedback, "feedback", "", "前回のコンセプトへのフィードバックなのだ。")
}

func conceptCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if conceptFeedback == "" && opts.Topic == "" {
		return fmt.Errorf("トピック（--topic）を指定してほしいのだ")
	}

	cfg := loadRuntimeConfig()
	slog.Info("コンセプト立案を開始するのだ！",
		"topic", opts.Topic,
		"text_model", cfg.GeminiModel,
		"language", opts.Language)

	if conceptFeedback != "" {
		return pipeline.ExecuteRefineConcepts(ctx, cfg, conceptFeedback)
	}
	return pipeline.ExecuteConcepts(ctx, cfg)
}
