package cmd

import (
	"fmt"

	"github.com/shouni/go-cinegen-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

var answerText string

// assetsCmd は、質問・キャラ・ロケーションの準備フェーズをまとめるサブコマンドなのだ。
var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "ピラー質問とキャラ・ロケーションのアセットを準備するのだ。",
}

// assetsQuestionsCmd は、選んだコンセプトから質問と素案を生成するのだ。
var assetsQuestionsCmd = &cobra.Command{
	Use:   "questions <concept-id>",
	Short: "コンセプトを選び、ピラー質問7問とキャラ・ロケ素案を生成するのだ。",
	Long: `concept コマンドで立案した中から1案を選ぶのだ。引数はコンセプトのIDか、
一覧の番号（1〜3）なのだよ。物語の深みを決めるピラー質問7問と、
キャラクター3名・ロケーション2件の素案がまとめて生成されるのだ。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteQuestions(cmd.Context(), loadRuntimeConfig(), args[0])
	},
}

// assetsAnswerCmd は、ピラー質問1問に回答を記録するのだ。
var assetsAnswerCmd = &cobra.Command{
	Use:   "answer <question-id>",
	Short: "ピラー質問に回答するのだ。--text 省略時はAIが回答を書くのだ。",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteAnswer(cmd.Context(), loadRuntimeConfig(), args[0], answerText)
	},
}

// assetsSuggestCmd は、追加衣装・追加ロケーションの提案を取り込むのだ。
var assetsSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "キャラの追加衣装とロケーションの提案をAIに出させるのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteSuggestAssets(cmd.Context(), loadRuntimeConfig())
	},
}

// assetsRenderCmd は、ポートレート・衣装・ロケーションプレートを生成するのだ。
var assetsRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "キャラのポートレート・衣装・ロケーションプレートを一括生成するのだ。",
	Long: `画像生成はレート制限のため1枚ずつ間隔を空けて実行されるのだ。
生成済みの画像は飛ばすので、失敗したら原因を直して再実行すれば続きから進むのだよ。
--force で全部作り直すこともできるのだ。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("アセット画像の一括生成を開始するのだ。しばらくかかるのだよ。")
		return pipeline.ExecuteRenderAssets(cmd.Context(), loadRuntimeConfig())
	},
}

func init() {
	assetsAnswerCmd.Flags().StringVar(&answerText, "text", "", "回答の本文なのだ。省略するとAIが回答するのだ。")
	assetsCmd.AddCommand(assetsQuestionsCmd, assetsAnswerCmd, assetsSuggestCmd, assetsRenderCmd)
}
