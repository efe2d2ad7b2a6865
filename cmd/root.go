package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-cinegen-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は、全サブコマンドで共有する実行時パラメータなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Topic, "topic", "t", "", "物語のトピックまたはログラインなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.AudioFile, "audio", "", "歌詞を抽出する音声ファイルのパスなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.StyleImage, "style-image", "", "画風を解析する参照画像のパスなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.ProjectID, "project", "p", "", "対象プロジェクトのID（未指定なら最新）なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.WorldID, "world", "w", "", "文脈として使うワールド設定のIDなのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "成果物を保存するディレクトリなのだ。")

	// --- 物語設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Language, "language", "l", config.DefaultLanguage, "出力言語なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.Genre, "genre", "g", config.DefaultGenre, "ジャンルなのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Duration, "duration", config.DefaultDuration, "想定尺なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.VisualStyle, "visual-style", config.DefaultVisualStyle, "画風の指定なのだ。--style-image があればそちらを優先するのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.AspectRatio, "aspect-ratio", config.DefaultAspectRatio, "画像のアスペクト比（16:9 / 9:16 / 1:1）なのだ。")
	rootCmd.PersistentFlags().StringSliceVar(&opts.Devices, "device", nil, "ナラティブ・デバイス（倒叙など、複数指定可）なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "使用する Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "使用する画像生成モデル名なのだ。")
	rootCmd.PersistentFlags().Float64Var(&opts.Temperature, "temperature", config.DefaultTemperature, "テキスト生成の温度なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "AI呼び出し1回あたりのタイムアウトなのだ。")

	// --- 一括生成の実行制御 ---
	rootCmd.PersistentFlags().DurationVar(&opts.RateInterval, "rate-interval", config.DefaultRateLimit, "画像生成リクエストの最小間隔なのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.ContinueOnError, "continue-on-error", false, "一括生成で失敗シーンをスキップして続行するのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.Force, "force", false, "生成済みの画像も作り直すのだ。")
}

// aiFreeCommands は、Gemini APIを使わないコマンド群なのだ。
// これらはAPIキーなしでも動かせるようにする。
var aiFreeCommands = map[string]bool{
	"user":    true,
	"project": true,
	"world":   true,
	"admin":   true,
	"export":  true,
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	for c := cmd; c != nil; c = c.Parent() {
		if aiFreeCommands[c.Name()] {
			return nil
		}
	}
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-cinegen-go",
		addAppFlags,
		preRunAppE,
		conceptCmd,
		assetsCmd,
		scriptCmd,
		storyboardCmd,
		exportCmd,
		projectCmd,
		worldCmd,
		userCmd,
		adminCmd,
	)
}

// loadRuntimeConfig は環境変数とフラグをマージした設定を返すのだ。
func loadRuntimeConfig() *config.Config {
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts
	return cfg
}
