package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel        = "gemini-3-flash-preview"
	DefaultImageModel   = "gemini-2.5-flash-image"
	DefaultVideoModel   = "veo-3.1-fast-generate-preview"
	DefaultHTTPTimeout  = 120 * time.Second
	DefaultTemperature  = 0.8
	DefaultRateLimit    = 6 * time.Second // 画像一括生成の最小呼び出し間隔です
	DefaultDBFile       = "cinegen.db"
	DefaultLanguage     = "English"
	DefaultGenre        = "Drama"
	DefaultDuration     = "1 Minute"
	DefaultVisualStyle  = "Cinematic realism"
	DefaultAspectRatio  = "16:9"
	DefaultOutputDir    = "output"
	DefaultAdminPass    = "admin" // 初回起動時の管理者パスワード。kv で上書き可能なのだ
	DefaultSceneSeconds = 5
)

// Config はアプリケーション全体の環境設定（APIキーやモデル指定）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string
	GeminiVideoModel string
	DBFile           string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		GeminiVideoModel: envutil.GetEnv("VIDEO_GEMINI_MODEL", DefaultVideoModel),
		DBFile:           envutil.GetEnv("CINEGEN_DB", DefaultDBFile),
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	Topic      string // --topic
	AudioFile  string // --audio: 歌詞抽出に使う音声ファイル
	StyleImage string // --style-image: 画風解析に使う参照画像
	ProjectID  string // --project
	WorldID    string // --world
	OutputDir  string // --output-dir
	OutputFile string // --output-file

	// 物語設定
	Language    string   // --language
	Genre       string   // --genre
	Duration    string   // --duration
	VisualStyle string   // --visual-style
	AspectRatio string   // --aspect-ratio
	Devices     []string // --device: ナラティブ・デバイス指定（複数可）

	// AI挙動設定
	AIModel     string  // --model: テキスト生成用のGeminiモデル
	ImageModel  string  // --image-model: 画像生成用のGeminiモデル
	Temperature float64 // --temperature

	// 実行制御
	HTTPTimeout     time.Duration // --http-timeout: API呼び出し1回あたりの上限
	RateInterval    time.Duration // --rate-interval: 一括画像生成の呼び出し間隔
	ContinueOnError bool          // --continue-on-error: 一括生成で失敗をスキップして続行
	Force           bool          // --force: 生成済み画像も作り直す
}
