package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/shouni/go-cinegen-kit/internal/config"
	"github.com/shouni/go-cinegen-kit/internal/runner"
	"github.com/shouni/go-cinegen-kit/pkg/domain"
	"github.com/shouni/go-cinegen-kit/pkg/gateway"
)

// BuildConceptRunner はコンセプト立案を担当する Runner を構築します。
// --world が指定されていればワールド設定を読み込んで文脈に渡すのだ。
func BuildConceptRunner(appCtx *AppContext, userID string) (*runner.ConceptRunner, error) {
	world, err := LoadWorld(appCtx, userID)
	if err != nil {
		return nil, err
	}
	return runner.NewConceptRunner(appCtx.Gateway, appCtx.Options, world), nil
}

// BuildAssetRunner は質問生成とビジュアル準備を担当する Runner を構築します。
func BuildAssetRunner(appCtx *AppContext) *runner.AssetRunner {
	return runner.NewAssetRunner(appCtx.Gateway, appCtx.Options, rateInterval(appCtx))
}

// BuildScriptRunner は台本生成を担当する Runner を構築します。
func BuildScriptRunner(appCtx *AppContext) *runner.ScriptRunner {
	return runner.NewScriptRunner(appCtx.Gateway, appCtx.Options)
}

// BuildStoryboardRunner はストーリーボード一括生成を担当する Runner を構築します。
func BuildStoryboardRunner(appCtx *AppContext) *runner.StoryboardRunner {
	return runner.NewStoryboardRunner(
		appCtx.Gateway,
		rateInterval(appCtx),
		appCtx.Options.ContinueOnError,
		appCtx.Options.Force,
	)
}

// BuildExportRunner は成果物の書き出しを担当する Runner を構築します。
func BuildExportRunner(appCtx *AppContext) *runner.ExportRunner {
	return runner.NewExportRunner(appCtx.Options)
}

// InitializeGateway は Gemini ゲートウェイを初期化します。
func InitializeGateway(ctx context.Context, cfg *config.Config) (*gateway.Client, error) {
	textModel := cfg.Options.AIModel
	if textModel == "" {
		textModel = cfg.GeminiModel
	}
	imageModel := cfg.Options.ImageModel
	if imageModel == "" {
		imageModel = cfg.GeminiImageModel
	}
	temperature := cfg.Options.Temperature
	if temperature == 0 {
		temperature = config.DefaultTemperature
	}

	gw, err := gateway.New(ctx, gateway.Config{
		APIKey:      cfg.GeminiAPIKey,
		TextModel:   textModel,
		ImageModel:  imageModel,
		VideoModel:  cfg.GeminiVideoModel,
		Temperature: float32(temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("ゲートウェイの初期化に失敗したのだ: %w", err)
	}
	return gw, nil
}

// LoadWorld は --world 指定があればワールド設定を読み込むのだ。未指定なら nil。
func LoadWorld(appCtx *AppContext, userID string) (*domain.WorldSetting, error) {
	if appCtx.Options.WorldID == "" {
		return nil, nil
	}
	world, err := appCtx.Store.GetWorld(appCtx.Options.WorldID, userID)
	if err != nil {
		return nil, fmt.Errorf("ワールド %q の読み込みに失敗しました: %w", appCtx.Options.WorldID, err)
	}
	return world, nil
}

func rateInterval(appCtx *AppContext) time.Duration {
	if appCtx.Options.RateInterval > 0 {
		return appCtx.Options.RateInterval
	}
	return config.DefaultRateLimit
}
