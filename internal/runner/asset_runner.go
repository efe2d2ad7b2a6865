package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/shouni/go-cinegen-kit/internal/config"
	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

// AssetGateway は、アセット準備フェーズが必要とするAI操作の集合なのだ。
type AssetGateway interface {
	GenerateQuestions(ctx context.Context, topic string, concept domain.StoryConcept, language, visualStyle string) (domain.AssetBundle, error)
	SuggestStoryAssets(ctx context.Context, concept domain.StoryConcept, chars []domain.Character, language string) (domain.SuggestionBundle, error)
	RegenerateAnswer(ctx context.Context, question string, concept domain.StoryConcept, language string) (string, error)
	GenerateCharacterPortrait(ctx context.Context, char domain.Character, style string) (string, error)
	GenerateOutfitImage(ctx context.Context, char domain.Character, outfit domain.Outfit, style string) (string, error)
	GenerateLocationImage(ctx context.Context, loc domain.LocationSetting, style string) (string, error)
}

// AssetRunner は、質問生成とキャラ・ロケのビジュアル準備を担う実体なのだ。
// 画像を伴う操作はストーリーボードと同じレートリミッタ方針で間隔を空ける。
type AssetRunner struct {
	gateway AssetGateway
	options config.GenerateOptions
	limiter *rate.Limiter
}

// NewAssetRunner は AssetRunner の新しいインスタンスを生成して返すのだ。
func NewAssetRunner(gw AssetGateway, options config.GenerateOptions, interval time.Duration) *AssetRunner {
	return &AssetRunner{
		gateway: gw,
		options: options,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// PrepareQuestions はコンセプトからピラー質問とキャラ・ロケ素案を生成するのだ。
func (ar *AssetRunner) PrepareQuestions(ctx context.Context, concept domain.StoryConcept, visualStyle string) (domain.AssetBundle, error) {
	bundle, err := ar.gateway.GenerateQuestions(ctx, ar.options.Topic, concept, ar.options.Language, visualStyle)
	if err != nil {
		return domain.AssetBundle{}, err
	}
	slog.Info("質問とアセット素案を生成したのだ",
		"questions", len(bundle.Questions), "characters", len(bundle.Characters), "locations", len(bundle.Locations))
	return bundle, nil
}

// Suggest は追加衣装・追加ロケーションの提案を取得するのだ。
func (ar *AssetRunner) Suggest(ctx context.Context, concept domain.StoryConcept, chars []domain.Character) (domain.SuggestionBundle, error) {
	return ar.gateway.SuggestStoryAssets(ctx, concept, chars, ar.options.Language)
}

// AnswerQuestion はピラー質問1問へのAI回答を取得するのだ。
func (ar *AssetRunner) AnswerQuestion(ctx context.Context, question string, concept domain.StoryConcept) (string, error) {
	return ar.gateway.RegenerateAnswer(ctx, question, concept, ar.options.Language)
}

// RenderPortraits は全キャラクターのポートレートを順番に生成するのだ。
// 生成済みは飛ばす。失敗は即中断で、生成済み分はキャラに残る。
func (ar *AssetRunner) RenderPortraits(ctx context.Context, chars []domain.Character, style string) (int, error) {
	generated := 0
	for i := range chars {
		if chars[i].AvatarURL != "" && !ar.options.Force {
			continue
		}
		if err := ar.limiter.Wait(ctx); err != nil {
			return generated, err
		}
		slog.Info("ポートレートを生成中...", "character", chars[i].Name)

		url, err := ar.gateway.GenerateCharacterPortrait(ctx, chars[i], style)
		if err != nil {
			return generated, fmt.Errorf("%s のポートレート生成に失敗しました: %w", chars[i].Name, err)
		}
		chars[i].AvatarURL = url
		generated++
	}
	return generated, nil
}

// RenderOutfits はキャラクターの全衣装コンセプトを順番に生成するのだ。
func (ar *AssetRunner) RenderOutfits(ctx context.Context, char *domain.Character, style string) (int, error) {
	generated := 0
	for i := range char.Outfits {
		if char.Outfits[i].ImageURL != "" && !ar.options.Force {
			continue
		}
		if err := ar.limiter.Wait(ctx); err != nil {
			return generated, err
		}
		slog.Info("衣装コンセプトを生成中...", "character", char.Name, "outfit", char.Outfits[i].Name)

		url, err := ar.gateway.GenerateOutfitImage(ctx, *char, char.Outfits[i], style)
		if err != nil {
			return generated, fmt.Errorf("衣装 %q の生成に失敗しました: %w", char.Outfits[i].Name, err)
		}
		char.Outfits[i].ImageURL = url
		generated++
	}
	return generated, nil
}

// RenderLocations は全ロケーションプレートを順番に生成するのだ。
func (ar *AssetRunner) RenderLocations(ctx context.Context, locs []domain.LocationSetting, style string) (int, error) {
	generated := 0
	for i := range locs {
		if locs[i].ImageURL != "" && !ar.options.Force {
			continue
		}
		if err := ar.limiter.Wait(ctx); err != nil {
			return generated, err
		}
		slog.Info("ロケーションプレートを生成中...", "location", locs[i].Name)

		url, err := ar.gateway.GenerateLocationImage(ctx, locs[i], style)
		if err != nil {
			return generated, fmt.Errorf("ロケーション %q の生成に失敗しました: %w", locs[i].Name, err)
		}
		locs[i].ImageURL = url
		generated++
	}
	return generated, nil
}
