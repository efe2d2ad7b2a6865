package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/patrickmn/go-cache"
	"google.golang.org/genai"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
	"github.com/shouni/go-cinegen-kit/pkg/prompts"
)

// blockNothing は画像生成のセーフティを全カテゴリで BLOCK_NONE に寄せるのだ。
// 映画的な暴力描写やダークな画風を既定のフィルタが弾きすぎるためで、
// 最終判断はモデル側の finish reason に委ねる。
func blockNothing() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryHarassment,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, cat := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  cat,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}
	return settings
}

// generateImage は画像生成の共通経路なのだ。戻り値は data URL。
// refDataURL が空でなければ参照画像をインラインで添付する。順序はパーツの
// 並びがそのままモデルへの文脈順になるため、参照画像→指示文の順で固定です。
func (c *Client) generateImage(ctx context.Context, prompt, aspectRatio, refDataURL string) (string, error) {
	key := imageCacheKey(c.imageModel, prompt, aspectRatio, refDataURL)
	if cached, ok := c.imgCache.Get(key); ok {
		slog.Debug("画像キャッシュにヒットしたのだ", "key", key[:12])
		return cached.(string), nil
	}

	parts := make([]*genai.Part, 0, 2)
	if refDataURL != "" {
		mimeType, data, err := decodeDataURL(refDataURL)
		if err != nil {
			return "", fmt.Errorf("参照画像を読めません: %w", err)
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: mimeType, Data: data},
		})
	}
	parts = append(parts, &genai.Part{Text: prompt})

	config := &genai.GenerateContentConfig{
		SafetySettings: blockNothing(),
	}
	if aspectRatio != "" {
		config.ImageConfig = &genai.ImageConfig{AspectRatio: aspectRatio}
	}

	resp, err := c.genc.Models.GenerateContent(ctx, c.imageModel,
		[]*genai.Content{{Parts: parts}}, config)
	if err != nil {
		return "", fmt.Errorf("画像生成のAPI呼び出しに失敗しました: %w", err)
	}

	dataURL, err := decodeImageResponse(resp)
	if err != nil {
		return "", err
	}
	c.imgCache.Set(key, dataURL, cache.DefaultExpiration)
	return dataURL, nil
}

// GenerateStoryboardFrame はシーン1カット分のスチルを生成するのだ。
// アスペクト比はユーザー選択（台本の比率）をそのまま通す。
func (c *Client) GenerateStoryboardFrame(ctx context.Context, shot, sceneContext, style, aspectRatio string) (string, error) {
	return c.generateImage(ctx, prompts.BuildStoryboardFrame(shot, sceneContext, style), aspectRatio, "")
}

// GenerateCharacterPortrait はキャラクターポートレートを 1:1 で生成します。
func (c *Client) GenerateCharacterPortrait(ctx context.Context, char domain.Character, style string) (string, error) {
	prompt := prompts.BuildCharacterPortrait(char.Name, char.Gender, char.Description, style, map[string]string{
		"age": char.Age, "race": char.Race, "bodyType": char.BodyType, "role": char.Role,
	})
	return c.generateImage(ctx, prompt, "1:1", "")
}

// GenerateOutfitImage は衣装コンセプト画像を 3:4 で生成します。
// キャラのポートレートがあれば参照画像として添付し、顔と体格の一貫性を保つのだ。
func (c *Client) GenerateOutfitImage(ctx context.Context, char domain.Character, outfit domain.Outfit, style string) (string, error) {
	prompt := prompts.BuildOutfitConcept(char.Name, char.Gender, outfit.Description, style, map[string]string{
		"outfit": outfit.Name, "bodyType": char.BodyType,
	})
	return c.generateImage(ctx, prompt, "3:4", char.AvatarURL)
}

// GenerateLocationImage はロケーションプレートを 16:9 で生成します。
func (c *Client) GenerateLocationImage(ctx context.Context, loc domain.LocationSetting, style string) (string, error) {
	return c.generateImage(ctx, prompts.BuildLocationPlate(loc.Name, loc.Description, style), "16:9", "")
}
