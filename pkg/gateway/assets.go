package gateway

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
	"github.com/shouni/go-cinegen-kit/pkg/parser"
	"github.com/shouni/go-cinegen-kit/pkg/prompts"
)

// GenerateQuestions は選択済みコンセプトからピラー質問とキャラ・ロケ素案を
// 一括生成します。IDはモデルに任せず、ここで uuid を採番するのだ。
// 失敗時は空のバンドルで続行する。質問ゼロでもウィザードは先へ進めるためです。
func (c *Client) GenerateQuestions(ctx context.Context, topic string, concept domain.StoryConcept, language, visualStyle string) (domain.AssetBundle, error) {
	prompt := prompts.BuildQuestions(topic, concept, language, visualStyle)
	raw, err := c.generateText(ctx, genai.Text(prompt), true, questionBundleSchema())
	if err != nil {
		if ctx.Err() != nil {
			return domain.AssetBundle{}, ctx.Err()
		}
		slog.Warn("質問・素案の生成に失敗したため空のバンドルで続行するのだ", "error", err)
		return domain.AssetBundle{}, nil
	}

	var bundle domain.AssetBundle
	if err := parser.DecodeLenient(raw, &bundle); err != nil {
		slog.Warn("質問バンドルのJSON解釈に失敗したのだ", "error", err, "raw_len", len(raw))
		return domain.AssetBundle{}, nil
	}

	for i := range bundle.Questions {
		bundle.Questions[i].ID = uuid.NewString()
	}
	for i := range bundle.Characters {
		bundle.Characters[i].ID = uuid.NewString()
		if bundle.Characters[i].Gender == "" {
			bundle.Characters[i].Gender = domain.GenderNeutral
		}
		bundle.Characters[i].Outfits = []domain.Outfit{}
	}
	for i := range bundle.Locations {
		bundle.Locations[i].ID = uuid.NewString()
	}
	return bundle, nil
}

// SuggestStoryAssets は追加衣装と追加ロケーションの提案を生成します。
// あくまで提案なので、失敗したら空の提案を返して黙って続行するのだ。
func (c *Client) SuggestStoryAssets(ctx context.Context, concept domain.StoryConcept, chars []domain.Character, language string) (domain.SuggestionBundle, error) {
	prompt := prompts.BuildSuggestAssets(concept, chars, language)
	raw, err := c.generateText(ctx, genai.Text(prompt), true, nil)
	if err != nil {
		if ctx.Err() != nil {
			return domain.SuggestionBundle{}, ctx.Err()
		}
		slog.Warn("アセット提案の生成に失敗したのだ", "error", err)
		return domain.SuggestionBundle{}, nil
	}

	var bundle domain.SuggestionBundle
	if err := parser.DecodeLenient(raw, &bundle); err != nil {
		slog.Warn("アセット提案のJSON解釈に失敗したのだ", "error", err)
		return domain.SuggestionBundle{}, nil
	}

	for name, outfits := range bundle.OutfitSuggestions {
		for i := range outfits {
			outfits[i].ID = uuid.NewString()
		}
		bundle.OutfitSuggestions[name] = outfits
	}
	for i := range bundle.LocationSuggestions {
		bundle.LocationSuggestions[i].ID = uuid.NewString()
	}
	return bundle, nil
}

// RegenerateAnswer はピラー質問1問への回答文を生成します。
// 平文出力なのでJSONモードは使わない。失敗時は空文字で続行するのだ。
func (c *Client) RegenerateAnswer(ctx context.Context, question string, concept domain.StoryConcept, language string) (string, error) {
	prompt := prompts.BuildRegenerateAnswer(question, concept, language)
	text, err := c.generateText(ctx, genai.Text(prompt), false, nil)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		slog.Warn("回答の再生成に失敗したのだ", "error", err)
		return "", nil
	}
	return text, nil
}
