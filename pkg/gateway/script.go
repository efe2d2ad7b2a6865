package gateway

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
	"github.com/shouni/go-cinegen-kit/pkg/parser"
	"github.com/shouni/go-cinegen-kit/pkg/prompts"
)

// ErrScriptGeneration は台本生成の失敗を表すセンチネルです。
// コンセプトや質問と違って台本は後続パイプラインの土台なので、
// 空の結果で誤魔化さず呼び出し側に必ずエラーを返すのだ。
var ErrScriptGeneration = errors.New("script generation failed")

// GenerateScript は最終的な制作台本を生成します。
// モデル出力の scenes に加えて、呼び出し側が確定させたキャラ・ロケ・
// 画風・アスペクト比をここで台本に焼き込むのだ。
func (c *Client) GenerateScript(ctx context.Context, in prompts.ScriptInput) (*domain.ProductionScript, error) {
	raw, err := c.generateText(ctx, genai.Text(prompts.BuildScript(in)), true, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScriptGeneration, err)
	}

	var payload struct {
		Title    string         `json:"title"`
		Synopsis string         `json:"synopsis"`
		Scenes   []domain.Scene `json:"scenes"`
	}
	if err := parser.DecodeLenient(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: 台本JSONを解釈できません: %w", ErrScriptGeneration, err)
	}
	if len(payload.Scenes) == 0 {
		return nil, fmt.Errorf("%w: シーンが1つも生成されませんでした", ErrScriptGeneration)
	}

	title := payload.Title
	if title == "" {
		title = in.Concept.Title
	}
	synopsis := payload.Synopsis
	if synopsis == "" {
		synopsis = in.Concept.Logline
	}

	return &domain.ProductionScript{
		Title:               title,
		Genre:               in.Concept.Genre,
		Synopsis:            synopsis,
		SelectedVisualStyle: in.VisualStyle,
		AspectRatio:         in.AspectRatio,
		Characters:          in.Characters,
		Locations:           in.Locations,
		Scenes:              payload.Scenes,
	}, nil
}
