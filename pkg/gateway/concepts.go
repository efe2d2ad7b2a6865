package gateway

import (
	"context"
	"log/slog"

	"google.golang.org/genai"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
	"github.com/shouni/go-cinegen-kit/pkg/parser"
	"github.com/shouni/go-cinegen-kit/pkg/prompts"
)

// GenerateConcepts はトピックからコンセプト3案を生成するのだ。
// コンセプトはワークフローの入口であり、失敗してもユーザーが手で書き直せる。
// よってエラーは警告ログに落とし、空スライスで続行させる方針です。
// ただしキャンセルだけは呼び出し側に返す。
func (c *Client) GenerateConcepts(ctx context.Context, in prompts.ConceptInput) ([]domain.StoryConcept, error) {
	raw, err := c.generateText(ctx, genai.Text(prompts.BuildConcepts(in)), true, conceptListSchema())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("コンセプト生成に失敗したため空の結果で続行するのだ", "error", err)
		return nil, nil
	}

	var concepts []domain.StoryConcept
	if err := parser.DecodeLenient(raw, &concepts); err != nil {
		slog.Warn("コンセプトのJSON解釈に失敗したのだ", "error", err, "raw_len", len(raw))
		return nil, nil
	}
	return concepts, nil
}

// RegenerateConceptsWithFeedback はユーザーのフィードバック付きでコンセプトを
// 作り直します。失敗時の扱いは GenerateConcepts と同じなのだ。
func (c *Client) RegenerateConceptsWithFeedback(ctx context.Context, topic, language, genre, duration, feedback string) ([]domain.StoryConcept, error) {
	prompt := prompts.BuildConceptsWithFeedback(topic, language, genre, duration, feedback)
	raw, err := c.generateText(ctx, genai.Text(prompt), true, conceptListSchema())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("コンセプト再生成に失敗したのだ", "error", err)
		return nil, nil
	}

	var concepts []domain.StoryConcept
	if err := parser.DecodeLenient(raw, &concepts); err != nil {
		slog.Warn("再生成コンセプトのJSON解釈に失敗したのだ", "error", err)
		return nil, nil
	}
	return concepts, nil
}
