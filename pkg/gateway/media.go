package gateway

import (
	"context"
	"log/slog"

	"google.golang.org/genai"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
	"github.com/shouni/go-cinegen-kit/pkg/parser"
	"github.com/shouni/go-cinegen-kit/pkg/prompts"
)

// ExtractLyrics は音声データからタイムスタンプ付き歌詞を抽出します。
// 歌詞はあくまでコンセプト生成の補助文脈なので、失敗しても歌詞なしで
// 続行させるのだ。
func (c *Client) ExtractLyrics(ctx context.Context, audio []byte, mimeType string) ([]domain.LyricSegment, error) {
	contents := []*genai.Content{{Parts: []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
		{Text: prompts.LyricExtraction},
	}}}

	raw, err := c.generateText(ctx, contents, true, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("歌詞の抽出に失敗したため歌詞なしで続行するのだ", "error", err)
		return nil, nil
	}

	var segments []domain.LyricSegment
	if err := parser.DecodeLenient(raw, &segments); err != nil {
		slog.Warn("歌詞JSONの解釈に失敗したのだ", "error", err)
		return nil, nil
	}
	return segments, nil
}

// defaultVisualStyle は画風解析に失敗したときのフォールバック表現です。
const defaultVisualStyle = "Cinematic realism"

// AnalyzeImageStyle は参照画像の画風を1文に要約します。
// 失敗時は無難な既定画風に倒すのだ。
func (c *Client) AnalyzeImageStyle(ctx context.Context, image []byte, mimeType string) (string, error) {
	contents := []*genai.Content{{Parts: []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
		{Text: prompts.StyleAnalysis},
	}}}

	style, err := c.generateText(ctx, contents, false, nil)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		slog.Warn("画風の解析に失敗したため既定の画風で続行するのだ", "error", err)
		return defaultVisualStyle, nil
	}
	if style == "" {
		return defaultVisualStyle, nil
	}
	return style, nil
}
