package runner

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/shouni/go-cinegen-kit/internal/config"
	"github.com/shouni/go-cinegen-kit/pkg/domain"
	"github.com/shouni/go-cinegen-kit/pkg/prompts"
)

// ConceptGateway は、コンセプト立案フェーズが必要とするAI操作の集合なのだ。
type ConceptGateway interface {
	ExtractLyrics(ctx context.Context, audio []byte, mimeType string) ([]domain.LyricSegment, error)
	AnalyzeImageStyle(ctx context.Context, image []byte, mimeType string) (string, error)
	GenerateConcepts(ctx context.Context, in prompts.ConceptInput) ([]domain.StoryConcept, error)
	RegenerateConceptsWithFeedback(ctx context.Context, topic, language, genre, duration, feedback string) ([]domain.StoryConcept, error)
}

// ConceptResult はコンセプト立案フェーズの成果物一式です。
// 歌詞と画風は後続フェーズ（質問・台本）でも使うのでまとめて返すのだ。
type ConceptResult struct {
	Concepts    []domain.StoryConcept
	Lyrics      []domain.LyricSegment
	VisualStyle string
}

// ConceptRunner は、トピックと補助素材からコンセプト3案を立案する実体なのだ。
type ConceptRunner struct {
	gateway ConceptGateway
	options config.GenerateOptions
	world   *domain.WorldSetting // 指定されていれば世界観を文脈に混ぜる
}

// NewConceptRunner は ConceptRunner の新しいインスタンスを生成して返すのだ。
func NewConceptRunner(gw ConceptGateway, options config.GenerateOptions, world *domain.WorldSetting) *ConceptRunner {
	return &ConceptRunner{gateway: gw, options: options, world: world}
}

// Run は補助素材の解析とコンセプト生成を一気に行うのだ。
func (cr *ConceptRunner) Run(ctx context.Context) (*ConceptResult, error) {
	result := &ConceptResult{VisualStyle: cr.options.VisualStyle}

	// 1. 音声ファイルが指定されていれば歌詞を抽出するのだ
	if cr.options.AudioFile != "" {
		audio, mimeType, err := readMediaFile(cr.options.AudioFile)
		if err != nil {
			return nil, fmt.Errorf("音声ファイルを読めません: %w", err)
		}
		result.Lyrics, err = cr.gateway.ExtractLyrics(ctx, audio, mimeType)
		if err != nil {
			return nil, err
		}
		slog.Info("歌詞を抽出したのだ", "segments", len(result.Lyrics))
	}

	// 2. 参照画像が指定されていれば画風を1文に要約して採用するのだ
	if cr.options.StyleImage != "" {
		image, mimeType, err := readMediaFile(cr.options.StyleImage)
		if err != nil {
			return nil, fmt.Errorf("参照画像を読めません: %w", err)
		}
		style, err := cr.gateway.AnalyzeImageStyle(ctx, image, mimeType)
		if err != nil {
			return nil, err
		}
		result.VisualStyle = style
		slog.Info("参照画像から画風を決定したのだ", "style", style)
	}

	// 3. 文脈を揃えてコンセプト3案を生成するのだ
	concepts, err := cr.gateway.GenerateConcepts(ctx, prompts.ConceptInput{
		Topic:       cr.options.Topic,
		Language:    cr.options.Language,
		Genre:       cr.options.Genre,
		Duration:    cr.options.Duration,
		VisualStyle: result.VisualStyle,
		Lyrics:      result.Lyrics,
		World:       cr.world,
		Devices:     cr.options.Devices,
	})
	if err != nil {
		return nil, err
	}
	result.Concepts = concepts
	return result, nil
}

// Refine はユーザーのフィードバックを添えてコンセプトを作り直すのだ。
func (cr *ConceptRunner) Refine(ctx context.Context, feedback string) ([]domain.StoryConcept, error) {
	return cr.gateway.RegenerateConceptsWithFeedback(ctx,
		cr.options.Topic, cr.options.Language, cr.options.Genre, cr.options.Duration, feedback)
}

// readMediaFile はファイルを読み込み、拡張子からMIMEタイプを推定するのだ。
func readMediaFile(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return data, mimeType, nil
}
