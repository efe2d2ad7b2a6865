package runner

import (
	"context"
	"log/slog"

	"github.com/shouni/go-cinegen-kit/internal/config"
	"github.com/shouni/go-cinegen-kit/pkg/domain"
	"github.com/shouni/go-cinegen-kit/pkg/prompts"
)

// ScriptGateway は、台本生成フェーズが必要とするAI操作なのだ。
type ScriptGateway interface {
	GenerateScript(ctx context.Context, in prompts.ScriptInput) (*domain.ProductionScript, error)
}

// ScriptInputs は台本生成の確定済み材料一式です。
// ウィザードの前フェーズ（コンセプト選択・質疑応答・アセット準備）の成果が揃う。
type ScriptInputs struct {
	Concept     domain.StoryConcept
	Questions   []domain.Question
	Answers     []domain.Answer
	Characters  []domain.Character
	Locations   []domain.LocationSetting
	Lyrics      []domain.LyricSegment
	VisualStyle string
	World       *domain.WorldSetting // 指定されていればキャラ・ロケを統合する
}

// ScriptRunner は、確定した材料から制作台本を生成する実体なのだ。
type ScriptRunner struct {
	gateway ScriptGateway
	options config.GenerateOptions
}

// NewScriptRunner は ScriptRunner の新しいインスタンスを生成して返すのだ。
func NewScriptRunner(gw ScriptGateway, options config.GenerateOptions) *ScriptRunner {
	return &ScriptRunner{gateway: gw, options: options}
}

// Run は質疑応答の結合とワールド統合を済ませてから台本を生成するのだ。
// ワールドのキャラ・ロケは名前が重複したらワールド側を正とする。
func (sr *ScriptRunner) Run(ctx context.Context, in ScriptInputs) (*domain.ProductionScript, error) {
	chars := in.Characters
	locs := in.Locations
	if in.World != nil {
		chars = domain.MergeCharacters(in.World.Characters, chars)
		locs = domain.MergeLocations(in.World.Locations, locs)
		slog.Info("ワールド設定を統合したのだ",
			"world", in.World.Title, "characters", len(chars), "locations", len(locs))
	}

	script, err := sr.gateway.GenerateScript(ctx, prompts.ScriptInput{
		Concept:       in.Concept,
		QAPairs:       domain.CombineQA(in.Questions, in.Answers),
		Characters:    chars,
		Locations:     locs,
		Language:      sr.options.Language,
		VisualStyle:   in.VisualStyle,
		AspectRatio:   sr.options.AspectRatio,
		Duration:      sr.options.Duration,
		SceneDuration: config.DefaultSceneSeconds,
		Lyrics:        in.Lyrics,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("制作台本を生成したのだ", "title", script.Title, "scenes", len(script.Scenes))
	return script, nil
}
