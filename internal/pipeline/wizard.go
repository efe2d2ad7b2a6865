package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shouni/go-cinegen-kit/internal/builder"
	"github.com/shouni/go-cinegen-kit/internal/config"
	"github.com/shouni/go-cinegen-kit/internal/runner"
	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

// ExecuteConcepts は、トピックと補助素材からコンセプト3案を立案して
// 途中状態に保存するのだ（Phase 1）。
func ExecuteConcepts(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	user, err := requireUser(appCtx)
	if err != nil {
		return err
	}

	conceptRunner, err := builder.BuildConceptRunner(appCtx, user.Email)
	if err != nil {
		return err
	}

	opCtx, cancel := opTimeout(ctx, cfg)
	defer cancel()
	result, err := conceptRunner.Run(opCtx)
	if err != nil {
		return err
	}

	// 新しい立案は以前のウィザードをやり直す操作なので、状態は作り直すのだ
	state := &wizardState{
		Topic:       cfg.Options.Topic,
		VisualStyle: result.VisualStyle,
		Lyrics:      result.Lyrics,
		Concepts:    result.Concepts,
	}
	if err := saveWizardState(appCtx, user.Email, state); err != nil {
		return err
	}

	printConcepts(result.Concepts)
	return nil
}

// ExecuteRefineConcepts は、フィードバック付きでコンセプトを作り直すのだ。
func ExecuteRefineConcepts(ctx context.Context, cfg *config.Config, feedback string) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	user, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	state, err := loadWizardState(appCtx, user.Email)
	if err != nil {
		return err
	}
	if state.Topic == "" && cfg.Options.Topic != "" {
		state.Topic = cfg.Options.Topic
	}

	conceptRunner, err := builder.BuildConceptRunner(appCtx, user.Email)
	if err != nil {
		return err
	}

	opCtx, cancel := opTimeout(ctx, cfg)
	defer cancel()
	concepts, err := conceptRunner.Refine(opCtx, feedback)
	if err != nil {
		return err
	}

	state.Concepts = concepts
	state.SelectedConcept = nil
	if err := saveWizardState(appCtx, user.Email, state); err != nil {
		return err
	}

	printConcepts(concepts)
	return nil
}

// ExecuteQuestions は、選んだコンセプトからピラー質問とキャラ・ロケ素案を
// 生成するのだ（Phase 2）。
func ExecuteQuestions(ctx context.Context, cfg *config.Config, conceptID string) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	user, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	state, err := loadWizardState(appCtx, user.Email)
	if err != nil {
		return err
	}

	concept, err := selectConcept(state, conceptID)
	if err != nil {
		return err
	}

	assetRunner := builder.BuildAssetRunner(appCtx)
	opCtx, cancel := opTimeout(ctx, cfg)
	defer cancel()
	bundle, err := assetRunner.PrepareQuestions(opCtx, *concept, state.VisualStyle)
	if err != nil {
		return err
	}

	state.SelectedConcept = concept
	state.Questions = bundle.Questions
	state.Characters = bundle.Characters
	state.Locations = bundle.Locations
	state.Answers = nil
	if err := saveWizardState(appCtx, user.Email, state); err != nil {
		return err
	}

	fmt.Printf("選択: %s\n\n", concept.Title)
	for i, q := range state.Questions {
		fmt.Printf("Q%d [%s] %s\n", i+1, q.ID, q.Question)
		if q.SuggestedAnswer != "" {
			fmt.Printf("    提案: %s\n", q.SuggestedAnswer)
		}
	}
	fmt.Printf("\nキャラクター %d 名、ロケーション %d 件の素案を保存したのだ。\n",
		len(state.Characters), len(state.Locations))
	return nil
}

// ExecuteAnswer は、ピラー質問1問に回答を記録するのだ。
// answer が空のときはAIに回答を書かせる。
func ExecuteAnswer(ctx context.Context, cfg *config.Config, questionID, answer string) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	user, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	state, err := loadWizardState(appCtx, user.Email)
	if err != nil {
		return err
	}
	if state.SelectedConcept == nil {
		return fmt.Errorf("コンセプトが未選択です。先に `assets questions` を実行してほしいのだ")
	}

	question, ok := findQuestion(state.Questions, questionID)
	if !ok {
		return fmt.Errorf("質問 %q が見つからないのだ", questionID)
	}

	if answer == "" {
		assetRunner := builder.BuildAssetRunner(appCtx)
		opCtx, cancel := opTimeout(ctx, cfg)
		defer cancel()
		answer, err = assetRunner.AnswerQuestion(opCtx, question.Question, *state.SelectedConcept)
		if err != nil {
			return err
		}
		if answer == "" {
			return fmt.Errorf("AIが回答を生成できなかったのだ。もう一度試してほしい")
		}
	}

	state.Answers = upsertAnswer(state.Answers, domain.Answer{QuestionID: question.ID, Answer: answer})
	if err := saveWizardState(appCtx, user.Email, state); err != nil {
		return err
	}

	fmt.Printf("回答を記録したのだ:\nQ: %s\nA: %s\n", question.Question, answer)
	return nil
}

// ExecuteSuggestAssets は、追加衣装・追加ロケーションの提案を取り込むのだ。
func ExecuteSuggestAssets(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	user, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	state, err := loadWizardState(appCtx, user.Email)
	if err != nil {
		return err
	}
	if state.SelectedConcept == nil {
		return fmt.Errorf("コンセプトが未選択です。先に `assets questions` を実行してほしいのだ")
	}

	assetRunner := builder.BuildAssetRunner(appCtx)
	opCtx, cancel := opTimeout(ctx, cfg)
	defer cancel()
	suggestions, err := assetRunner.Suggest(opCtx, *state.SelectedConcept, state.Characters)
	if err != nil {
		return err
	}

	added := 0
	for i := range state.Characters {
		outfits := suggestions.OutfitSuggestions[state.Characters[i].Name]
		state.Characters[i].Outfits = append(state.Characters[i].Outfits, outfits...)
		added += len(outfits)
	}
	state.Locations = domain.MergeLocations(state.Locations, suggestions.LocationSuggestions)
	if err := saveWizardState(appCtx, user.Email, state); err != nil {
		return err
	}

	fmt.Printf("衣装 %d 点とロケーション提案を取り込んだのだ（ロケーション計 %d 件）。\n",
		added, len(state.Locations))
	return nil
}

// ExecuteRenderAssets は、キャラのポートレート・衣装・ロケーションプレートを
// まとめて生成するのだ。レート制限があるため順次実行で時間がかかる。
func ExecuteRenderAssets(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	user, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	state, err := loadWizardState(appCtx, user.Email)
	if err != nil {
		return err
	}
	if len(state.Characters) == 0 && len(state.Locations) == 0 {
		return fmt.Errorf("生成対象のアセットが無いのだ。先に `assets questions` を実行してほしい")
	}

	assetRunner := builder.BuildAssetRunner(appCtx)
	style := state.VisualStyle

	// 失敗しても途中までの成果は必ず状態に残すのだ
	total := 0
	defer func() {
		if err := saveWizardState(appCtx, user.Email, state); err != nil {
			slog.Error("途中状態の保存に失敗したのだ", "error", err)
		}
	}()

	n, err := assetRunner.RenderPortraits(ctx, state.Characters, style)
	total += n
	if err != nil {
		return err
	}
	for i := range state.Characters {
		n, err = assetRunner.RenderOutfits(ctx, &state.Characters[i], style)
		total += n
		if err != nil {
			return err
		}
	}
	n, err = assetRunner.RenderLocations(ctx, state.Locations, style)
	total += n
	if err != nil {
		return err
	}

	fmt.Printf("アセット画像を %d 枚生成したのだ。\n", total)
	return nil
}

// ExecuteScript は、確定済みの材料から制作台本を生成してプロジェクトとして
// 保存するのだ（Phase 3）。未回答の質問には提案回答を充当する。
func ExecuteScript(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	user, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	state, err := loadWizardState(appCtx, user.Email)
	if err != nil {
		return err
	}
	if state.SelectedConcept == nil {
		return fmt.Errorf("コンセプトが未選択です。先に `assets questions` を実行してほしいのだ")
	}

	world, err := builder.LoadWorld(appCtx, user.Email)
	if err != nil {
		return err
	}

	scriptRunner := builder.BuildScriptRunner(appCtx)
	opCtx, cancel := opTimeout(ctx, cfg)
	defer cancel()
	script, err := scriptRunner.Run(opCtx, runner.ScriptInputs{
		Concept:     *state.SelectedConcept,
		Questions:   state.Questions,
		Answers:     fillMissingAnswers(state.Questions, state.Answers),
		Characters:  state.Characters,
		Locations:   state.Locations,
		Lyrics:      state.Lyrics,
		VisualStyle: state.VisualStyle,
		World:       world,
	})
	if err != nil {
		return err
	}

	project := domain.Project{
		ID:        uuid.NewString(),
		UserID:    user.Email,
		Title:     script.Title,
		CreatedAt: time.Now(),
		Script:    *script,
	}
	if err := appCtx.Store.SaveProject(project); err != nil {
		return err
	}
	// 台本が確定したのでウィザードの途中状態は役目を終えたのだ
	if err := appCtx.Store.ClearAutosave(user.Email); err != nil {
		slog.Warn("途中状態の破棄に失敗したのだ", "error", err)
	}

	fmt.Printf("台本 %q（全%dシーン）をプロジェクト %s として保存したのだ。\n",
		script.Title, len(script.Scenes), project.ID)
	return nil
}

func printConcepts(concepts []domain.StoryConcept) {
	if len(concepts) == 0 {
		fmt.Println("コンセプトを生成できなかったのだ。トピックを変えて再実行してほしい。")
		return
	}
	for i, c := range concepts {
		fmt.Printf("[%d] %s (%s / %s)\n    id: %s\n    %s\n", i+1, c.Title, c.Genre, c.Tone, c.ID, c.Logline)
	}
}

// selectConcept はIDまたは1始まりの番号でコンセプトを選ぶのだ。
func selectConcept(state *wizardState, conceptID string) (*domain.StoryConcept, error) {
	if len(state.Concepts) == 0 {
		return nil, fmt.Errorf("コンセプトがまだ無いのだ。先に `concept` を実行してほしい")
	}
	for i := range state.Concepts {
		if state.Concepts[i].ID == conceptID {
			return &state.Concepts[i], nil
		}
	}
	for i := range state.Concepts {
		if fmt.Sprintf("%d", i+1) == conceptID {
			return &state.Concepts[i], nil
		}
	}
	return nil, fmt.Errorf("コンセプト %q が見つからないのだ", conceptID)
}

func findQuestion(questions []domain.Question, id string) (domain.Question, bool) {
	for i, q := range questions {
		if q.ID == id || fmt.Sprintf("%d", i+1) == id {
			return q, true
		}
	}
	return domain.Question{}, false
}

func upsertAnswer(answers []domain.Answer, a domain.Answer) []domain.Answer {
	for i := range answers {
		if answers[i].QuestionID == a.QuestionID {
			answers[i] = a
			return answers
		}
	}
	return append(answers, a)
}

// fillMissingAnswers は未回答の質問に提案回答を充当するのだ。
func fillMissingAnswers(questions []domain.Question, answers []domain.Answer) []domain.Answer {
	answered := make(map[string]bool, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = true
	}
	filled := answers
	for _, q := range questions {
		if !answered[q.ID] && q.SuggestedAnswer != "" {
			filled = append(filled, domain.Answer{QuestionID: q.ID, Answer: q.SuggestedAnswer})
		}
	}
	return filled
}
