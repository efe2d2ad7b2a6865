package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

// FrameGenerator は、ストーリーボード1カット分の画像生成を抽象化するのだ。
// 実体は gateway.Client で、テストではフェイクに差し替える。
type FrameGenerator interface {
	GenerateStoryboardFrame(ctx context.Context, shot, sceneContext, style, aspectRatio string) (string, error)
}

// StoryboardRunner は、台本の全シーンに対して画像を順番に生成する実体なのだ。
// 画像モデルのクォータが厳しいため、並列化はせずレートリミッタで間隔を保証する。
type StoryboardRunner struct {
	generator       FrameGenerator
	limiter         *rate.Limiter
	continueOnError bool // true なら失敗シーンをスキップして続行するのだ
	force           bool // true なら生成済みシーンも作り直す
	running         atomic.Bool
}

// ErrAlreadyRunning は一括生成の多重起動を表します。
var ErrAlreadyRunning = fmt.Errorf("storyboard generation is already running")

// NewStoryboardRunner は StoryboardRunner の新しいインスタンスを生成して返すのだ。
// interval は画像生成リクエストの最小間隔です。Burst 1 なので初回以外は必ず待つ。
func NewStoryboardRunner(g FrameGenerator, interval time.Duration, continueOnError, force bool) *StoryboardRunner {
	return &StoryboardRunner{
		generator:       g,
		limiter:         rate.NewLimiter(rate.Every(interval), 1),
		continueOnError: continueOnError,
		force:           force,
	}
}

// Run は台本の各シーンに GeneratedImageURL を埋めていくメインロジックなのだ。
// 台本はその場で書き換える。戻り値は今回新しく生成できた枚数です。
// 既定では最初の失敗で中断する。生成済みの分は台本に残るので、
// 失敗原因を直してからの再実行は未生成シーンから再開できるのだ。
func (sr *StoryboardRunner) Run(ctx context.Context, script *domain.ProductionScript) (int, error) {
	if !sr.running.CompareAndSwap(false, true) {
		return 0, ErrAlreadyRunning
	}
	defer sr.running.Store(false)

	targets := sr.selectTargets(script)
	if len(targets) == 0 {
		slog.Info("生成対象のシーンがないのだ", "total", len(script.Scenes))
		return 0, nil
	}
	slog.Info("ストーリーボードの一括生成を開始するのだ",
		"count", len(targets), "total", len(script.Scenes), "continue_on_error", sr.continueOnError)

	generated := 0
	for _, idx := range targets {
		// キャンセルはリミッタ待ちの前に確認する。待ち時間の分だけ
		// 中断が遅れるのを避けるためなのだ
		if err := ctx.Err(); err != nil {
			return generated, err
		}
		if err := sr.limiter.Wait(ctx); err != nil {
			return generated, err
		}

		scene := &script.Scenes[idx]
		slog.Info("シーンを生成中...", "scene", scene.SceneNumber, "location", scene.Location)

		url, err := sr.generator.GenerateStoryboardFrame(ctx,
			scene.VisualPrompt,
			script.SceneContext(*scene),
			script.SelectedVisualStyle,
			script.AspectRatio,
		)
		if err != nil {
			if sr.continueOnError && ctx.Err() == nil {
				slog.Warn("シーンの生成に失敗したためスキップするのだ", "scene", scene.SceneNumber, "error", err)
				continue
			}
			return generated, fmt.Errorf("シーン %d の生成に失敗しました: %w", scene.SceneNumber, err)
		}

		scene.GeneratedImageURL = url
		generated++
		slog.Info("シーンの生成に成功したのだ", "scene", scene.SceneNumber)
	}

	slog.Info("ストーリーボードの一括生成が完了したのだ", "generated", generated, "skipped", len(targets)-generated)
	return generated, nil
}

// selectTargets は生成対象のシーン添字を台本順で返すのだ。
// force でなければ生成済みシーンは飛ばす。
func (sr *StoryboardRunner) selectTargets(script *domain.ProductionScript) []int {
	if sr.force {
		targets := make([]int, len(script.Scenes))
		for i := range script.Scenes {
			targets[i] = i
		}
		return targets
	}
	return script.PendingSceneIndexes()
}
