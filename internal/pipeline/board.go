package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-cinegen-kit/internal/builder"
	"github.com/shouni/go-cinegen-kit/internal/config"
	"github.com/shouni/go-cinegen-kit/internal/runner"
	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

// ExecuteStoryboard は、プロジェクトの台本全シーンの画像を一括生成するのだ
// （Phase 4）。失敗で中断しても生成済みの分はプロジェクトに保存される。
func ExecuteStoryboard(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	user, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	project, err := loadProject(appCtx, user.Email)
	if err != nil {
		return err
	}

	boardRunner := builder.BuildStoryboardRunner(appCtx)

	// 一括生成は分単位でかかるため、単発用のタイムアウトは適用しないのだ。
	// 中断は Ctrl-C（コンテキストのキャンセル）で行う。
	generated, runErr := boardRunner.Run(ctx, &project.Script)

	if generated > 0 {
		if err := appCtx.Store.SaveProject(*project); err != nil {
			slog.Error("生成結果の保存に失敗したのだ", "error", err)
			if runErr == nil {
				return err
			}
		}
	}
	if runErr != nil {
		return fmt.Errorf("一括生成は %d 枚で中断したのだ: %w", generated, runErr)
	}

	fmt.Printf("ストーリーボード %d 枚を生成してプロジェクトに保存したのだ。\n", generated)
	return nil
}

// ExecuteExport は、プロジェクトの成果物を書き出すのだ（Phase 5）。
// AIを使わないのでAPIキーが無くても動く。
func ExecuteExport(ctx context.Context, cfg *config.Config, kinds []string, sceneNumbers []int) error {
	appCtx, err := setupStoreOnly(cfg)
	if err != nil {
		return err
	}
	defer appCtx.Store.Close()

	user, err := requireUser(appCtx)
	if err != nil {
		return err
	}
	project, err := loadProject(appCtx, user.Email)
	if err != nil {
		return err
	}

	exportKinds := make([]runner.ExportKind, 0, len(kinds))
	for _, k := range kinds {
		exportKinds = append(exportKinds, runner.ExportKind(k))
	}
	if len(exportKinds) == 0 {
		exportKinds = []runner.ExportKind{runner.ExportScreenplay, runner.ExportContactSheet, runner.ExportArchive}
	}

	written, err := builder.BuildExportRunner(appCtx).Run(&project.Script, exportKinds, sceneNumbers)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Println(path)
	}
	return nil
}

// loadProject は --project 指定のプロジェクトを読み込むのだ。
// 未指定なら最新のプロジェクトに倒す。
func loadProject(appCtx *builder.AppContext, userID string) (*domain.Project, error) {
	if appCtx.Options.ProjectID != "" {
		return appCtx.Store.GetProject(appCtx.Options.ProjectID, userID)
	}

	projects, err := appCtx.Store.ListProjects(userID)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("プロジェクトがまだ無いのだ。先に `script` で台本を作ってほしい")
	}
	slog.Info("プロジェクト未指定のため最新を使うのだ", "project", projects[0].ID, "title", projects[0].Title)
	return &projects[0], nil
}
