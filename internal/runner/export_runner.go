package runner

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/go-cinegen-kit/internal/config"
	"github.com/shouni/go-cinegen-kit/pkg/domain"
	"github.com/shouni/go-cinegen-kit/pkg/export"
)

// ExportRunner は、台本から各種成果物を書き出す実体なのだ。
type ExportRunner struct {
	options config.GenerateOptions
}

// NewExportRunner は ExportRunner の新しいインスタンスを生成して返すのだ。
func NewExportRunner(options config.GenerateOptions) *ExportRunner {
	return &ExportRunner{options: options}
}

// ExportKind は書き出す成果物の種類です。
type ExportKind string

const (
	ExportScreenplay   ExportKind = "screenplay" // ワープロ互換の脚本ドキュメント
	ExportContactSheet ExportKind = "sheet"      // ストーリーボードのコンタクトシート
	ExportArchive      ExportKind = "zip"        // 生成画像のZIPアーカイブ
)

// Run は指定された種類の成果物を出力ディレクトリへ書き出し、
// 書いたパスの一覧を返すのだ。sceneNumbers はZIPに入れるシーンの絞り込みで、
// 空なら生成済みの全シーンが対象です。
func (er *ExportRunner) Run(script *domain.ProductionScript, kinds []ExportKind, sceneNumbers []int) ([]string, error) {
	dir := er.options.OutputDir
	if dir == "" {
		dir = config.DefaultOutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("出力ディレクトリを作成できません: %w", err)
	}
	base := slugify(script.Title)

	var written []string
	for _, kind := range kinds {
		switch kind {
		case ExportScreenplay:
			path := filepath.Join(dir, base+".doc")
			if err := export.WriteScreenplayDoc(script, path); err != nil {
				return written, err
			}
			written = append(written, path)

		case ExportContactSheet:
			paths, err := export.WriteContactSheets(script, dir, base)
			if err != nil {
				return written, err
			}
			written = append(written, paths...)

		case ExportArchive:
			path := filepath.Join(dir, base+"_images.zip")
			if err := export.WriteImageArchive(script, path, sceneNumbers...); err != nil {
				return written, err
			}
			written = append(written, path)

		default:
			return written, fmt.Errorf("未知のエクスポート種別です: %q", kind)
		}
	}

	slog.Info("エクスポートが完了したのだ", "files", len(written), "dir", dir)
	return written, nil
}

// slugify はタイトルをファイル名に使える形へ落とすのだ。
func slugify(title string) string {
	title = strings.TrimSpace(strings.ToLower(title))
	if title == "" {
		return "untitled"
	}
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}
