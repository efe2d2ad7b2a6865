package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // data URL の中身は png/jpeg のどちらもあり得るのだ
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

// コンタクトシートのレイアウト定数なのだ。A4横の比率を意識した寸法です。
const (
	sheetColumns   = 3
	sheetRows      = 2
	thumbWidth     = 560
	thumbHeight    = 315 // 16:9 サムネイル
	cellPadding    = 24
	captionHeight  = 56
	sheetMargin    = 48
	headerHeight   = 72
	scenesPerSheet = sheetColumns * sheetRows
)

// RenderContactSheets は、画像生成済みシーンをページ割りしたコンタクトシート
// （PNG列）として描画するのだ。未生成のシーンは枠とキャプションだけ描く。
// ページ同士は独立なので errgroup で並列に描画する。
func RenderContactSheets(script *domain.ProductionScript) ([][]byte, error) {
	if len(script.Scenes) == 0 {
		return nil, fmt.Errorf("シーンが無いのでコンタクトシートを作れません")
	}

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("フォントの読み込みに失敗しました: %w", err)
	}

	pageCount := (len(script.Scenes) + scenesPerSheet - 1) / scenesPerSheet
	pages := make([][]byte, pageCount)

	var eg errgroup.Group
	for page := 0; page < pageCount; page++ {
		eg.Go(func() error {
			start := page * scenesPerSheet
			end := min(start+scenesPerSheet, len(script.Scenes))

			png, err := renderSheet(script, script.Scenes[start:end], font, page+1, pageCount)
			if err != nil {
				return fmt.Errorf("シート %d の描画に失敗しました: %w", page+1, err)
			}
			pages[page] = png
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// WriteContactSheets は全シートを <dir>/<base>_sheet_<n>.png へ書き出し、
// 書いたパスの一覧を返すのだ。
func WriteContactSheets(script *domain.ProductionScript, dir, base string) ([]string, error) {
	pages, err := RenderContactSheets(script)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("出力ディレクトリを作成できません: %w", err)
	}

	paths := make([]string, 0, len(pages))
	for i, png := range pages {
		path := filepath.Join(dir, fmt.Sprintf("%s_sheet_%d.png", base, i+1))
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return nil, fmt.Errorf("シートの保存に失敗しました: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func renderSheet(script *domain.ProductionScript, scenes []domain.Scene, font *truetype.Font, pageNo, pageCount int) ([]byte, error) {
	width := sheetMargin*2 + sheetColumns*thumbWidth + (sheetColumns-1)*cellPadding
	height := sheetMargin*2 + headerHeight + sheetRows*(thumbHeight+captionHeight) + (sheetRows-1)*cellPadding

	dc := gg.NewContext(width, height)
	dc.SetRGB(0.96, 0.96, 0.94)
	dc.Clear()

	titleFace := truetype.NewFace(font, &truetype.Options{Size: 34})
	captionFace := truetype.NewFace(font, &truetype.Options{Size: 18})

	// ヘッダ: タイトルとページ番号なのだ
	dc.SetFontFace(titleFace)
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawString(strings.ToUpper(script.Title), sheetMargin, sheetMargin+36)
	dc.DrawStringAnchored(fmt.Sprintf("%d / %d", pageNo, pageCount),
		float64(width)-sheetMargin, sheetMargin+36, 1, 0)

	dc.SetFontFace(captionFace)
	for i, scene := range scenes {
		col := i % sheetColumns
		row := i / sheetColumns
		x := float64(sheetMargin + col*(thumbWidth+cellPadding))
		y := float64(sheetMargin + headerHeight + row*(thumbHeight+captionHeight+cellPadding))

		// サムネイル枠
		dc.SetRGB(0.85, 0.85, 0.82)
		dc.DrawRectangle(x, y, thumbWidth, thumbHeight)
		dc.Fill()

		if img, err := decodeSceneImage(scene.GeneratedImageURL); err == nil {
			drawFitted(dc, img, x, y)
		} else {
			dc.SetRGB(0.5, 0.5, 0.5)
			dc.DrawStringAnchored("NOT GENERATED", x+thumbWidth/2, y+thumbHeight/2, 0.5, 0.5)
		}

		// キャプション: シーン番号・場所・時間帯
		dc.SetRGB(0.15, 0.15, 0.15)
		caption := fmt.Sprintf("Scene %d  %s - %s", scene.SceneNumber, scene.Location, scene.Time)
		dc.DrawStringWrapped(caption, x, y+thumbHeight+10, 0, 0, thumbWidth, 1.3, gg.AlignLeft)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawFitted はアスペクト比を保ったままサムネイル枠に収めて描画するのだ。
func drawFitted(dc *gg.Context, img image.Image, x, y float64) {
	bounds := img.Bounds()
	sw := float64(bounds.Dx())
	sh := float64(bounds.Dy())
	scale := min(thumbWidth/sw, thumbHeight/sh)

	dc.Push()
	dc.Translate(x+(thumbWidth-sw*scale)/2, y+(thumbHeight-sh*scale)/2)
	dc.Scale(scale, scale)
	dc.DrawImage(img, 0, 0)
	dc.Pop()
}

// decodeSceneImage は data URL から画像をデコードするのだ。
func decodeSceneImage(dataURL string) (image.Image, error) {
	if dataURL == "" {
		return nil, fmt.Errorf("画像が未生成です")
	}
	data, err := DataURLBytes(dataURL)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("画像のデコードに失敗しました: %w", err)
	}
	return img, nil
}
