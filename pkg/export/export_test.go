package export

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

func testPNGDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("テスト画像を作れないのだ: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func exportScript(t *testing.T) *domain.ProductionScript {
	return &domain.ProductionScript{
		Title:    "Last Light",
		Genre:    "Drama",
		Synopsis: "A keeper's final night.",
		Scenes: []domain.Scene{
			{
				SceneNumber:       1,
				Location:          "Lighthouse",
				Time:              "Night",
				ActionDescription: "Mira climbs the spiral stairs.",
				Narration:         "The sea remembers everything.",
				Dialogue:          []domain.DialogueLine{{Speaker: "Mira", Line: "One more night."}},
				GeneratedImageURL: testPNGDataURL(t),
			},
			{SceneNumber: 2, Location: "Harbor", Time: "Day"},
		},
	}
}

func TestRenderScreenplayDoc(t *testing.T) {
	doc, err := RenderScreenplayDoc(exportScript(t))
	if err != nil {
		t.Fatalf("組版に失敗したのだ: %v", err)
	}

	t.Run("BOM付きUTF-8で始まること", func(t *testing.T) {
		if !bytes.HasPrefix(doc, []byte{0xEF, 0xBB, 0xBF}) {
			t.Error("先頭にBOMが無いのだ")
		}
	})

	t.Run("脚本の要素が揃っていること", func(t *testing.T) {
		html := string(doc)
		for _, want := range []string{
			"Last Light",
			"INT./EXT. LIGHTHOUSE - NIGHT",
			"Mira climbs the spiral stairs.",
			"NARRATOR (V.O.)",
			`<p class="character">Mira</p>`,
			"One more night.",
		} {
			if !strings.Contains(html, want) {
				t.Errorf("%q が出力に無いのだ", want)
			}
		}
	})

	t.Run("時間帯が空なら DAY に倒すこと", func(t *testing.T) {
		script := &domain.ProductionScript{Scenes: []domain.Scene{{SceneNumber: 1, Location: "Pier"}}}
		doc, err := RenderScreenplayDoc(script)
		if err != nil {
			t.Fatalf("組版に失敗したのだ: %v", err)
		}
		if !strings.Contains(string(doc), "INT./EXT. PIER - DAY") {
			t.Error("時間帯のフォールバックが効いていないのだ")
		}
	})
}

func TestRenderImageArchive(t *testing.T) {
	t.Run("生成済みシーンだけが詰まること", func(t *testing.T) {
		data, err := RenderImageArchive(exportScript(t))
		if err != nil {
			t.Fatalf("アーカイブ作成に失敗したのだ: %v", err)
		}

		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			t.Fatalf("ZIPとして読めないのだ: %v", err)
		}
		if len(zr.File) != 1 || zr.File[0].Name != "Scene_1.png" {
			t.Errorf("内容が想定と違うのだ: %+v", zr.File)
		}
	})

	t.Run("シーン番号で絞り込めること", func(t *testing.T) {
		script := exportScript(t)
		script.Scenes[1].GeneratedImageURL = testPNGDataURL(t)

		data, err := RenderImageArchive(script, 2)
		if err != nil {
			t.Fatalf("アーカイブ作成に失敗したのだ: %v", err)
		}
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			t.Fatalf("ZIPとして読めないのだ: %v", err)
		}
		if len(zr.File) != 1 || zr.File[0].Name != "Scene_2.png" {
			t.Errorf("絞り込みが効いていないのだ: %+v", zr.File)
		}
	})

	t.Run("画像ゼロならエラーになること", func(t *testing.T) {
		script := &domain.ProductionScript{Scenes: []domain.Scene{{SceneNumber: 1}}}
		if _, err := RenderImageArchive(script); err == nil {
			t.Error("空アーカイブが成功扱いなのだ")
		}
	})
}

func TestRenderContactSheets(t *testing.T) {
	t.Run("6シーン超でページが分かれること", func(t *testing.T) {
		script := &domain.ProductionScript{Title: "Last Light"}
		for i := 1; i <= 7; i++ {
			script.Scenes = append(script.Scenes, domain.Scene{SceneNumber: i, Location: "Harbor", Time: "Day"})
		}

		pages, err := RenderContactSheets(script)
		if err != nil {
			t.Fatalf("描画に失敗したのだ: %v", err)
		}
		if len(pages) != 2 {
			t.Errorf("ページ数が %d になったのだ", len(pages))
		}
		for i, page := range pages {
			if _, err := png.Decode(bytes.NewReader(page)); err != nil {
				t.Errorf("シート %d がPNGとして読めないのだ: %v", i+1, err)
			}
		}
	})

	t.Run("シーンが無ければエラーになること", func(t *testing.T) {
		if _, err := RenderContactSheets(&domain.ProductionScript{}); err == nil {
			t.Error("空台本が成功扱いなのだ")
		}
	})
}
