// Package export は、制作台本を配布可能な成果物（脚本ドキュメント、
// コンタクトシート、画像アーカイブ）へ変換します。
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

// screenplayTmpl はワープロ互換のHTMLなのだ。.doc 拡張子で保存すると
// Word 系のソフトが脚本フォーマットのままレイアウトして開いてくれる。
const screenplayTmpl = `<html xmlns:w="urn:schemas-microsoft-com:office:word">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: 'Courier New', monospace; font-size: 12pt; line-height: 1.5; }
.title-page { text-align: center; margin-top: 200px; page-break-after: always; }
.title-page h1 { text-transform: uppercase; }
.slugline { font-weight: bold; text-transform: uppercase; margin-top: 24px; }
.action { margin-top: 12px; }
.character { margin-left: 35%; margin-top: 12px; text-transform: uppercase; }
.dialogue { margin-left: 25%; margin-right: 25%; }
.transition { text-align: right; text-transform: uppercase; margin-top: 12px; }
</style>
</head>
<body>
<div class="title-page">
<h1>{{.Title}}</h1>
<p>{{.Genre}}</p>
<p>{{.Synopsis}}</p>
</div>
{{range .Scenes}}<p class="slugline">{{.SceneNumber}}. {{slug .}}</p>
<p class="action">{{.ActionDescription}}</p>
{{if .Narration}}<p class="character">NARRATOR (V.O.)</p>
<p class="dialogue">{{.Narration}}</p>
{{end}}{{range .Dialogue}}<p class="character">{{.Speaker}}</p>
<p class="dialogue">{{.Line}}</p>
{{end}}{{if .CameraDirections}}<p class="transition">{{.CameraDirections}}</p>
{{end}}{{end}}</body>
</html>
`

// RenderScreenplayDoc は台本をワープロ互換の脚本ドキュメントに変換するのだ。
// 先頭にUTF-8のBOMを付ける。これが無いとWordが日本語等を文字化けさせる。
func RenderScreenplayDoc(script *domain.ProductionScript) ([]byte, error) {
	tmpl, err := template.New("screenplay").Funcs(template.FuncMap{
		"slug": sceneSlugline,
	}).Parse(screenplayTmpl)
	if err != nil {
		return nil, fmt.Errorf("脚本テンプレートの解析に失敗しました: %w", err)
	}

	buf := bytes.NewBuffer([]byte{0xEF, 0xBB, 0xBF})
	if err := tmpl.Execute(buf, script); err != nil {
		return nil, fmt.Errorf("脚本の組版に失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteScreenplayDoc は脚本ドキュメントをファイルに書き出すのだ。
func WriteScreenplayDoc(script *domain.ProductionScript, path string) error {
	doc, err := RenderScreenplayDoc(script)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("脚本の保存に失敗しました: %w", err)
	}
	return nil
}

// sceneSlugline は "INT./EXT. 場所 - 時間帯" 形式のスラッグラインを作るのだ。
// 場所名から屋内外は判定できないので EXT./INT. の併記に倒す。
func sceneSlugline(s domain.Scene) string {
	t := strings.ToUpper(strings.TrimSpace(s.Time))
	if t == "" {
		t = "DAY"
	}
	return fmt.Sprintf("INT./EXT. %s - %s", strings.ToUpper(s.Location), t)
}
