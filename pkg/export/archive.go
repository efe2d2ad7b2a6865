package export

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"os"
	"strings"

	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

// RenderImageArchive は、生成済みのシーン画像を Scene_<番号>.<拡張子> の
// 名前でZIPに詰めて返すのだ。1枚も無ければエラーです。
// sceneNumbers を渡すとそのシーン番号だけに絞る。空なら全シーン対象なのだ。
func RenderImageArchive(script *domain.ProductionScript, sceneNumbers ...int) ([]byte, error) {
	selected := make(map[int]bool, len(sceneNumbers))
	for _, n := range sceneNumbers {
		selected[n] = true
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	packed := 0
	for _, scene := range script.Scenes {
		if scene.GeneratedImageURL == "" {
			continue
		}
		if len(selected) > 0 && !selected[scene.SceneNumber] {
			continue
		}
		data, err := DataURLBytes(scene.GeneratedImageURL)
		if err != nil {
			return nil, fmt.Errorf("シーン %d の画像を読めません: %w", scene.SceneNumber, err)
		}

		name := fmt.Sprintf("Scene_%d%s", scene.SceneNumber, extensionFor(scene.GeneratedImageURL))
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("アーカイブへの追加に失敗しました: %w", err)
		}
		if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("アーカイブへの書き込みに失敗しました: %w", err)
		}
		packed++
	}

	if packed == 0 {
		zw.Close()
		return nil, fmt.Errorf("生成済みの画像が1枚もありません")
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("アーカイブの完了処理に失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteImageArchive はZIPをファイルに書き出すのだ。
func WriteImageArchive(script *domain.ProductionScript, path string, sceneNumbers ...int) error {
	data, err := RenderImageArchive(script, sceneNumbers...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("アーカイブの保存に失敗しました: %w", err)
	}
	return nil
}

// DataURLBytes は data URL のペイロードをデコードして返すのだ。
func DataURLBytes(dataURL string) ([]byte, error) {
	head, payload, found := strings.Cut(dataURL, ",")
	if !found || !strings.Contains(head, "base64") {
		return nil, fmt.Errorf("data URL の形式ではありません")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("base64のデコードに失敗しました: %w", err)
	}
	return data, nil
}

// extensionFor は data URL のMIMEタイプから拡張子を決めるのだ。
// 判定できなければ .png に倒す。
func extensionFor(dataURL string) string {
	head, _, _ := strings.Cut(dataURL, ",")
	mimeType := strings.TrimSuffix(strings.TrimPrefix(head, "data:"), ";base64")
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".png"
}
