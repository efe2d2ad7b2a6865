package gateway

import (
	"bytes"
	"testing"
)

func TestDataURLRoundTrip(t *testing.T) {
	orig := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0xff}
	url := encodeDataURL("image/png", orig)

	mimeType, data, err := decodeDataURL(url)
	if err != nil {
		t.Fatalf("デコードに失敗したのだ: %v", err)
	}
	if mimeType != "image/png" {
		t.Errorf("MIMEタイプが %q になったのだ", mimeType)
	}
	if !bytes.Equal(data, orig) {
		t.Error("バイナリが往復で壊れたのだ")
	}
}

func TestDecodeDataURLRejectsGarbage(t *testing.T) {
	for _, bad := range []string{
		"",
		"http://example.com/image.png",
		"data:image/png;base64", // カンマなし
		"data:;base64,AAAA",     // MIMEタイプなし
		"data:image/png;base64,%%%%",
	} {
		if _, _, err := decodeDataURL(bad); err == nil {
			t.Errorf("%q を受理してしまったのだ", bad)
		}
	}
}

func TestImageCacheKeyDistinguishesFields(t *testing.T) {
	base := imageCacheKey("m", "p", "16:9", "")
	for name, key := range map[string]string{
		"モデル違い":     imageCacheKey("m2", "p", "16:9", ""),
		"プロンプト違い":   imageCacheKey("m", "p2", "16:9", ""),
		"アスペクト比違い":  imageCacheKey("m", "p", "1:1", ""),
		"参照画像違い":    imageCacheKey("m", "p", "16:9", "ref"),
		"境界ずらし攻撃形": imageCacheKey("mp", "", "16:9", ""),
	} {
		if key == base {
			t.Errorf("%s でキーが衝突したのだ", name)
		}
	}
	if imageCacheKey("m", "p", "16:9", "") != base {
		t.Error("同一入力でキーが揺れたのだ")
	}
}
