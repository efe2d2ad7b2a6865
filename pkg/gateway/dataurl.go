package gateway

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// encodeDataURL はMIMEタイプとバイナリから data URL を組み立てるのだ。
func encodeDataURL(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// decodeDataURL は data URL をMIMEタイプとバイナリに分解します。
// 参照画像をインラインデータとしてモデルに添付するときに使うのだ。
func decodeDataURL(dataURL string) (mimeType string, data []byte, err error) {
	head, payload, found := strings.Cut(dataURL, ",")
	if !found || !strings.Contains(head, "base64") {
		return "", nil, fmt.Errorf("data URL の形式ではありません: %.32q", dataURL)
	}

	mimeType = strings.TrimPrefix(head, "data:")
	mimeType = strings.TrimSuffix(mimeType, ";base64")
	if mimeType == "" {
		return "", nil, fmt.Errorf("data URL にMIMEタイプがありません")
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("base64のデコードに失敗しました: %w", err)
	}
	return mimeType, data, nil
}
