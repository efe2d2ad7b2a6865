package gateway

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// デコード失敗の分類なのだ。呼び出し側は errors.Is / errors.As で
// 「リトライで済むのか、プロンプトを直すべきなのか」を判定できる。
var (
	// ErrNoCandidates はレスポンスに候補が1つも無い場合。
	ErrNoCandidates = errors.New("no response candidates returned by AI")
	// ErrEmptyContent は候補にコンテンツパーツが無い場合。
	ErrEmptyContent = errors.New("candidate content is empty")
	// ErrNoImageData は画像もテキストも見つからない原因不明の失敗。
	ErrNoImageData = errors.New("unknown failure: no image data or descriptive text found")
)

// FinishReasonError は、モデルが正常完了（STOP）以外の理由で生成を
// 打ち切った場合のエラーです。セーフティ停止や長さ上限がここに落ちる。
type FinishReasonError struct {
	Reason genai.FinishReason
}

func (e *FinishReasonError) Error() string {
	return fmt.Sprintf("AI stopped generating (Reason: %s)", e.Reason)
}

// TextResponseError は、画像を要求したのにテキストが返ってきた場合のエラーです。
// Retryable が true なら「かしこまりました」的な空返事であり、同じプロンプトの
// 再試行で直る見込みがある。false ならモデルの拒否説明文なので、ユーザーは
// プロンプトの言い換えを促されるべきなのだ。
type TextResponseError struct {
	Text      string
	Retryable bool
}

func (e *TextResponseError) Error() string {
	if e.Retryable {
		return "AI returned text confirmation instead of image data. Please try again."
	}
	return e.Text
}

// confirmationMarkers は「画像の代わりの相槌テキスト」を見分けるヒューリスティックなのだ。
var confirmationMarkers = []string{"here is", "sure", "absolutely", "request"}

// decodeImageResponse は画像生成レスポンスを検分して data URL を取り出すか、
// 分類済みエラーを返すのだ。判定順序は仕様であり入れ替え禁止:
//  1. 候補なし
//  2. 異常な finish reason（パーツ検査より先に判定する）
//  3. パーツなし
//  4. インラインデータがあれば成功。同居するテキストより常に優先
//  5. テキストのみなら相槌か拒否説明かを分類
//  6. どちらも無ければ原因不明
func decodeImageResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}
	candidate := resp.Candidates[0]

	if candidate.FinishReason != "" && candidate.FinishReason != genai.FinishReasonStop {
		return "", &FinishReasonError{Reason: candidate.FinishReason}
	}

	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", ErrEmptyContent
	}

	for _, part := range candidate.Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return encodeDataURL(part.InlineData.MIMEType, part.InlineData.Data), nil
		}
	}

	for _, part := range candidate.Content.Parts {
		if part.Text == "" {
			continue
		}
		lower := strings.ToLower(part.Text)
		for _, marker := range confirmationMarkers {
			if strings.Contains(lower, marker) {
				return "", &TextResponseError{Text: part.Text, Retryable: true}
			}
		}
		return "", &TextResponseError{Text: part.Text}
	}

	return "", ErrNoImageData
}
