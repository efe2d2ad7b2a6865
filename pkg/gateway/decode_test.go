package gateway

import (
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func imageResp(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			FinishReason: genai.FinishReasonStop,
			Content:      &genai.Content{Parts: parts},
		}},
	}
}

func TestDecodeImageResponse(t *testing.T) {
	t.Run("インラインデータがあれば data URL になるのだ", func(t *testing.T) {
		got, err := decodeImageResponse(imageResp(
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{1, 2, 3}}},
		))
		if err != nil {
			t.Fatalf("想定外のエラー: %v", err)
		}
		if !strings.HasPrefix(got, "data:image/png;base64,") {
			t.Errorf("data URL の形式ではないのだ: %q", got)
		}
	})

	t.Run("テキストが先でも画像データを優先するのだ", func(t *testing.T) {
		got, err := decodeImageResponse(imageResp(
			&genai.Part{Text: "Here is your image!"},
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte{9}}},
		))
		if err != nil {
			t.Fatalf("テキスト同居で失敗扱いになったのだ: %v", err)
		}
		if !strings.HasPrefix(got, "data:image/jpeg;base64,") {
			t.Errorf("画像パーツが拾われていないのだ: %q", got)
		}
	})

	t.Run("候補なしは ErrNoCandidates", func(t *testing.T) {
		if _, err := decodeImageResponse(nil); !errors.Is(err, ErrNoCandidates) {
			t.Errorf("nil レスポンスの分類が違うのだ: %v", err)
		}
		if _, err := decodeImageResponse(&genai.GenerateContentResponse{}); !errors.Is(err, ErrNoCandidates) {
			t.Errorf("空候補の分類が違うのだ: %v", err)
		}
	})

	t.Run("異常 finish reason はパーツ検査より先に弾くのだ", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				FinishReason: genai.FinishReasonSafety,
				Content: &genai.Content{Parts: []*genai.Part{
					{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{1}}},
				}},
			}},
		}
		_, err := decodeImageResponse(resp)
		var frErr *FinishReasonError
		if !errors.As(err, &frErr) {
			t.Fatalf("FinishReasonError になっていないのだ: %v", err)
		}
		if frErr.Reason != genai.FinishReasonSafety {
			t.Errorf("停止理由が保持されていないのだ: %v", frErr.Reason)
		}
	})

	t.Run("finish reason 未設定は正常扱いなのだ", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{1}}},
				}},
			}},
		}
		if _, err := decodeImageResponse(resp); err != nil {
			t.Errorf("未設定の finish reason で失敗したのだ: %v", err)
		}
	})

	t.Run("パーツなしは ErrEmptyContent", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}},
		}
		if _, err := decodeImageResponse(resp); !errors.Is(err, ErrEmptyContent) {
			t.Errorf("空コンテンツの分類が違うのだ: %v", err)
		}
	})

	t.Run("相槌テキストはリトライ可能と分類するのだ", func(t *testing.T) {
		_, err := decodeImageResponse(imageResp(&genai.Part{Text: "Sure! Generating now."}))
		var textErr *TextResponseError
		if !errors.As(err, &textErr) || !textErr.Retryable {
			t.Fatalf("相槌がリトライ可能になっていないのだ: %v", err)
		}
		if !strings.Contains(textErr.Error(), "Please try again") {
			t.Errorf("リトライ文言が違うのだ: %q", textErr.Error())
		}
	})

	t.Run("拒否説明はそのままユーザーに見せるのだ", func(t *testing.T) {
		refusal := "I cannot depict this scene due to policy."
		_, err := decodeImageResponse(imageResp(&genai.Part{Text: refusal}))
		var textErr *TextResponseError
		if !errors.As(err, &textErr) || textErr.Retryable {
			t.Fatalf("拒否説明がリトライ可能扱いになっているのだ: %v", err)
		}
		if textErr.Error() != refusal {
			t.Errorf("拒否文面が保持されていないのだ: %q", textErr.Error())
		}
	})

	t.Run("空パーツだけなら原因不明なのだ", func(t *testing.T) {
		_, err := decodeImageResponse(imageResp(&genai.Part{}))
		if !errors.Is(err, ErrNoImageData) {
			t.Errorf("原因不明の分類が違うのだ: %v", err)
		}
	})
}
