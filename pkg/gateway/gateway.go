// Package gateway は、Gemini API への薄いオペレーション別ラッパー群です。
// 各関数は型付きの入力からプロンプトを組み立て、モデルを1回呼び、
// レスポンスをドメイン型にデコードして返します。ここより上の層は
// genai の型を一切見ないのだ。
package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"google.golang.org/genai"
)

// Config はゲートウェイの初期化パラメータです。
type Config struct {
	APIKey      string
	TextModel   string  // 構造化テキスト生成用モデル
	ImageModel  string  // 画像合成用モデル
	VideoModel  string  // 動画生成用モデル（現状はプロンプト出力のみで未使用）
	Temperature float32 // テキスト生成の温度。低めが既定なのだ
}

// Client は Gemini との通信に使う共通クライアントです。
// 生成済み画像は同一リクエストの再呼び出しを避けるためにキャッシュします。
type Client struct {
	genc        *genai.Client
	textModel   string
	imageModel  string
	videoModel  string
	temperature float32
	imgCache    *cache.Cache
}

// New はAPIキーからゲートウェイクライアントを初期化するのだ。
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("APIキーが空です。GEMINI_API_KEY を設定してほしいのだ")
	}

	genc, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}

	return &Client{
		genc:        genc,
		textModel:   cfg.TextModel,
		imageModel:  cfg.ImageModel,
		videoModel:  cfg.VideoModel,
		temperature: cfg.Temperature,
		imgCache:    cache.New(30*time.Minute, 1*time.Hour),
	}, nil
}

// generateText は構造化テキスト生成の共通経路なのだ。
// schema が nil でも responseMimeType だけは application/json を要求する
// 呼び出しがあるため、jsonOutput で切り替える。
func (c *Client) generateText(ctx context.Context, contents []*genai.Content, jsonOutput bool, schema *genai.Schema) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}
	if jsonOutput {
		config.ResponseMIMEType = "application/json"
	}
	if schema != nil {
		config.ResponseSchema = schema
	}

	resp, err := c.genc.Models.GenerateContent(ctx, c.textModel, contents, config)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// imageCacheKey は画像生成リクエストの同一性をハッシュで表すのだ。
func imageCacheKey(model, prompt, aspectRatio, ref string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	h.Write([]byte{0})
	h.Write([]byte(aspectRatio))
	h.Write([]byte{0})
	h.Write([]byte(ref))
	return hex.EncodeToString(h.Sum(nil))
}
