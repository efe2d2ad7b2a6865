// Package pipeline は、CLIコマンドから呼ばれる各フェーズのオーケストレーションなのだ。
// フェーズ間の受け渡しは autosave（ユーザー単位のウィザード途中状態）と
// プロジェクト（確定済み台本）の2段構えで行う。
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shouni/go-cinegen-kit/internal/builder"
	"github.com/shouni/go-cinegen-kit/internal/config"
	"github.com/shouni/go-cinegen-kit/internal/session"
	"github.com/shouni/go-cinegen-kit/internal/store"
	"github.com/shouni/go-cinegen-kit/pkg/domain"
)

// wizardState は、concept → questions → script と進むウィザードの途中状態なのだ。
// コマンドをまたいで autosave に退避される。
type wizardState struct {
	Topic           string                   `json:"topic"`
	VisualStyle     string                   `json:"visualStyle"`
	Lyrics          []domain.LyricSegment    `json:"lyrics,omitempty"`
	Concepts        []domain.StoryConcept    `json:"concepts,omitempty"`
	SelectedConcept *domain.StoryConcept     `json:"selectedConcept,omitempty"`
	Questions       []domain.Question        `json:"questions,omitempty"`
	Answers         []domain.Answer          `json:"answers,omitempty"`
	Characters      []domain.Character       `json:"characters,omitempty"`
	Locations       []domain.LocationSetting `json:"locations,omitempty"`
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
// 初期化中にエラーが発生した場合は、AppContext のポインタとエラーを返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	st, err := store.Open(cfg.DBFile)
	if err != nil {
		return nil, err
	}

	gw, err := builder.InitializeGateway(ctx, cfg)
	if err != nil {
		st.Close()
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, st, session.New(st), gw)
	return &appCtx, nil
}

// setupStoreOnly はAIを使わないコマンド（アカウント・一覧・削除など）用の
// 軽量版なのだ。APIキーが無くても動く。
func setupStoreOnly(cfg *config.Config) (*builder.AppContext, error) {
	st, err := store.Open(cfg.DBFile)
	if err != nil {
		return nil, err
	}
	appCtx := builder.NewAppContext(cfg, st, session.New(st), nil)
	return &appCtx, nil
}

// requireUser はログイン中のユーザーを返すのだ。未ログインなら案内付きのエラー。
func requireUser(appCtx *builder.AppContext) (*domain.User, error) {
	u, err := appCtx.Session.Current()
	if errors.Is(err, session.ErrNotLoggedIn) {
		return nil, fmt.Errorf("ログインしていません。先に `user login` を実行してほしいのだ")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// loadWizardState は途中状態を読み出すのだ。無ければ空の状態を返す。
func loadWizardState(appCtx *builder.AppContext, userEmail string) (*wizardState, error) {
	raw, err := appCtx.Store.LoadAutosave(userEmail)
	if errors.Is(err, store.ErrNotFound) {
		return &wizardState{}, nil
	}
	if err != nil {
		return nil, err
	}

	var state wizardState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("途中状態の読み出しに失敗しました: %w", err)
	}
	return &state, nil
}

// saveWizardState は途中状態を退避するのだ。
func saveWizardState(appCtx *builder.AppContext, userEmail string, state *wizardState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("途中状態のエンコードに失敗しました: %w", err)
	}
	return appCtx.Store.SaveAutosave(userEmail, string(raw))
}

// opTimeout は単発のAI呼び出しフェーズに適用するタイムアウト付きコンテキストを
// 返すのだ。一括生成のような長時間フェーズには使わない。
func opTimeout(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
