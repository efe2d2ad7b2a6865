package builder

import (
	"github.com/shouni/go-cinegen-kit/internal/config"
	"github.com/shouni/go-cinegen-kit/internal/session"
	"github.com/shouni/go-cinegen-kit/internal/store"
	"github.com/shouni/go-cinegen-kit/pkg/gateway"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config  *config.Config         // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options config.GenerateOptions // Optionsは、コマンドラインから渡された実行時の設定です（トピック、言語、出力先など）。
	Store   *store.Store           // Storeは、プロジェクト・ワールド・ユーザーの永続化先です。
	Session *session.Session       // Sessionは、ログイン状態の管理者です。
	Gateway *gateway.Client        // Gatewayは、Geminiの通信に使う共通クライアントです。
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	st *store.Store,
	sess *session.Session,
	gw *gateway.Client,
) AppContext {
	return AppContext{
		Config:  cfg,
		Options: cfg.Options,
		Store:   st,
		Session: sess,
		Gateway: gw,
	}
}
