package builder

import (
	"github.com/shouni/go-verse-kit/internal/config"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config     *config.Config          // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、配信先設定など）。
	Options    config.GenerateOptions  // Optionsは、コマンドラインから渡された実行時の設定です（モデル名、出力先など）。
	Writer     remoteio.OutputWriter   // Writerは、生成された画像とキャプションのアーカイブ保存先です。
	aiClient   gemini.GenerativeModel  // aiClient はGeminiの通信に使う共通クライアント
	httpClient httpkit.ClientInterface // httpClient は外部APIとの通信に使う共通クライアント
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	httpClient httpkit.ClientInterface,
	aiClient gemini.GenerativeModel,
	writer remoteio.OutputWriter,
) AppContext {
	return AppContext{
		Config:     cfg,
		Options:    cfg.Options,
		aiClient:   aiClient,
		httpClient: httpClient,
		Writer:     writer,
	}
}
