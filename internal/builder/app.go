package builder

import (
	"github.com/shouni/go-video-kit/internal/config"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config     *config.Config          // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options    config.GenerateOptions  // Optionsは、コマンドラインから渡された実行時の設定です（入力パス、モデル名など）。
	Reader     remoteio.InputReader    // Readerは、ブリーフや既存パッケージの読み込みに使用する入力元です。
	Writer     remoteio.OutputWriter   // Writerは、最終パッケージと実行ログを保存するための出力先です。
	aiClient   gemini.GenerativeModel  // aiClient はGeminiの通信に使う共通クライアント
	httpClient httpkit.ClientInterface // httpClient は外部APIとの通信に使う共通クライアント
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	httpClient httpkit.ClientInterface,
	aiClient gemini.GenerativeModel,
	reader remoteio.InputReader,
	writer remoteio.OutputWriter,
) AppContext {
	return AppContext{
		Config:     cfg,
		Options:    cfg.Options,
		aiClient:   aiClient,
		httpClient: httpClient,
		Reader:     reader,
		Writer:     writer,
	}
}

// TextModel はテキスト生成に使うモデル名を解決します。CLI 指定が優先です。
func (a *AppContext) TextModel() string {
	if a.Options.AIModel != "" {
		return a.Options.AIModel
	}
	return a.Config.GeminiModel
}

// ImageModel は画像生成に使うモデル名を解決します。CLI 指定が優先です。
func (a *AppContext) ImageModel() string {
	if a.Options.ImageModel != "" {
		return a.Options.ImageModel
	}
	return a.Config.ImageModel
}

// TTSModel は音声合成に使うモデル名を解決します。CLI 指定が優先です。
func (a *AppContext) TTSModel() string {
	if a.Options.TTSModel != "" {
		return a.Options.TTSModel
	}
	return a.Config.TTSModel
}
