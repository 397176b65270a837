package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel       = "gemini-3-flash-preview"
	DefaultImageModel  = "gemini-3-pro-image-preview"
	DefaultTTSModel    = "gemini-2.5-flash-preview-tts"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultRateLimit   = 10 * time.Second
	DefaultLogDir      = "logs"                  // 実行ごとのステージ成果物の保存先なのだ
	DefaultOutputFile  = "output/package.json"   // 最終パッケージのデフォルト保存先なのだ
)

// Config はアプリケーション全体の環境設定（APIキーやモデル名）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey string
	GeminiModel  string
	ImageModel   string
	TTSModel     string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		GeminiAPIKey: envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:  envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		ImageModel:   envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		TTSModel:     envutil.GetEnv("TTS_GEMINI_MODEL", DefaultTTSModel),
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	BriefFile   string // --brief-file: 企画ブリーフ（JSON）のパスまたは gs:// URL
	PackageFile string // --package-file: visuals / audio が読み込む既存パッケージ
	OutputFile  string // --output-file

	// AI挙動設定
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル
	TTSModel   string // --tts-model: 音声合成用のGeminiモデル

	// 実行制御
	LogDir      string        // --log-dir: 実行ログの保存先（空文字で記録なし）
	HTTPTimeout time.Duration // --http-timeout
}
