package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/shouni/go-video-kit/internal/config"
	"github.com/shouni/go-video-kit/pkg/pipeline"
	"github.com/shouni/go-video-kit/pkg/speech"
	"github.com/shouni/go-video-kit/pkg/visuals"
)

const (
	defaultGeminiTemperature = float32(0.2)
	defaultCacheExpiration   = 5 * time.Minute
	cacheCleanupInterval     = 15 * time.Minute
	defaultTTL               = 5 * time.Minute
	defaultRateBurst         = 2
)

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// BuildPipeline は本文パイプライン（ブリーフ → 最終パッケージ）を構築します。
func BuildPipeline(appCtx *AppContext) (*pipeline.Pipeline, error) {
	gen, err := pipeline.NewGeminiText(appCtx.aiClient, appCtx.TextModel())
	if err != nil {
		return nil, fmt.Errorf("テキスト生成アダプタの初期化に失敗したのだ: %w", err)
	}
	return pipeline.NewPipeline(gen, appCtx.Writer, appCtx.Options.LogDir)
}

// BuildRenderer はシーン画像生成を担当する Renderer を構築します。
func BuildRenderer(appCtx *AppContext) (*visuals.Renderer, error) {
	imgCache := cache.New(defaultCacheExpiration, cacheCleanupInterval)
	core, err := imagekit.NewGeminiImageCore(
		appCtx.aiClient,
		appCtx.Reader,
		appCtx.httpClient,
		imgCache,
		defaultTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCore の初期化に失敗しました: %w", err)
	}

	imgGen, err := imagekit.NewGeminiGenerator(appCtx.ImageModel(), core)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}

	limiter := rate.NewLimiter(rate.Every(config.DefaultRateLimit), defaultRateBurst)
	return visuals.NewRenderer(imgGen, limiter), nil
}

// BuildNarrator はナレーション音声化を担当する Narrator を構築します。
func BuildNarrator(ctx context.Context, appCtx *AppContext) (*speech.Narrator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  appCtx.Config.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai クライアントの初期化に失敗しました: %w", err)
	}

	tts, err := speech.NewGenaiSpeech(client, appCtx.TTSModel())
	if err != nil {
		return nil, err
	}
	return speech.NewNarrator(tts)
}
