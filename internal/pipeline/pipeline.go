package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-video-kit/internal/builder"
	"github.com/shouni/go-video-kit/internal/config"
	"github.com/shouni/go-video-kit/pkg/domain"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

const packageMimeType = "application/json"

// ExecuteFull は、企画ブリーフ（JSON）を読み込み、台本からプロンプトカード
// までの本文パイプラインを実行して最終パッケージを保存するのだ。
func ExecuteFull(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	brief, err := loadBrief(ctx, appCtx, cfg.Options.BriefFile)
	if err != nil {
		return err
	}

	p, err := builder.BuildPipeline(appCtx)
	if err != nil {
		return fmt.Errorf("パイプラインの構築に失敗したのだ: %w", err)
	}

	pkg, err := p.RunFullProject(ctx, brief)
	if err != nil {
		return err
	}

	if err := savePackage(ctx, appCtx, pkg); err != nil {
		return err
	}

	slog.Info("最終パッケージが完成したのだ！",
		"run_id", pkg.RunID,
		"validation", pkg.Validation.Status,
		"path", outputPath(cfg),
	)
	return nil
}

// ExecuteVisuals は、既存のパッケージを読み込み、プロンプトカードを使って
// シーン画像を生成するのだ。imageUrl 以外のフィールドは変更しないのだ。
func ExecuteVisuals(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	pkg, err := loadPackage(ctx, appCtx, cfg.Options.PackageFile)
	if err != nil {
		return err
	}

	renderer, err := builder.BuildRenderer(appCtx)
	if err != nil {
		return fmt.Errorf("Rendererの構築に失敗したのだ: %w", err)
	}

	if err := renderer.RenderScenes(ctx, pkg); err != nil {
		return err
	}

	if err := savePackage(ctx, appCtx, pkg); err != nil {
		return err
	}

	slog.Info("ビジュアル付きパッケージを保存したのだ！", "path", outputPath(cfg))
	return nil
}

// ExecuteAudio は、既存のパッケージを読み込み、ナレーションを音声化して
// audioUrl と fullAudioUrl を書き込むのだ。
func ExecuteAudio(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	pkg, err := loadPackage(ctx, appCtx, cfg.Options.PackageFile)
	if err != nil {
		return err
	}

	narrator, err := builder.BuildNarrator(ctx, appCtx)
	if err != nil {
		return fmt.Errorf("Narratorの構築に失敗したのだ: %w", err)
	}

	if err := narrator.NarrateScenes(ctx, pkg); err != nil {
		return err
	}

	if err := savePackage(ctx, appCtx, pkg); err != nil {
		return err
	}

	slog.Info("音声付きパッケージを保存したのだ！", "path", outputPath(cfg))
	return nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	aiClient, err := builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, httpClient, aiClient, reader, writer)
	return &appCtx, nil
}

// loadBrief は企画ブリーフ（JSON）を読み込むのだ。ローカルパスでも gs:// でもいいのだ。
func loadBrief(ctx context.Context, appCtx *builder.AppContext, path string) (domain.ProjectBrief, error) {
	var brief domain.ProjectBrief

	rc, err := appCtx.Reader.Open(ctx, path)
	if err != nil {
		return brief, fmt.Errorf("ブリーフ '%s' の読み込みに失敗しました: %w", path, err)
	}
	defer rc.Close()

	if err := json.NewDecoder(rc).Decode(&brief); err != nil {
		return brief, fmt.Errorf("ブリーフ '%s' のデコードに失敗しました: %w", path, err)
	}
	if brief.TargetDurationSec <= 0 {
		return brief, fmt.Errorf("ブリーフの targetDurationSec は正の値が必要です")
	}
	return brief, nil
}

// loadPackage は既存の最終パッケージ（JSON）を読み込むのだ。
func loadPackage(ctx context.Context, appCtx *builder.AppContext, path string) (*domain.ProjectPackage, error) {
	if path == "" {
		return nil, fmt.Errorf("--package-file で入力パッケージを指定してほしいのだ")
	}

	rc, err := appCtx.Reader.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("パッケージ '%s' の読み込みに失敗しました: %w", path, err)
	}
	defer rc.Close()

	var pkg domain.ProjectPackage
	if err := json.NewDecoder(rc).Decode(&pkg); err != nil {
		return nil, fmt.Errorf("パッケージ '%s' のデコードに失敗しました: %w", path, err)
	}
	return &pkg, nil
}

func savePackage(ctx context.Context, appCtx *builder.AppContext, pkg *domain.ProjectPackage) error {
	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return fmt.Errorf("パッケージのエンコードに失敗しました: %w", err)
	}

	path := appCtx.Options.OutputFile
	if path == "" {
		path = config.DefaultOutputFile
	}
	if err := appCtx.Writer.Write(ctx, path, bytes.NewReader(data), packageMimeType); err != nil {
		return fmt.Errorf("パッケージの保存に失敗したのだ: %w", err)
	}
	return nil
}

func outputPath(cfg *config.Config) string {
	if cfg.Options.OutputFile != "" {
		return cfg.Options.OutputFile
	}
	return config.DefaultOutputFile
}
