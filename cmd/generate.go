package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-video-kit/internal/config"
	"github.com/shouni/go-video-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、企画ブリーフから最終パッケージまでの本文パイプラインを実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "ブリーフから台本・シーンマップ・プロンプトカードを一括生成しますなのだ。",
	Long: `企画ブリーフ（JSON）を解析し、アウトライン、台本、シーンマップ、
スタイルバイブル、画像プロンプトカードまでを一気通貫で生成するのだ。
出力は検査結果つきの最終パッケージ（JSON）になるのだよ。`,
	RunE: generateCommand,
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.BriefFile == "" {
		return fmt.Errorf("企画ブリーフ（--brief-file）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.Options = opts

	slog.Info("動画パッケージ生成パイプラインを起動するのだ！",
		"brief", opts.BriefFile,
		"text_model", cfg.GeminiModel,
		"output", opts.OutputFile)

	if err := pipeline.ExecuteFull(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
