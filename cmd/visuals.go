package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-video-kit/internal/config"
	"github.com/shouni/go-video-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// visualsCmd は、既存のパッケージJSONを読み込んでシーン画像生成フェーズを実行するためのサブコマンドなのだ。
// 本文パイプラインをスキップして、画像生成のみを行うのだ。
var visualsCmd = &cobra.Command{
	Use:   "visuals",
	Short: "パッケージJSONからシーン画像を生成して保存するのだ。",
	Long: `すでに生成・確認済みのパッケージJSONを読み込み、プロンプトカードに
基づくシーン画像の生成と保存を実行するのだ。テキスト生成のコストを抑えつつ、
画像の再生成や調整を行いたい場合に便利なのだ。`,
	RunE: visualsCommand,
}

// visualsCommand は、visuals サブコマンドの実行ロジック本体なのだ。
func visualsCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.PackageFile == "" {
		return fmt.Errorf("読み込むパッケージJSON（--package-file）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.ImageModel = opts.ImageModel
	cfg.Options = opts

	slog.Info("ビジュアル生成モードを起動するのだ！",
		"package", opts.PackageFile,
		"image_model", cfg.ImageModel,
		"output", opts.OutputFile)

	if err := pipeline.ExecuteVisuals(ctx, cfg); err != nil {
		return fmt.Errorf("ビジュアル生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("ビジュアル生成が完了したのだ！")
	return nil
}
