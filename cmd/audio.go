package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-video-kit/internal/config"
	"github.com/shouni/go-video-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// audioCmd は、既存のパッケージJSONを読み込んでナレーション音声化フェーズを実行するためのサブコマンドなのだ。
var audioCmd = &cobra.Command{
	Use:   "audio",
	Short: "パッケージJSONのナレーションを音声化して保存するのだ。",
	Long: `すでに生成・確認済みのパッケージJSONを読み込み、各シーンのナレーションを
TTSで音声化するのだ。セグメントごとの audioUrl と、全編を連結した
fullAudioUrl がパッケージに書き込まれるのだよ。`,
	RunE: audioCommand,
}

// audioCommand は、audio サブコマンドの実行ロジック本体なのだ。
func audioCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if opts.PackageFile == "" {
		return fmt.Errorf("読み込むパッケージJSON（--package-file）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.TTSModel = opts.TTSModel
	cfg.Options = opts

	slog.Info("音声生成モードを起動するのだ！",
		"package", opts.PackageFile,
		"tts_model", cfg.TTSModel,
		"output", opts.OutputFile)

	if err := pipeline.ExecuteAudio(ctx, cfg); err != nil {
		return fmt.Errorf("音声生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("音声生成が完了したのだ！")
	return nil
}
