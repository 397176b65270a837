// Package audit は、パイプライン実行の各ステージで使われたプロンプトと
// 生の応答を実行ID配下に書き残す、ベストエフォートの記録係です。
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// DefaultLogDir は実行ログの既定の保存先です。
const DefaultLogDir = "logs"

// RunLogger は1回の実行に紐づくステージ成果物の記録を担います。
// 記録の失敗はパイプラインを止めてはならないため、Log はエラーを返しません。
type RunLogger struct {
	writer remoteio.OutputWriter
	runDir string
}

// NewRunLogger は実行IDごとの記録係を初期化します。
// writer が nil の場合は何も記録しない無効なロガーとして振る舞います。
func NewRunLogger(writer remoteio.OutputWriter, baseDir, runID string) *RunLogger {
	if baseDir == "" {
		baseDir = DefaultLogDir
	}
	return &RunLogger{
		writer: writer,
		runDir: path.Join(baseDir, runID),
	}
}

// Log は任意のステージ成果物を JSON として書き出すのだ。
// 失敗しても警告ログを残すだけで、呼び出し元には影響させないのだ。
func (l *RunLogger) Log(ctx context.Context, step string, v any) {
	if l == nil || l.writer == nil {
		return
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		slog.WarnContext(ctx, "ステージ成果物のJSON変換に失敗しました", "step", step, "error", err)
		return
	}

	filePath := path.Join(l.runDir, fmt.Sprintf("%s.json", step))
	if err := l.writer.Write(ctx, filePath, bytes.NewReader(data), "application/json"); err != nil {
		slog.WarnContext(ctx, "ステージ成果物の書き出しに失敗しました", "step", step, "path", filePath, "error", err)
	}
}

// StagePayload はプロンプトと応答をひとまとめに記録するための汎用封筒です。
type StagePayload struct {
	Prompt string `json:"prompt,omitempty"`
	Output any    `json:"output,omitempty"`
}
