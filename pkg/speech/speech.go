// Package speech は、確定済みパッケージのナレーションを音声化する
// 任意の後段ステージです。セグメントごとの audioUrl と、全編を連結した
// fullAudioUrl を書き込みます。
package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-video-kit/pkg/domain"
)

const (
	// DefaultVoiceName はブリーフに音声指定がない場合の既定ボイスです。
	DefaultVoiceName = "Kore"

	maxAttempts      = 3
	retryBackoff     = 1500 * time.Millisecond
	concatenatedMime = "audio/mpeg"
)

// Generator は1区間のテキストを音声化する契約です。
type Generator interface {
	Synthesize(ctx context.Context, text, voiceName string) (data []byte, mimeType string, err error)
}

// Narrator はシーンマップ全体のナレーション音声化を担います。
type Narrator struct {
	gen Generator
}

// NewNarrator は Narrator を初期化します。
func NewNarrator(gen Generator) (*Narrator, error) {
	if gen == nil {
		return nil, fmt.Errorf("音声合成バックエンドが設定されていません")
	}
	return &Narrator{gen: gen}, nil
}

// NarrateScenes は全セグメントを順に音声化し、パッケージを直接更新します。
//
// TTS バックエンドのレート制限が厳しいため、画像生成と違って並列化は
// しません。各セグメントは最大3回まで試行し、ナレーションが空の
// セグメントはスキップされます。1つも成功しなかった場合はパッケージを
// 変更せずに戻ります。
func (n *Narrator) NarrateScenes(ctx context.Context, pkg *domain.ProjectPackage) error {
	if pkg == nil || len(pkg.SceneMap) == 0 {
		return fmt.Errorf("シーンマップが空のため音声生成を実行できません")
	}

	voiceName := pickVoice(pkg.Brief)
	chunks := make([][]byte, 0, len(pkg.SceneMap))

	for i, segment := range pkg.SceneMap {
		narration := strings.TrimSpace(segment.Narration)
		if narration == "" {
			continue
		}

		// ボイススタイル指示はポリッシュ段階の成果物なので、ここで前置して活かす
		text := narration
		if pkg.VoiceStyleInstructions != "" {
			text = pkg.VoiceStyleInstructions + "\n\n" + narration
		}

		data, mimeType, err := n.synthesizeWithRetry(ctx, segment.ID, text, voiceName)
		if err != nil {
			slog.WarnContext(ctx, "セグメントの音声生成に失敗したのだ",
				"segment_id", segment.ID, "error", err)
			continue
		}

		if mimeType == "" {
			mimeType = concatenatedMime
		}
		pkg.SceneMap[i].AudioURL = fmt.Sprintf("data:%s;base64,%s",
			mimeType, base64.StdEncoding.EncodeToString(data))
		chunks = append(chunks, data)
	}

	if len(chunks) == 0 {
		slog.WarnContext(ctx, "音声が1つも生成できなかったため、パッケージは変更しないのだ")
		return nil
	}

	var full []byte
	for _, chunk := range chunks {
		full = append(full, chunk...)
	}
	pkg.FullAudioURL = fmt.Sprintf("data:%s;base64,%s",
		concatenatedMime, base64.StdEncoding.EncodeToString(full))

	slog.InfoContext(ctx, "音声生成が完了したのだ",
		"generated", len(chunks), "total", len(pkg.SceneMap), "voice", voiceName)
	return nil
}

func (n *Narrator) synthesizeWithRetry(ctx context.Context, segmentID, text, voiceName string) ([]byte, string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		data, mimeType, err := n.gen.Synthesize(ctx, text, voiceName)
		if err == nil && len(data) > 0 {
			return data, mimeType, nil
		}
		if err == nil {
			err = fmt.Errorf("音声データが空でした")
		}
		lastErr = err

		if attempt < maxAttempts {
			slog.WarnContext(ctx, "音声合成をリトライするのだ",
				"segment_id", segmentID, "attempt", attempt, "error", err)
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return nil, "", ctx.Err()
			}
		}
	}
	return nil, "", fmt.Errorf("音声合成が %d 回の試行すべてで失敗しました: %w", maxAttempts, lastErr)
}

// pickVoice は主要言語に紐づくボイスIDを選びます。指定がなければ既定値です。
func pickVoice(brief *domain.ProjectBrief) string {
	if brief == nil {
		return DefaultVoiceName
	}
	if v, ok := brief.Voice[brief.PrimaryLanguage()]; ok && v.VoiceID != "" {
		return v.VoiceID
	}
	return DefaultVoiceName
}
