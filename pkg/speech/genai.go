package speech

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GenaiSpeech は google.golang.org/genai の TTS 機能を Generator 契約に
// 適合させるアダプタです。
type GenaiSpeech struct {
	client *genai.Client
	model  string
}

// NewGenaiSpeech は TTS アダプタを構築します。
func NewGenaiSpeech(client *genai.Client, model string) (*GenaiSpeech, error) {
	if client == nil {
		return nil, fmt.Errorf("genai クライアントが設定されていません")
	}
	return &GenaiSpeech{client: client, model: model}, nil
}

// Synthesize はテキスト1区間を指定ボイスで音声化します。
func (g *GenaiSpeech) Synthesize(ctx context.Context, text, voiceName string) ([]byte, string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text),
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voiceName},
				},
			},
		})
	if err != nil {
		return nil, "", fmt.Errorf("TTS リクエストに失敗しました: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, part.InlineData.MIMEType, nil
			}
		}
	}
	return nil, "", fmt.Errorf("応答に音声データが含まれていません")
}
