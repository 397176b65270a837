package pipeline

import (
	"context"
	"strings"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-video-kit/pkg/parser"
)

// Generator は生成バックエンドとの1往復の契約です。構造化プロンプトを
// 渡し、自由形式のテキストを受け取ります。リトライと応答形状の矯正は
// オーケストレータ側の責務であり、ここには持ち込みません。
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiText は go-gemini-client を Generator 契約に適合させるアダプタです。
type GeminiText struct {
	client gemini.GenerativeModel
	model  string
}

// NewGeminiText はテキスト生成アダプタを構築します。クライアント未設定は
// 構築時点の設定エラーとして即座に失敗させます。呼び出し箇所に nil チェックを
// 散らばらせないための設計なのだ。
func NewGeminiText(client gemini.GenerativeModel, model string) (*GeminiText, error) {
	if client == nil {
		return nil, ErrNoClient
	}
	return &GeminiText{client: client, model: model}, nil
}

// Generate は1回の生成呼び出しを行い、生のテキストを返します。
func (g *GeminiText) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.GenerateContent(ctx, prompt, g.model)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Text, nil
}

// generateJSON は1回の生成呼び出しの応答を T として解釈します。
// 解析失敗は *parser.MalformedOutputError となり、呼び出し側の
// リトライポリシーでは一時的障害と同じ扱いを受けます。
func generateJSON[T any](ctx context.Context, gen Generator, prompt string) (T, error) {
	var zero T
	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		return zero, err
	}
	return parser.DecodeJSON[T](text)
}
