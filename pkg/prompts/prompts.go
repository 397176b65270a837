// Package prompts は、パイプライン各ステージ向けの生成指示文を組み立てる
// 純関数群を提供します。必須フィールドと厳密な出力形状の契約が、そのまま
// 後段のパースとバリデーションを駆動します。
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shouni/go-video-kit/pkg/domain"
)

// blockRef は台本ブロックをプロンプトに埋め込む際の最小表現です。
type blockRef struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// segmentRef はセグメントをプロンプトに埋め込む際の最小表現です。
type segmentRef struct {
	ID     string `json:"id"`
	Intent string `json:"intent"`
}

func marshalBlockRefs(blocks []domain.ScriptBlock) string {
	refs := make([]blockRef, 0, len(blocks))
	for _, b := range blocks {
		refs = append(refs, blockRef{ID: b.SectionID, Text: b.Text})
	}
	data, err := json.Marshal(refs)
	if err != nil {
		// 文字列とスライスのみの構造体なので、ここに来ることはない
		return "[]"
	}
	return string(data)
}

func marshalSegmentRefs(segments []domain.SceneSegment) string {
	refs := make([]segmentRef, 0, len(segments))
	for _, s := range segments {
		refs = append(refs, segmentRef{ID: s.ID, Intent: s.VisualIntent})
	}
	data, err := json.Marshal(refs)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func writeSectionLine(sb *strings.Builder, format string, args ...any) {
	fmt.Fprintf(sb, format, args...)
	sb.WriteString("\n")
}
