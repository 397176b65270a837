package visuals

import (
	"strings"
	"testing"

	"github.com/shouni/go-video-kit/pkg/domain"
)

func TestBuildConsistencyAnchor(t *testing.T) {
	bible := domain.StyleBible{
		Palette:     []string{"amber", "deep blue"},
		Lighting:    "golden hour",
		Camera:      "35mm",
		GlobalLocks: []string{"warm palette", "no people in background"},
	}

	anchor := buildConsistencyAnchor(bible)

	t.Run("世界観の各要素が前置きに入ること", func(t *testing.T) {
		for _, want := range []string{"amber, deep blue", "golden hour", "35mm", "warm palette", "no people in background"} {
			if !strings.Contains(anchor, want) {
				t.Errorf("%q が前置きにありません", want)
			}
		}
	})

	t.Run("シーンプロンプトの挿入位置で終わること", func(t *testing.T) {
		if !strings.HasSuffix(anchor, "SCENE PROMPT:\n") {
			t.Errorf("予期しない末尾: %q", anchor)
		}
	})

	t.Run("空のバイブルでも前置きの骨格は保たれること", func(t *testing.T) {
		empty := buildConsistencyAnchor(domain.StyleBible{})
		if !strings.HasPrefix(empty, "CONSISTENCY ANCHOR") {
			t.Errorf("予期しない先頭: %q", empty)
		}
	})
}

func TestSceneSeed(t *testing.T) {
	t.Run("同じ継続性タグなら別セグメントでも同じシードになること", func(t *testing.T) {
		a := sceneSeed(domain.SceneSegment{ID: "SEG_001", ContinuityTags: []string{"Marco"}}, nil)
		b := sceneSeed(domain.SceneSegment{ID: "SEG_007", ContinuityTags: []string{"Marco"}}, nil)
		if a != b {
			t.Error("同じタグから異なるシードが生成されました")
		}
	})

	t.Run("タグがなければセグメントIDから導出されること", func(t *testing.T) {
		a := sceneSeed(domain.SceneSegment{ID: "SEG_001"}, nil)
		b := sceneSeed(domain.SceneSegment{ID: "SEG_002"}, nil)
		if a == b {
			t.Error("異なるセグメントから同じシードが生成されました")
		}
	})

	t.Run("タグの大文字小文字の揺れがロック側の表記に正規化されること", func(t *testing.T) {
		entities := domain.BuildEntityMap([]domain.ScriptEntity{
			{Name: "Marco", Type: "character", Description: "A merchant in a red cloak"},
		})
		a := sceneSeed(domain.SceneSegment{ID: "SEG_001", ContinuityTags: []string{"marco"}}, entities)
		b := sceneSeed(domain.SceneSegment{ID: "SEG_007", ContinuityTags: []string{"Marco"}}, entities)
		if a != b {
			t.Error("表記揺れのあるタグから異なるシードが生成されました")
		}
	})
}
