package prompts

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/shouni/go-video-kit/pkg/domain"
)

// BuildPromptCardsPrompt はセグメントごとの画像プロンプト生成の指示文を組み立てます。
// Continuity Bible のエンティティ名は、プロンプト内で必ずフル記述へ置換させます。
// 画像バックエンドは過去のターンを覚えていないため、裸の名前を渡すと
// 一貫性が壊れてしまうのだ。
func BuildPromptCardsPrompt(segments []domain.SceneSegment, bible domain.StyleBible, brief domain.ProjectBrief) string {
	names := make([]string, 0, len(bible.ContinuityBible))
	for name := range bible.ContinuityBible {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder

	sb.WriteString("You are a prompt engineer for High-End AI Image Generators (Midjourney v6, Stable Diffusion XL).\n")
	sb.WriteString("Generate precise, descriptive prompts for video scenes.\n\n")

	sb.WriteString("GLOBAL STYLE (Apply to ALL prompts):\n")
	writeSectionLine(&sb, "- Lighting: %s", bible.Lighting)
	writeSectionLine(&sb, "- Camera: %s", bible.Camera)
	writeSectionLine(&sb, "- Palette: %s", strings.Join(bible.Palette, ", "))
	writeSectionLine(&sb, "- Global Locks: %s", strings.Join(bible.GlobalLocks, ", "))

	sb.WriteString("\nCONTINUITY BIBLE (Use these EXACT descriptions for subjects):\n")
	for _, name := range names {
		writeSectionLine(&sb, "- %q: %s", name, bible.ContinuityBible[name])
	}

	sb.WriteString(`
INSTRUCTIONS:
1. For each segment, create a "finalPositivePrompt".
2. USE THE FORMULA: [Subject Description] + [Action/Movement] + [Environment/Background] + [Lighting/Camera] + [Style Keywords].
`)
	writeSectionLine(&sb, "3. IMPORTANT: If a segment mentions a subject from the Continuity Bible (e.g., %q), you MUST replace the name with its full visual description provided above. NEVER use just the name.", strings.Join(names, "\", \""))
	sb.WriteString("4. Make the prompt highly descriptive (adjectives, textures, details).\n")

	sb.WriteString("\nSEGMENTS TO GENERATE:\n")
	sb.WriteString(marshalSegmentRefs(segments))
	sb.WriteString("\n")

	locksJSON, err := json.Marshal(bible.GlobalLocks)
	if err != nil || bible.GlobalLocks == nil {
		locksJSON = []byte("[]")
	}

	sb.WriteString("\nOutput strictly a JSON array:\n")
	sb.WriteString("[\n  {\n")
	sb.WriteString("    \"segmentId\": \"SEG_xxx\",\n")
	sb.WriteString("    \"finalPositivePrompt\": \"A highly detailed scene description with subject, action, environment, lighting and style keywords...\",\n")
	writeSectionLine(&sb, "    \"finalNegativePrompt\": %q,", bible.NegativePrompt)
	writeSectionLine(&sb, "    \"globalLocks\": %s,", string(locksJSON))
	writeSectionLine(&sb, "    \"noTextRule\": %t", brief.NoTextInImages)
	sb.WriteString("  }\n]\n")
	sb.WriteString("\nDo not use markdown backticks. Return RAW JSON.\n")

	return sb.String()
}
