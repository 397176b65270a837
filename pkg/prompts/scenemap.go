package prompts

import (
	"strings"

	"github.com/shouni/go-video-kit/pkg/domain"
)

// BuildSceneMapPrompt は台本を時間付きシーンマップへ分割する指示文を組み立てます。
// 応答は SceneSegment の JSON 配列を要求します。
func BuildSceneMapPrompt(blocks []domain.ScriptBlock, totalDurationSec int) string {
	var sb strings.Builder

	sb.WriteString("Convert the script into a timed SCENE MAP.\n")
	sb.WriteString("Split into segments of 5-10 seconds.\n\n")
	writeSectionLine(&sb, "TOTAL TARGET DURATION: %d seconds (STRICT).", totalDurationSec)

	sb.WriteString("\nSCRIPT BLOCKS:\n")
	sb.WriteString(marshalBlockRefs(blocks))
	sb.WriteString("\n")

	sb.WriteString(`
Output strictly a JSON array of objects:
[
  {
    "id": "SEG_001",
    "sectionId": "S1",
    "startSec": 0,
    "endSec": 8,
    "narration": "Text spoken...",
    "visualIntent": "Visual description...",
    "shotType": "broll",
    "beatType": "hook",
    "visualRole": "establishing",
    "continuityTags": ["loc:studio", "light:soft"]
  }
]

FIELDS:
- beatType options: hook, explanation, example, transition, cta.
- visualRole options: establishing, supporting, recap, cta.
- sectionId: Must match the script block ID provided.

CRITICAL INSTRUCTIONS:
1. Ensure IDs are sequential (SEG_001, SEG_002...).
2. Ensure startSec/endSec are continuous (no gaps).
`)
	writeSectionLine(&sb, "3. The FINAL segment's 'endSec' MUST be exactly %d. Adjust pacing if needed.", totalDurationSec)
	sb.WriteString("\nDo not use markdown backticks. Return RAW JSON.\n")

	return sb.String()
}
