package prompts

import (
	"strings"

	"github.com/shouni/go-video-kit/pkg/domain"
)

// BuildEntitiesPrompt は Entities Lock 段階の指示文を組み立てます。
// 応答は ScriptEntity の JSON 配列（3〜5件）を要求します。
func BuildEntitiesPrompt(brief domain.ProjectBrief, sections []domain.OutlineSection) string {
	var sb strings.Builder

	sb.WriteString("Act as a Casting Director and Production Designer.\n")
	sb.WriteString("Define the \"Entities Lock\" for this video project.\n\n")

	sb.WriteString("PROJECT:\n")
	writeSectionLine(&sb, "Title: %s", brief.Title)
	writeSectionLine(&sb, "Goal: %s", brief.Goal)
	writeSectionLine(&sb, "Style: %s", brief.VisualStyle)

	sb.WriteString("\nOUTLINE SUMMARY:\n")
	for _, s := range sections {
		writeSectionLine(&sb, "- %s: %s", s.Title, s.Goal)
	}

	sb.WriteString(`
INSTRUCTIONS:
Identify 3-5 key recurring entities (characters, locations, or key objects) that appear in the video.
Assign them a FINAL name and a consistent visual description.

OUTPUT JSON ARRAY ONLY:
[
  {
    "name": "Myke",
    "type": "character",
    "description": "Small Jack Russell Terrier, white with brown patch, red bandana, energetic."
  },
  {
    "name": "The Neighborhood",
    "type": "location",
    "description": "Sunny suburban street, colorful houses, clean sidewalks, golden hour lighting."
  }
]

RULES:
- If the user mentioned specific names in the title/goal, USE THEM.
- If no names were provided, INVENT suitable names.
- Descriptions must be visual and suitable for image generation prompts later.
`)

	return sb.String()
}
