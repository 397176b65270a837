package prompts

import (
	"strings"

	"github.com/shouni/go-video-kit/pkg/domain"
)

// PolishResult はポリッシュ段階の応答形状です。
type PolishResult struct {
	VoiceStyleInstructions string          `json:"voiceStyleInstructions"`
	PolishedBlocks         []PolishedBlock `json:"polishedBlocks"`
}

// PolishedBlock は書き直された1ブロック分のテキストです。
type PolishedBlock struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// BuildPolishPrompt は全ブロック一括のポリッシュ指示文を組み立てます。
func BuildPolishPrompt(blocks []domain.ScriptBlock, profile domain.VoiceProfile, language string) string {
	var sb strings.Builder

	sb.WriteString("Act as a Senior Script Editor.\n")
	sb.WriteString("Polish the following script blocks to sound human, engaging, and rhythmically varied.\n\n")
	writeSectionLine(&sb, "TARGET LANGUAGE: %s (Strictly)", language)

	sb.WriteString("\nVOICE PROFILE:\n")
	writeSectionLine(&sb, "- Tone: %s", profile.Tone)
	writeSectionLine(&sb, "- Audience: %s", profile.Audience)
	writeSectionLine(&sb, "- Style Rules: %s", strings.Join(profile.StyleRules, ", "))

	sb.WriteString("\nBANNED PHRASES (REMOVE/REWRITE):\n")
	writeSectionLine(&sb, "%s", strings.Join(profile.BannedPhrases, ", "))
	writeSectionLine(&sb, "%s", strings.Join(profile.BannedCliches, ", "))

	sb.WriteString("\nINPUT BLOCKS:\n")
	sb.WriteString(marshalBlockRefs(blocks))
	sb.WriteString("\n")

	sb.WriteString(`
INSTRUCTIONS:
1. Iterate through each block.
2. REWRITE the text to improve flow, remove repetition, and eliminate AI-sounding phrasing.
3. Remove any meta-commentary ("In this video...", "As we can see...").
4. Ensure the meaning remains the same.
5. KEEP IT CONCISE. If a block feels too long, CONDENSE it.
6. Generate "voiceStyleInstructions" describing how the voice actor should perform the ENTIRE script.

IMPORTANT:
- Output MUST be valid JSON.
- ESCAPE all double quotes inside the text strings (e.g., use \" instead of ").
- Do not include markdown formatting (like code blocks) in the response, just the raw JSON string.

OUTPUT JSON OBJECT:
{
  "voiceStyleInstructions": "Detailed instructions for the voice actor...",
  "polishedBlocks": [
    { "id": "S1", "text": "Polished text here..." },
    { "id": "S2", "text": "Polished text here..." }
  ]
}
`)

	return sb.String()
}
