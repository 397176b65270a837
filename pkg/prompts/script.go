package prompts

import (
	"math"
	"strings"

	"github.com/shouni/go-video-kit/pkg/domain"
)

// SectionWordBounds はセクションの語数予算から実効上下限を導きます。
// 0.85〜1.15 倍を基本とし、下限が 20 語を切る短いセクションは
// 18〜max(35, 上限) に底上げして一文スローガン化を防ぎます。
func SectionWordBounds(wordBudget int) (minWords, maxWords int) {
	minWords = int(math.Floor(float64(wordBudget) * 0.85))
	maxWords = int(math.Ceil(float64(wordBudget) * 1.15))

	if minWords < 20 {
		minWords = 18
		if maxWords < 35 {
			maxWords = 35
		}
	}
	return minWords, maxWords
}

// BuildScriptSectionPrompt は1セクション分の台本生成の指示文を組み立てます。
// 応答は話し言葉のテキストのみを要求します（JSONではありません）。
func BuildScriptSectionPrompt(brief domain.ProjectBrief, section domain.OutlineSection, memory domain.ScriptMemory) string {
	minWords, maxWords := SectionWordBounds(section.WordBudget)

	var sb strings.Builder
	sb.WriteString("Write the script for ONE section of a video.\n\n")
	writeSectionLine(&sb, "LANGUAGE: %s (MUST be written in this language).", strings.Join(brief.Languages, ", "))

	sb.WriteString("\nSECTION SPECS:\n")
	writeSectionLine(&sb, "- ID: %s", section.ID)
	writeSectionLine(&sb, "- Title: %s", section.Title)
	writeSectionLine(&sb, "- Goal: %s", section.Goal)
	writeSectionLine(&sb, "- Word Target: %d - %d words. (STRICT LIMIT. Do not exceed %d words).", minWords, maxWords, maxWords)

	sb.WriteString("\nMEMORY & CONTEXT:\n")
	writeSectionLine(&sb, "- Thesis: %s", memory.Thesis)
	writeSectionLine(&sb, "- Running Summary: %s", memory.RunningSummary)

	sb.WriteString("\nCONSTRAINTS:\n")
	writeSectionLine(&sb, "- BANNED PHRASES (STRICT): %s", strings.Join(memory.BannedRepetitions, ", "))
	writeSectionLine(&sb, "- Style Rules: %s", strings.Join(memory.StyleVoiceRules, "; "))
	sb.WriteString("- NO META-COMMENTARY: Do not say \"In this video\", \"Our story\", \"Let's look at\". Just tell the story.\n")

	sb.WriteString("\nENTITIES (Use these exact names/descriptions):\n")
	entityMap := domain.BuildEntityMap(memory.Entities)
	for _, name := range entityMap.SortedNames() {
		writeSectionLine(&sb, "- %s", entityMap[name])
	}

	bridge := section.BridgeToNext
	if bridge == "" {
		bridge = "next topic"
	}

	sb.WriteString("\nINSTRUCTIONS:\n")
	sb.WriteString("- Write strictly the spoken text (VO/Dialogue).\n")
	sb.WriteString("- No scene descriptions, no \"Narrator:\" prefixes.\n")
	sb.WriteString("- Focus on flow and hook the viewer.\n")
	sb.WriteString("- Include 1 CONCRETE DETAIL (action, emotion, or consequence).\n")
	writeSectionLine(&sb, "- If bridging to next section, hint at: %s.", bridge)

	return sb.String()
}
