package prompts

import (
	"strings"

	"github.com/shouni/go-video-kit/pkg/blueprint"
	"github.com/shouni/go-video-kit/pkg/domain"
)

// BuildOutlinePrompt はアウトライン段階の指示文を組み立てます。
// 応答は {"sections":[...]} 形式の JSON オブジェクトを要求します。
func BuildOutlinePrompt(brief domain.ProjectBrief, budget domain.Budget, bp blueprint.Blueprint) string {
	var sb strings.Builder

	sb.WriteString("You are an expert video strategist.\n")
	sb.WriteString("Create a Master Outline for a video.\n\n")

	sb.WriteString("CONTEXT:\n")
	writeSectionLine(&sb, "Title: %s", brief.Title)
	writeSectionLine(&sb, "Goal: %s", brief.Goal)
	writeSectionLine(&sb, "Format: %s", brief.Format)
	writeSectionLine(&sb, "Blueprint: %s", strings.ToUpper(string(bp.Type)))
	writeSectionLine(&sb, "Strategy: %s", bp.StructureStrategy)

	sb.WriteString("\nPACING BUDGET:\n")
	writeSectionLine(&sb, "- Total Duration: %ds", brief.TargetDurationSec)
	writeSectionLine(&sb, "- Total Target Words: %d", budget.TargetWords)
	writeSectionLine(&sb, "- Hook/Intro: ~%ds", budget.HookSec)
	writeSectionLine(&sb, "- Main Body: ~%ds", budget.BodySec)
	writeSectionLine(&sb, "- Conclusion: ~%ds", budget.CloseSec)
	if budget.SecPerItem > 0 {
		writeSectionLine(&sb, "- Seconds Per Ranked Item: ~%ds", budget.SecPerItem)
	}

	sb.WriteString(`
Output strictly a JSON object:
{
  "sections": [
    {
      "id": "S1",
      "title": "Hook",
      "goal": "Grab attention...",
      "timeBudgetSec": 15,
      "wordBudget": 40,
      "keyPoints": ["..."],
      "bridgeToNext": "..."
    }
  ]
}

IMPORTANT:
`)
	writeSectionLine(&sb, "- Assign a specific 'wordBudget' to each section based on %d WPM.", budget.WPM)
	writeSectionLine(&sb, "- Ensure sum of wordBudget is roughly %d.", budget.TargetWords)
	writeSectionLine(&sb, "- MAX TOTAL WORDS: %d. Do NOT exceed this.", budget.MaxWords)
	writeSectionLine(&sb, "- Ensure sum of timeBudgetSec is exactly %d.", brief.TargetDurationSec)
	sb.WriteString("\nDo not use markdown backticks. Return RAW JSON.\n")

	return sb.String()
}
