package validate

import (
	"fmt"
	"strings"

	"github.com/shouni/go-video-kit/pkg/domain"
)

// englishIndicators はスペイン語台本に混入した英語を検出する簡易マーカーです。
var englishIndicators = []string{" the ", " and ", " with ", " this ", " video "}

// metaPhrases は声質に関わらず禁止されるメタ言及の定型句です。
var metaPhrases = []string{
	"this video", "this story", "in this section",
	"este video", "esta historia", "en este video",
}

// ScriptBlock は1ブロック分の台本を検査します。
// 言語ヒューリスティック違反は fail、禁止フレーズ・クリシェ・メタ言及は
// warn として報告します。
func ScriptBlock(block domain.ScriptBlock, profile domain.VoiceProfile, targetLang string) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	textLower := strings.ToLower(block.Text)

	// 1. 言語検査（ヒューリスティック）: 対象がスペイン語なのに英語の
	//    マーカー語が3種類以上見つかったら fail とする
	if strings.EqualFold(targetLang, "ES") {
		count := 0
		for _, w := range englishIndicators {
			if strings.Contains(textLower, w) {
				count++
			}
		}
		if count > 2 {
			issues = append(issues, domain.ValidationIssue{
				Type:    domain.IssueFail,
				Where:   block.SectionID,
				Message: "Detected English text in Spanish script.",
			})
		}
	}

	// 2. 禁止フレーズ・メタ言及検査（大文字小文字を無視した部分一致）
	banned := make([]string, 0, len(profile.BannedPhrases)+len(profile.BannedCliches)+len(metaPhrases))
	banned = append(banned, profile.BannedPhrases...)
	banned = append(banned, profile.BannedCliches...)
	banned = append(banned, metaPhrases...)

	for _, phrase := range banned {
		if strings.Contains(textLower, strings.ToLower(phrase)) {
			issues = append(issues, domain.ValidationIssue{
				Type:    domain.IssueWarn,
				Where:   block.SectionID,
				Message: fmt.Sprintf("Contains banned phrase: %q", phrase),
			})
		}
	}

	return issues
}

// Script は全ブロックを検査し、fail > warn > ok で集計します。
func Script(blocks []domain.ScriptBlock, profile domain.VoiceProfile, targetLang string) domain.ValidationResult {
	allIssues := []domain.ValidationIssue{}
	for _, block := range blocks {
		allIssues = append(allIssues, ScriptBlock(block, profile, targetLang)...)
	}

	status := "ok"
	for _, issue := range allIssues {
		if issue.Type == domain.IssueFail {
			status = "fail"
			break
		}
		if issue.Type == domain.IssueWarn {
			status = "warn"
		}
	}

	return domain.ValidationResult{Status: status, Issues: allIssues}
}
