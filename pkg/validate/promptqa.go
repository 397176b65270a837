package validate

import (
	"fmt"
	"strings"

	"github.com/shouni/go-video-kit/pkg/domain"
)

const (
	minPromptLength = 15
	maxPromptLength = 450
)

// textKeywords は noTextRule 有効時にポジティブプロンプトで禁止される語彙です。
var textKeywords = []string{
	"text", "typography", "letters", "words", "signage",
	"caption", "subtitle", "label", "logo",
}

// safeAreaKeywords は字幕用の余白・構図への言及とみなす語彙です。
var safeAreaKeywords = []string{
	"space", "copy space", "clean background", "bottom", "top", "thirds", "centered",
}

// PromptCard は1枚のプロンプトカードを検査し、ステータスと指摘を付けて返します。
// 検査はプロンプト本文を一切書き換えません（自動修正は行わない）。
func PromptCard(card domain.PromptCard, subtitlesEnabled bool) domain.PromptCard {
	issues := []string{}
	positiveLower := strings.ToLower(card.FinalPositivePrompt)

	// 1. noTextRule: ポジティブプロンプト内の文字・タイポグラフィ語彙
	if card.NoTextRule {
		var found []string
		for _, kw := range textKeywords {
			if strings.Contains(positiveLower, kw) {
				found = append(found, kw)
			}
		}
		if len(found) > 0 {
			issues = append(issues, fmt.Sprintf("Positive prompt contains text keywords: %s", strings.Join(found, ", ")))
			card.QAStatus = domain.QAStatusWarning
		}
	}

	// 2. 長さ検査
	if len(card.FinalPositivePrompt) < minPromptLength {
		issues = append(issues, fmt.Sprintf("Prompt too short (<%d chars)", minPromptLength))
		card.QAStatus = domain.QAStatusWarning
	}
	if len(card.FinalPositivePrompt) > maxPromptLength {
		issues = append(issues, fmt.Sprintf("Prompt too long (> %d chars)", maxPromptLength))
		card.QAStatus = domain.QAStatusWarning
	}

	// 3. グローバルロック: 宣言された全フレーズがプロンプトに現れること
	if len(card.GlobalLocks) > 0 {
		var missing []string
		for _, lock := range card.GlobalLocks {
			if !strings.Contains(positiveLower, strings.ToLower(lock)) {
				missing = append(missing, lock)
			}
		}
		if len(missing) > 0 {
			issues = append(issues, fmt.Sprintf("Missing global locks: %s", strings.Join(missing, ", ")))
			card.QAStatus = domain.QAStatusWarning
		}
	}

	// 4. 字幕セーフエリア（助言レベル）
	if subtitlesEnabled {
		combined := strings.ToLower(card.Composition + card.FinalPositivePrompt)
		hasSafeMention := false
		for _, kw := range safeAreaKeywords {
			if strings.Contains(combined, kw) {
				hasSafeMention = true
				break
			}
		}
		if !hasSafeMention {
			issues = append(issues, "No explicit safe area/composition strategy found for subtitles.")
			card.QAStatus = domain.QAStatusWarning
		}
	}

	card.QAIssues = issues
	if len(issues) == 0 {
		card.QAStatus = domain.QAStatusPassed
	}

	return card
}

// PromptCards は全カードを検査して返します。
func PromptCards(cards []domain.PromptCard, subtitlesEnabled bool) []domain.PromptCard {
	out := make([]domain.PromptCard, len(cards))
	for i, c := range cards {
		out[i] = PromptCard(c, subtitlesEnabled)
	}
	return out
}
