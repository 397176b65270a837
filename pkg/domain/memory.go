package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// runningSummaryWindow は直近要約として保持する最大バイト数です。
	runningSummaryWindow = 1000
	// sectionExcerptLen は各セクションから要約に取り込む先頭バイト数です。
	sectionExcerptLen = 100
)

// ScriptMemory はセクション逐次生成の間だけ引き回される累積コンテキストです。
// 値型として扱い、Advance が新しい値を返すことで更新します。
// 台本ステージが終われば破棄されます。
type ScriptMemory struct {
	Thesis            string
	OutlineSummary    string
	RunningSummary    string
	Facts             []string
	BannedRepetitions []string
	TerminologyLock   []string
	Entities          []ScriptEntity
	StyleVoiceRules   []string
}

// NewScriptMemory は Brief・アウトライン・VoiceProfile・Entities Lock から
// 初期状態のメモリを組み立てます。
func NewScriptMemory(brief ProjectBrief, outline Outline, profile VoiceProfile, entities []ScriptEntity) ScriptMemory {
	summaries := make([]string, 0, len(outline.Sections))
	for _, s := range outline.Sections {
		summaries = append(summaries, fmt.Sprintf("%s: %s", s.Title, s.Goal))
	}

	banned := make([]string, 0, len(profile.BannedPhrases)+len(profile.BannedCliches))
	banned = append(banned, profile.BannedPhrases...)
	banned = append(banned, profile.BannedCliches...)

	rules := make([]string, 0, len(profile.StyleRules)+3)
	rules = append(rules, profile.StyleRules...)
	rules = append(rules,
		fmt.Sprintf("Tone: %s", profile.Tone),
		fmt.Sprintf("Audience: %s", profile.Audience),
		fmt.Sprintf("Language: %s (STRICT)", strings.Join(brief.Languages, ", ")),
	)

	return ScriptMemory{
		Thesis:            brief.Goal,
		OutlineSummary:    strings.Join(summaries, "; "),
		RunningSummary:    "Starting script generation.",
		BannedRepetitions: banned,
		Entities:          entities,
		StyleVoiceRules:   rules,
	}
}

// Advance は書き上がったセクションを要約に畳み込んだ新しいメモリを返します。
// 直近要約は末尾 1000 バイトの固定窓で切り詰めます。意味的な再要約ではなく
// 単純なスライディングウィンドウなのだ（コストとのトレードオフ）。
// 切り詰めはルーン境界に揃えるため、マルチバイト文字が壊れることはありません。
func (m ScriptMemory) Advance(sectionTitle, text string) ScriptMemory {
	excerpt := truncateToRuneBoundary(text, sectionExcerptLen)
	summary := m.RunningSummary + fmt.Sprintf("[Section %s: %s...] ", sectionTitle, excerpt)
	if len(summary) > runningSummaryWindow {
		start := len(summary) - runningSummaryWindow
		for start < len(summary) && !utf8.RuneStart(summary[start]) {
			start++
		}
		summary = summary[start:]
	}

	next := m
	next.RunningSummary = summary
	return next
}

// truncateToRuneBoundary は s を maxBytes 以内に切り詰めます。切断位置が
// マルチバイト文字の途中に当たる場合は直前のルーン境界まで戻します。
func truncateToRuneBoundary(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// CountWords は空白区切りの語数を返します。分かち書きをしない言語では
// 粗い近似にしかならないことは承知の上で、元の挙動を維持しています。
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// EstimateSeconds は語数と WPM から発話秒数を見積もります。
func EstimateSeconds(wordCount, wpm int) int {
	if wpm <= 0 {
		return 0
	}
	return int(float64(wordCount)/(float64(wpm)/60.0) + 0.5)
}
