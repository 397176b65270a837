// Package blueprint は動画の構成戦略（Blueprint）の静的レジストリと、
// 目標尺から語数・時間配分を導く Budget 計算を提供します。
package blueprint

import (
	"math"

	"github.com/shouni/go-video-kit/pkg/domain"
)

// PacingFunc は目標尺（秒）とパラメータから部分的な時間配分を返す純関数です。
type PacingFunc func(durationSec int, params *domain.BlueprintParams) domain.Pacing

// Blueprint は名前付きの物語・ペース配分戦略です。静的な設定であり、
// Lookup で型名から引きます。
type Blueprint struct {
	Type              domain.BlueprintType
	Description       string
	StructureStrategy string
	Pacing            PacingFunc
	Validators        []string
	VoiceProfile      domain.VoiceProfile
}

// DefaultTopCount はランキング形式の既定アイテム数です。
const DefaultTopCount = 5

var narrativeBlueprint = Blueprint{
	Type:              domain.BlueprintNarrative,
	Description:       "Classic storytelling structure with a clear beginning, middle, and end.",
	StructureStrategy: "Hook -> Introduction -> Rising Action -> Climax -> Falling Action -> Resolution.",
	Pacing: func(durationSec int, _ *domain.BlueprintParams) domain.Pacing {
		// Hook 10% / Body 65% (導入+本編) / Close 25% (クライマックス+結末)
		return domain.Pacing{
			HookSec:  roundPct(durationSec, 0.10),
			BodySec:  roundPct(durationSec, 0.65),
			CloseSec: roundPct(durationSec, 0.25),
		}
	},
	Validators: []string{"timelineCheck", "causalityCheck"},
	VoiceProfile: domain.VoiceProfile{
		Tone:     "emotive",
		Audience: "general",
		StyleRules: []string{
			"Use short, punchy sentences.",
			"Start with a strong hook/question.",
			"Show, don't just tell.",
			"Avoid meta-references ('this video...').",
		},
		BannedPhrases: []string{
			"This video captures...",
			"Our story begins...",
			"Who is he?",
			"The power of friendship",
			"He accomplished his mission",
			"In this video",
			"Let's dive in",
		},
		BannedCliches: []string{"Unleash the power", "Hidden gem", "Game changer"},
		CTAPolicy:     "Subtle at end only",
	},
}

var topBlueprint = Blueprint{
	Type:              domain.BlueprintTop,
	Description:       "Ranked list format (Top 10, Top 5).",
	StructureStrategy: "Hook -> Criteria Explanation -> Items (N to 1) -> Conclusion.",
	Pacing: func(durationSec int, params *domain.BlueprintParams) domain.Pacing {
		hook := min(30, roundPct(durationSec, 0.15))
		close := min(30, roundPct(durationSec, 0.10))
		available := durationSec - hook - close

		count := DefaultTopCount
		if params != nil && params.TopCount > 0 {
			count = params.TopCount
		}

		return domain.Pacing{
			HookSec:    hook,
			BodySec:    available,
			CloseSec:   close,
			SecPerItem: available / count,
		}
	},
	Validators: []string{"rankCoverage", "orderCheck"},
	VoiceProfile: domain.VoiceProfile{
		Tone:     "exciting",
		Audience: "general",
		StyleRules: []string{
			"Fast-paced delivery.",
			"Focus on key differentiators.",
			"Direct address to viewer.",
		},
		BannedPhrases: []string{
			"Without further ado",
			"Let's get started",
			"Make sure to subscribe",
		},
		BannedCliches: []string{"Best of the best", "Ultimate guide"},
		CTAPolicy:     "Quick reminder in middle, strong at end",
	},
}

// registry は専用戦略を持つ型のみを列挙します。ここに無い型は
// Lookup がナラティブへ明示的にフォールバックします。
var registry = map[domain.BlueprintType]Blueprint{
	domain.BlueprintNarrative: narrativeBlueprint,
	domain.BlueprintTop:       topBlueprint,
}

// Lookup は型名から Blueprint を引きます。未知の型や専用戦略を持たない型
// （informative / tutorial / review / shorts を含む）は失敗させず、
// ナラティブにフォールバックします。未知のフォーマットで実行全体を
// 中断しないための意図的な寛容さなのだ。
func Lookup(t domain.BlueprintType) Blueprint {
	if bp, ok := registry[t]; ok {
		return bp
	}
	return narrativeBlueprint
}

func roundPct(duration int, pct float64) int {
	return int(math.Round(float64(duration) * pct))
}
