package blueprint

import (
	"math"

	"github.com/shouni/go-video-kit/pkg/domain"
)

// DefaultWPM はナレーションの発話速度（words per minute）の既定値です。
// 150 から 130 に落としてあるのは、実際の聞き取りやすさを優先した調整です。
const DefaultWPM = 130

// ComputeBudget は目標尺と Blueprint の pacing 関数から Budget を導出する純関数です。
// 失敗モードはありません。同じ入力には常に同じ結果を返します。
func ComputeBudget(durationSec int, wpm int, bp Blueprint, params *domain.BlueprintParams) domain.Budget {
	pacing := bp.Pacing(durationSec, params)

	targetWords := int(math.Round(float64(durationSec) / 60.0 * float64(wpm)))

	return domain.Budget{
		WPM:         wpm,
		TargetWords: targetWords,
		MinWords:    int(math.Floor(float64(targetWords) * 0.9)),
		MaxWords:    int(math.Floor(float64(targetWords) * 1.1)),
		HookSec:     pacing.HookSec,
		BodySec:     pacing.BodySec,
		CloseSec:    pacing.CloseSec,
		SecPerItem:  pacing.SecPerItem,
	}
}
