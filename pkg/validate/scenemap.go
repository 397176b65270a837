// Package validate は、生成済み成果物をポリシーに照らして検査する純関数群です。
// 検査は成果物を書き換えず、pass / warn / fail の指摘のみを返します。
package validate

import (
	"fmt"

	"github.com/shouni/go-video-kit/pkg/domain"
)

// sceneMapToleranceSec はシーンマップ終端と目標尺の許容誤差（秒）です。
const sceneMapToleranceSec = 1

// SceneMapDuration はシーンマップが目標尺を満たすかを検査します。
// 空のマップ、および終端セグメントの endSec が目標から 1 秒を超えて
// ずれている場合は fail です。
func SceneMapDuration(segments []domain.SceneSegment, targetDurationSec int) domain.ValidationResult {
	if len(segments) == 0 {
		return domain.ValidationResult{
			Status: "fail",
			Issues: []domain.ValidationIssue{{Type: domain.IssueFail, Message: "Scene map is empty"}},
		}
	}

	last := segments[len(segments)-1]
	diff := last.EndSec - targetDurationSec
	if diff < 0 {
		diff = -diff
	}
	if diff > sceneMapToleranceSec {
		return domain.ValidationResult{
			Status: "fail",
			Issues: []domain.ValidationIssue{{
				Type:    domain.IssueFail,
				Message: fmt.Sprintf("Scene map duration mismatch. Ends at %ds, expected %ds.", last.EndSec, targetDurationSec),
			}},
		}
	}

	return domain.ValidationResult{Status: "ok", Issues: []domain.ValidationIssue{}}
}
