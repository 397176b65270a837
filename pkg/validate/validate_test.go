package validate

import (
	"strings"
	"testing"

	"github.com/shouni/go-video-kit/pkg/domain"
)

func TestSceneMapDuration(t *testing.T) {
	segments := []domain.SceneSegment{
		{ID: "SEG_001", StartSec: 0, EndSec: 30},
		{ID: "SEG_002", StartSec: 30, EndSec: 60},
	}

	t.Run("終端が目標尺と一致すればokになること", func(t *testing.T) {
		result := SceneMapDuration(segments, 60)
		if result.Status != "ok" {
			t.Errorf("期待値 ok, 実際の値 %s", result.Status)
		}
		if len(result.Issues) != 0 {
			t.Errorf("指摘は0件のはずです: %+v", result.Issues)
		}
	})

	t.Run("1秒の誤差までは許容されること", func(t *testing.T) {
		if result := SceneMapDuration(segments, 61); result.Status != "ok" {
			t.Errorf("期待値 ok, 実際の値 %s", result.Status)
		}
		if result := SceneMapDuration(segments, 59); result.Status != "ok" {
			t.Errorf("期待値 ok, 実際の値 %s", result.Status)
		}
	})

	t.Run("2秒以上のずれはfailになること", func(t *testing.T) {
		result := SceneMapDuration(segments, 65)
		if result.Status != "fail" {
			t.Fatalf("期待値 fail, 実際の値 %s", result.Status)
		}
		if !strings.Contains(result.Issues[0].Message, "Ends at 60s, expected 65s") {
			t.Errorf("予期しないメッセージ: %q", result.Issues[0].Message)
		}
	})

	t.Run("空のシーンマップはfailになること", func(t *testing.T) {
		result := SceneMapDuration(nil, 60)
		if result.Status != "fail" {
			t.Fatalf("期待値 fail, 実際の値 %s", result.Status)
		}
		if result.Issues[0].Message != "Scene map is empty" {
			t.Errorf("予期しないメッセージ: %q", result.Issues[0].Message)
		}
	})
}

func TestScript(t *testing.T) {
	profile := domain.VoiceProfile{
		BannedPhrases: []string{"In this video"},
		BannedCliches: []string{"Hidden gem"},
	}

	t.Run("問題のない台本はokになること", func(t *testing.T) {
		blocks := []domain.ScriptBlock{
			{SectionID: "s1", Text: "A merchant crosses the desert before dawn."},
		}
		result := Script(blocks, profile, "en")
		if result.Status != "ok" {
			t.Errorf("期待値 ok, 実際の値 %s: %+v", result.Status, result.Issues)
		}
	})

	t.Run("禁止フレーズはwarnになること", func(t *testing.T) {
		blocks := []domain.ScriptBlock{
			{SectionID: "s1", Text: "in this video we explore the route."},
		}
		result := Script(blocks, profile, "en")
		if result.Status != "warn" {
			t.Fatalf("期待値 warn, 実際の値 %s", result.Status)
		}
	})

	t.Run("スペイン語指定なのに英語が混入したらfailになること", func(t *testing.T) {
		blocks := []domain.ScriptBlock{
			{SectionID: "s1", Text: "We follow the caravan and the stars with this old map."},
		}
		result := Script(blocks, profile, "es")
		if result.Status != "fail" {
			t.Fatalf("期待値 fail, 実際の値 %s: %+v", result.Status, result.Issues)
		}
	})

	t.Run("英語マーカーが2種類以下なら言語failにはならないこと", func(t *testing.T) {
		blocks := []domain.ScriptBlock{
			{SectionID: "s1", Text: "La caravana cruza el desierto antes del amanecer."},
		}
		result := Script(blocks, profile, "es")
		if result.Status == "fail" {
			t.Errorf("誤検出です: %+v", result.Issues)
		}
	})
}

func TestPromptCard(t *testing.T) {
	base := domain.PromptCard{
		SegmentID:           "SEG_001",
		FinalPositivePrompt: "Wide shot of a desert caravan at dawn, warm palette, clean background with copy space at the bottom",
		FinalNegativePrompt: "text, watermark",
		NoTextRule:          true,
	}

	t.Run("健全なカードはpassedになること", func(t *testing.T) {
		card := PromptCard(base, true)
		if card.QAStatus != domain.QAStatusPassed {
			t.Errorf("期待値 passed, 実際の値 %s: %+v", card.QAStatus, card.QAIssues)
		}
	})

	t.Run("noTextRule有効時にロゴ語彙があればwarningになること", func(t *testing.T) {
		card := base
		card.FinalPositivePrompt = "A storefront with a big glowing logo, clean background at the bottom"
		card = PromptCard(card, true)

		if card.QAStatus != domain.QAStatusWarning {
			t.Fatalf("期待値 warning, 実際の値 %s", card.QAStatus)
		}
		if len(card.QAIssues) == 0 || !strings.Contains(card.QAIssues[0], "logo") {
			t.Errorf("logo の指摘がありません: %+v", card.QAIssues)
		}
	})

	t.Run("短すぎるプロンプトはwarningになること", func(t *testing.T) {
		card := base
		card.FinalPositivePrompt = "desert"
		card = PromptCard(card, false)

		if card.QAStatus != domain.QAStatusWarning {
			t.Errorf("期待値 warning, 実際の値 %s", card.QAStatus)
		}
	})

	t.Run("宣言済みグローバルロックの欠落を検出すること", func(t *testing.T) {
		card := base
		card.GlobalLocks = []string{"warm palette", "neon skyline"}
		card = PromptCard(card, false)

		if card.QAStatus != domain.QAStatusWarning {
			t.Fatalf("期待値 warning, 実際の値 %s", card.QAStatus)
		}
		found := false
		for _, issue := range card.QAIssues {
			if strings.Contains(issue, "neon skyline") {
				found = true
			}
			if strings.Contains(issue, "warm palette") {
				t.Errorf("存在するロックが欠落扱いです: %q", issue)
			}
		}
		if !found {
			t.Errorf("neon skyline の欠落が報告されていません: %+v", card.QAIssues)
		}
	})

	t.Run("字幕有効時にセーフエリアへの言及がないとwarningになること", func(t *testing.T) {
		card := base
		card.FinalPositivePrompt = "Close-up of an astrolabe resting on silk fabric"
		card = PromptCard(card, true)

		if card.QAStatus != domain.QAStatusWarning {
			t.Errorf("期待値 warning, 実際の値 %s: %+v", card.QAStatus, card.QAIssues)
		}
	})

	t.Run("検査はプロンプト本文を書き換えないこと", func(t *testing.T) {
		card := base
		card.FinalPositivePrompt = "A storefront with a big glowing logo somewhere near the bottom"
		checked := PromptCard(card, false)

		if checked.FinalPositivePrompt != card.FinalPositivePrompt {
			t.Error("プロンプト本文が書き換えられています")
		}
	})
}
