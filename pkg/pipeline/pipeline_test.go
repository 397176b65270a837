package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shouni/go-video-kit/pkg/domain"
)

// fakeGenerator は決められた応答を呼び出し順に返すテスト用バックエンドです。
type fakeGenerator struct {
	responses []string
	calls     int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if f.calls >= len(f.responses) {
		return "", fmt.Errorf("想定外の呼び出しです (call=%d)", f.calls)
	}
	resp := f.responses[f.calls]
	f.calls++
	return resp, nil
}

func fullRunResponses() []string {
	return []string{
		// 1. アウトライン
		`{"sections":[
			{"id":"s1","title":"Hook","goal":"Grab attention","timeBudgetSec":30,"wordBudget":65},
			{"id":"s2","title":"Close","goal":"Wrap up","timeBudgetSec":30,"wordBudget":65}
		]}`,
		// 2. エンティティロック
		`[{"name":"Marco","type":"character","description":"A merchant in a red cloak"}]`,
		// 3-4. 台本（セクションごと）
		`Marco crosses the dunes before sunrise.`,
		`He reaches the gates as bells ring.`,
		// 5. ポリッシュ（s1 のみ書き直し）
		`{"voiceStyleInstructions":"Warm and steady","polishedBlocks":[
			{"id":"s1","text":"Marco crosses the cold dunes before sunrise."}
		]}`,
		// 6. シーンマップ
		`[
			{"id":"SEG_001","sectionId":"s1","startSec":0,"endSec":30,"narration":"Marco crosses the dunes","visualIntent":"desert dunes","shotType":"broll","continuityTags":["Marco"]},
			{"id":"SEG_002","sectionId":"s2","startSec":30,"endSec":60,"narration":"Bells ring at the gates","visualIntent":"city gates","shotType":"broll"}
		]`,
		// 7. スタイルバイブル（continuityBible はロックで上書きされるべき内容）
		`{"palette":["amber"],"lighting":"golden hour","camera":"35mm","negativePrompt":"text, watermark","promptTemplate":"[subject] + [style]","globalLocks":["warm palette"],"continuityBible":{"Marco":"a wrong stale description"}}`,
		// 8. プロンプトカード
		`[
			{"segmentId":"SEG_001","finalPositivePrompt":"Wide shot of a merchant in a red cloak crossing amber dunes, golden hour, copy space at the bottom","finalNegativePrompt":"text, watermark","noTextRule":false},
			{"segmentId":"SEG_002","finalPositivePrompt":"A caravan arriving at tall city gates at dusk, warm light, clean background at the bottom","finalNegativePrompt":"text, watermark","noTextRule":false}
		]`,
	}
}

func testBrief() domain.ProjectBrief {
	return domain.ProjectBrief{
		Title:             "The Silk Road",
		Goal:              "Explain how the Silk Road shaped trade",
		Format:            "16:9",
		TargetDurationSec: 60,
		Blueprint:         domain.BlueprintNarrative,
		VisualStyle:       "cinematic",
		Languages:         []string{"en"},
	}
}

func TestNewPipeline(t *testing.T) {
	t.Run("バックエンド未設定は構築時に失敗すること", func(t *testing.T) {
		_, err := NewPipeline(nil, nil, "")
		if !errors.Is(err, ErrNoClient) {
			t.Errorf("期待値 ErrNoClient, 実際の値 %v", err)
		}
	})
}

func TestPipeline_RunFullProject(t *testing.T) {
	gen := &fakeGenerator{responses: fullRunResponses()}
	p, err := NewPipeline(gen, nil, "")
	if err != nil {
		t.Fatalf("パイプラインの構築に失敗しました: %v", err)
	}

	pkg, err := p.RunFullProject(context.Background(), testBrief())
	if err != nil {
		t.Fatalf("実行に失敗しました: %v", err)
	}

	t.Run("全ステージが1回ずつ呼ばれること", func(t *testing.T) {
		if gen.calls != 8 {
			t.Errorf("期待値 8回, 実際の値 %d回", gen.calls)
		}
	})

	t.Run("実行IDと版が付与されること", func(t *testing.T) {
		if !strings.HasPrefix(pkg.RunID, "run_") {
			t.Errorf("予期しない実行ID: %q", pkg.RunID)
		}
		if pkg.Version != "draft-1" {
			t.Errorf("期待値 draft-1, 実際の値 %q", pkg.Version)
		}
	})

	t.Run("ポリッシュ済みブロックだけがversion2になること", func(t *testing.T) {
		if len(pkg.ScriptBlocks) != 2 {
			t.Fatalf("期待値 2ブロック, 実際の値 %d", len(pkg.ScriptBlocks))
		}
		first := pkg.ScriptBlocks[0]
		if first.Version != 2 || !strings.Contains(first.Text, "cold dunes") {
			t.Errorf("s1 が書き直されていません: %+v", first)
		}
		second := pkg.ScriptBlocks[1]
		if second.Version != 1 {
			t.Errorf("s2 は初稿のままのはずです: %+v", second)
		}
	})

	t.Run("書き直し後に語数が再計算されること", func(t *testing.T) {
		first := pkg.ScriptBlocks[0]
		if first.WordCount != 7 { // "Marco crosses the cold dunes before sunrise."
			t.Errorf("期待値 7, 実際の値 %d", first.WordCount)
		}
	})

	t.Run("声質指示が引き継がれること", func(t *testing.T) {
		if pkg.VoiceStyleInstructions != "Warm and steady" {
			t.Errorf("予期しない値: %q", pkg.VoiceStyleInstructions)
		}
	})

	t.Run("continuityBibleがエンティティロックで上書きされること", func(t *testing.T) {
		got := pkg.StyleBible.ContinuityBible["Marco"]
		if got != "A merchant in a red cloak" {
			t.Errorf("期待値 ロック済み記述, 実際の値 %q", got)
		}
	})

	t.Run("健全な実行の検査結果がokになること", func(t *testing.T) {
		if pkg.Validation.Status != "ok" {
			t.Errorf("期待値 ok, 実際の値 %s: %+v", pkg.Validation.Status, pkg.Validation.Issues)
		}
	})

	t.Run("全カードがQAを通過すること", func(t *testing.T) {
		for _, card := range pkg.PromptCards {
			if card.QAStatus != domain.QAStatusPassed {
				t.Errorf("%s: 期待値 passed, 実際の値 %s: %+v", card.SegmentID, card.QAStatus, card.QAIssues)
			}
		}
	})

	t.Run("後段ステージ用のURLフィールドは空のままであること", func(t *testing.T) {
		for _, seg := range pkg.SceneMap {
			if seg.ImageURL != "" || seg.AudioURL != "" {
				t.Errorf("%s: URL が書き込まれています", seg.ID)
			}
		}
		if pkg.FullAudioURL != "" {
			t.Error("fullAudioUrl が書き込まれています")
		}
	})
}

func TestMergeValidation(t *testing.T) {
	t.Run("warnのみの指摘ではステータスがokのままであること", func(t *testing.T) {
		script := domain.ValidationResult{
			Status: "warn",
			Issues: []domain.ValidationIssue{
				{Type: domain.IssueWarn, Where: "s1", Message: "Banned phrase detected."},
			},
		}
		scene := domain.ValidationResult{Status: "ok"}
		cards := []domain.PromptCard{
			{SegmentID: "SEG_001", QAStatus: domain.QAStatusWarning, QAIssues: []string{"Prompt too short."}},
		}

		got := mergeValidation(script, scene, cards)
		if got.Status != "ok" {
			t.Errorf("期待値 ok, 実際の値 %s", got.Status)
		}
		if len(got.Issues) != 2 {
			t.Errorf("期待値 2件の指摘, 実際の値 %d件", len(got.Issues))
		}
	})

	t.Run("台本検査のfailが集約結果に伝播すること", func(t *testing.T) {
		script := domain.ValidationResult{
			Status: "fail",
			Issues: []domain.ValidationIssue{
				{Type: domain.IssueFail, Where: "s1", Message: "Detected English text in Spanish script."},
			},
		}
		got := mergeValidation(script, domain.ValidationResult{Status: "ok"}, nil)
		if got.Status != "fail" {
			t.Errorf("期待値 fail, 実際の値 %s", got.Status)
		}
	})

	t.Run("シーンマップ検査のfailが集約結果に伝播すること", func(t *testing.T) {
		scene := domain.ValidationResult{
			Status: "fail",
			Issues: []domain.ValidationIssue{
				{Type: domain.IssueFail, Where: "scene_map", Message: "Scene map is empty."},
			},
		}
		got := mergeValidation(domain.ValidationResult{Status: "ok"}, scene, nil)
		if got.Status != "fail" {
			t.Errorf("期待値 fail, 実際の値 %s", got.Status)
		}
	})
}

func TestPipeline_RunFullProject_EmptyOutline(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{"sections":[]}`}}
	p, err := NewPipeline(gen, nil, "")
	if err != nil {
		t.Fatalf("パイプラインの構築に失敗しました: %v", err)
	}

	_, err = p.RunFullProject(context.Background(), testBrief())
	if err == nil {
		t.Fatal("空のアウトラインでエラーが発生しませんでした")
	}
}

func TestWithRetry(t *testing.T) {
	t.Run("一時的な失敗をリトライして回復すること", func(t *testing.T) {
		attempts := 0
		got, err := withRetry(context.Background(), "test", 3, 0,
			func(ctx context.Context) (string, error) {
				attempts++
				if attempts < 3 {
					return "", ErrEmptyResponse
				}
				return "ok", nil
			})
		if err != nil {
			t.Fatalf("回復できませんでした: %v", err)
		}
		if got != "ok" || attempts != 3 {
			t.Errorf("期待値 ok/3回, 実際の値 %q/%d回", got, attempts)
		}
	})

	t.Run("試行を使い切ったら最後のエラーを包んで返すこと", func(t *testing.T) {
		_, err := withRetry(context.Background(), "test", 2, 0,
			func(ctx context.Context) (int, error) {
				return 0, ErrEmptyResponse
			})
		if !errors.Is(err, ErrEmptyResponse) {
			t.Errorf("元のエラーが包まれていません: %v", err)
		}
	})

	t.Run("キャンセル済みコンテキストではバックオフ中に中断すること", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := withRetry(ctx, "test", 3, time.Minute,
			func(ctx context.Context) (int, error) {
				return 0, ErrEmptyResponse
			})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("期待値 context.Canceled, 実際の値 %v", err)
		}
	})
}
