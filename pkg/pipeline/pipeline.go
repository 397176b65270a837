// Package pipeline は、企画ブリーフから最終パッケージまでを一直線に
// 生成するオーケストレータです。各ステージは「プロンプト構築 → 生成 →
// 解析 → 検査」の同じ形を繰り返し、途中成果物はすべて実行ログに残ります。
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/go-video-kit/pkg/audit"
	"github.com/shouni/go-video-kit/pkg/blueprint"
	"github.com/shouni/go-video-kit/pkg/domain"
	"github.com/shouni/go-video-kit/pkg/prompts"
	"github.com/shouni/go-video-kit/pkg/validate"
)

// defaultBackoff はリトライ間の待機時間です。
const defaultBackoff = 2 * time.Second

// packageVersion は本文パイプラインが出力するパッケージの版名です。
// Visuals / Audio ステージはこの版をそのまま引き継ぎます。
const packageVersion = "draft-1"

// Pipeline は本文パイプライン（ブリーフ → 最終パッケージ）の実行器です。
type Pipeline struct {
	gen        Generator
	logWriter  remoteio.OutputWriter
	logBaseDir string
	wpm        int
}

// NewPipeline はオーケストレータを構築します。logWriter は nil でもよく、
// その場合は実行ログを残さずに動作します。
func NewPipeline(gen Generator, logWriter remoteio.OutputWriter, logBaseDir string) (*Pipeline, error) {
	if gen == nil {
		return nil, ErrNoClient
	}
	return &Pipeline{
		gen:        gen,
		logWriter:  logWriter,
		logBaseDir: logBaseDir,
		wpm:        blueprint.DefaultWPM,
	}, nil
}

// RunFullProject はブリーフを受け取り、台本・シーンマップ・スタイルバイブル・
// プロンプトカードまで揃った ProjectPackage を返します。
//
// ステージ順序は固定で、後段は前段の成果物のみに依存します。
// 生成を伴うステージはそれぞれ最大3回まで試行し、使い切ったら
// 実行全体をエラーで打ち切ります。
func (p *Pipeline) RunFullProject(ctx context.Context, brief domain.ProjectBrief) (*domain.ProjectPackage, error) {
	runID := "run_" + uuid.New().String()
	logger := audit.NewRunLogger(p.logWriter, p.logBaseDir, runID)

	slog.InfoContext(ctx, "パイプライン実行を開始するのだ",
		"run_id", runID,
		"title", brief.Title,
		"blueprint", brief.Blueprint,
		"duration_sec", brief.TargetDurationSec,
	)
	logger.Log(ctx, "00_brief", brief)

	// --- 予算化（決定的、生成なし） ---
	bp := blueprint.Lookup(brief.Blueprint)
	budget := blueprint.ComputeBudget(brief.TargetDurationSec, p.wpm, bp, brief.BlueprintParams)
	logger.Log(ctx, "00_budgets", budget)

	// --- アウトライン ---
	outline, err := p.runOutline(ctx, logger, brief, budget, bp)
	if err != nil {
		return nil, err
	}

	// --- エンティティロック ---
	entities, err := p.runEntitiesLock(ctx, logger, brief, outline)
	if err != nil {
		return nil, err
	}

	// --- 台本（逐次、メモリ畳み込み） ---
	blocks, err := p.runScriptDrafting(ctx, logger, brief, outline, bp.VoiceProfile, entities)
	if err != nil {
		return nil, err
	}

	// --- ポリッシュ ---
	blocks, voiceStyle, err := p.runPolish(ctx, logger, brief, blocks, bp.VoiceProfile)
	if err != nil {
		return nil, err
	}

	scriptResult := validate.Script(blocks, bp.VoiceProfile, brief.PrimaryLanguage())

	// --- シーンマップ ---
	sceneMap, sceneResult, err := p.runSceneMap(ctx, logger, brief, blocks)
	if err != nil {
		return nil, err
	}

	// --- スタイルバイブル ---
	bible, err := p.runStyleBible(ctx, logger, brief, entities)
	if err != nil {
		return nil, err
	}

	// --- プロンプトカード + QA ---
	cards, err := p.runPromptCards(ctx, logger, brief, sceneMap, bible)
	if err != nil {
		return nil, err
	}

	pkg := &domain.ProjectPackage{
		RunID:                  runID,
		Version:                packageVersion,
		Brief:                  &brief,
		Blueprint:              brief.Blueprint,
		Budgets:                budget,
		Outline:                outline,
		ScriptBlocks:           blocks,
		SceneMap:               sceneMap,
		StyleBible:             bible,
		PromptCards:            cards,
		EntitiesLock:           entities,
		VoiceStyleInstructions: voiceStyle,
		Validation:             mergeValidation(scriptResult, sceneResult, cards),
	}

	logger.Log(ctx, "07_final_package", pkg)
	slog.InfoContext(ctx, "パイプライン実行が完了したのだ",
		"run_id", runID,
		"sections", len(outline.Sections),
		"segments", len(sceneMap),
		"validation", pkg.Validation.Status,
	)
	return pkg, nil
}

func (p *Pipeline) runOutline(ctx context.Context, logger *audit.RunLogger, brief domain.ProjectBrief, budget domain.Budget, bp blueprint.Blueprint) (domain.Outline, error) {
	prompt := prompts.BuildOutlinePrompt(brief, budget, bp)

	outline, err := withRetry(ctx, "outline", defaultMaxAttempts, defaultBackoff,
		func(ctx context.Context) (domain.Outline, error) {
			return generateJSON[domain.Outline](ctx, p.gen, prompt)
		})
	if err != nil {
		return domain.Outline{}, fmt.Errorf("アウトライン生成に失敗しました: %w", err)
	}
	if len(outline.Sections) == 0 {
		return domain.Outline{}, fmt.Errorf("アウトライン生成に失敗しました: セクションが1つもありません")
	}

	logger.Log(ctx, "01_outline", audit.StagePayload{Prompt: prompt, Output: outline})
	return outline, nil
}

func (p *Pipeline) runEntitiesLock(ctx context.Context, logger *audit.RunLogger, brief domain.ProjectBrief, outline domain.Outline) ([]domain.ScriptEntity, error) {
	prompt := prompts.BuildEntitiesPrompt(brief, outline.Sections)

	entities, err := withRetry(ctx, "entities_lock", defaultMaxAttempts, defaultBackoff,
		func(ctx context.Context) ([]domain.ScriptEntity, error) {
			return generateJSON[[]domain.ScriptEntity](ctx, p.gen, prompt)
		})
	if err != nil {
		return nil, fmt.Errorf("エンティティロック生成に失敗しました: %w", err)
	}

	logger.Log(ctx, "02_entities_lock", audit.StagePayload{Prompt: prompt, Output: entities})
	return entities, nil
}

// runScriptDrafting はアウトラインのセクションを順番に台本化します。
// 並列化しないのは意図的で、各セクションは直前までの累積メモリに
// 依存するためです。
func (p *Pipeline) runScriptDrafting(ctx context.Context, logger *audit.RunLogger, brief domain.ProjectBrief, outline domain.Outline, profile domain.VoiceProfile, entities []domain.ScriptEntity) ([]domain.ScriptBlock, error) {
	memory := domain.NewScriptMemory(brief, outline, profile, entities)
	blocks := make([]domain.ScriptBlock, 0, len(outline.Sections))

	for i, section := range outline.Sections {
		prompt := prompts.BuildScriptSectionPrompt(brief, section, memory)

		text, err := withRetry(ctx, "script_"+section.ID, defaultMaxAttempts, defaultBackoff,
			func(ctx context.Context) (string, error) {
				return p.gen.Generate(ctx, prompt)
			})
		if err != nil {
			return nil, fmt.Errorf("セクション %s の台本生成に失敗しました: %w", section.ID, err)
		}

		wordCount := domain.CountWords(text)
		blocks = append(blocks, domain.ScriptBlock{
			SectionID:    section.ID,
			Text:         text,
			WordCount:    wordCount,
			EstimatedSec: domain.EstimateSeconds(wordCount, p.wpm),
			Version:      1,
		})

		memory = memory.Advance(section.Title, text)
		logger.Log(ctx, fmt.Sprintf("03_script_%02d_%s", i+1, section.ID),
			audit.StagePayload{Prompt: prompt, Output: blocks[len(blocks)-1]})
	}

	return blocks, nil
}

// runPolish は全ブロックを一括で書き直します。応答に含まれなかった
// ブロックは初稿のまま残し、書き直されたブロックだけを version 2 に
// 繰り上げて語数と推定秒数を再計算します。
func (p *Pipeline) runPolish(ctx context.Context, logger *audit.RunLogger, brief domain.ProjectBrief, blocks []domain.ScriptBlock, profile domain.VoiceProfile) ([]domain.ScriptBlock, string, error) {
	prompt := prompts.BuildPolishPrompt(blocks, profile, brief.PrimaryLanguage())

	result, err := withRetry(ctx, "polish", defaultMaxAttempts, defaultBackoff,
		func(ctx context.Context) (prompts.PolishResult, error) {
			return generateJSON[prompts.PolishResult](ctx, p.gen, prompt)
		})
	if err != nil {
		return nil, "", fmt.Errorf("ポリッシュに失敗しました: %w", err)
	}

	polished := make(map[string]string, len(result.PolishedBlocks))
	for _, pb := range result.PolishedBlocks {
		polished[pb.ID] = pb.Text
	}

	for i, block := range blocks {
		text, ok := polished[block.SectionID]
		if !ok || text == "" {
			continue
		}
		wordCount := domain.CountWords(text)
		blocks[i].Text = text
		blocks[i].WordCount = wordCount
		blocks[i].EstimatedSec = domain.EstimateSeconds(wordCount, p.wpm)
		blocks[i].Version = 2
	}

	logger.Log(ctx, "04_polish", audit.StagePayload{Prompt: prompt, Output: result})
	return blocks, result.VoiceStyleInstructions, nil
}

// runSceneMap は台本を時間分割し、合計尺の整合を検査します。
// 検査の fail は実行を止めず、最終パッケージの validation に載せて
// 人間の判断に委ねます。
func (p *Pipeline) runSceneMap(ctx context.Context, logger *audit.RunLogger, brief domain.ProjectBrief, blocks []domain.ScriptBlock) ([]domain.SceneSegment, domain.ValidationResult, error) {
	prompt := prompts.BuildSceneMapPrompt(blocks, brief.TargetDurationSec)

	sceneMap, err := withRetry(ctx, "scene_map", defaultMaxAttempts, defaultBackoff,
		func(ctx context.Context) ([]domain.SceneSegment, error) {
			return generateJSON[[]domain.SceneSegment](ctx, p.gen, prompt)
		})
	if err != nil {
		return nil, domain.ValidationResult{}, fmt.Errorf("シーンマップ生成に失敗しました: %w", err)
	}

	result := validate.SceneMapDuration(sceneMap, brief.TargetDurationSec)
	if result.HasFail() {
		slog.WarnContext(ctx, "シーンマップの尺が目標と一致していないのだ",
			"segments", len(sceneMap), "target_sec", brief.TargetDurationSec)
	}

	logger.Log(ctx, "05_scene_map", audit.StagePayload{Prompt: prompt, Output: sceneMap})
	return sceneMap, result, nil
}

// runStyleBible は視覚の世界観契約を生成し、continuityBible を
// エンティティロックで上書きします。生成モデルが continuityBible に
// 何を書いたとしても、ロック済みの記述が常に勝ちます。
func (p *Pipeline) runStyleBible(ctx context.Context, logger *audit.RunLogger, brief domain.ProjectBrief, entities []domain.ScriptEntity) (domain.StyleBible, error) {
	prompt := prompts.BuildStyleBiblePrompt(brief)

	bible, err := withRetry(ctx, "style_bible", defaultMaxAttempts, defaultBackoff,
		func(ctx context.Context) (domain.StyleBible, error) {
			return generateJSON[domain.StyleBible](ctx, p.gen, prompt)
		})
	if err != nil {
		return domain.StyleBible{}, fmt.Errorf("スタイルバイブル生成に失敗しました: %w", err)
	}

	if entityMap := domain.BuildEntityMap(entities); len(entityMap) > 0 {
		bible.ContinuityBible = make(map[string]string, len(entityMap))
		for name, e := range entityMap {
			bible.ContinuityBible[name] = e.Description
		}
	}

	logger.Log(ctx, "06_style_bible", audit.StagePayload{Prompt: prompt, Output: bible})
	return bible, nil
}

func (p *Pipeline) runPromptCards(ctx context.Context, logger *audit.RunLogger, brief domain.ProjectBrief, sceneMap []domain.SceneSegment, bible domain.StyleBible) ([]domain.PromptCard, error) {
	prompt := prompts.BuildPromptCardsPrompt(sceneMap, bible, brief)

	cards, err := withRetry(ctx, "prompt_cards", defaultMaxAttempts, defaultBackoff,
		func(ctx context.Context) ([]domain.PromptCard, error) {
			return generateJSON[[]domain.PromptCard](ctx, p.gen, prompt)
		})
	if err != nil {
		return nil, fmt.Errorf("プロンプトカード生成に失敗しました: %w", err)
	}

	cards = validate.PromptCards(cards, brief.SubtitlesOn())
	logger.Log(ctx, "06_prompt_cards", audit.StagePayload{Prompt: prompt, Output: cards})
	return cards, nil
}

// mergeValidation は台本検査・シーンマップ検査・プロンプトQAを
// パッケージ全体の検査結果に集約します。集約ステータスは fail / ok の
// 二値で、fail は台本とシーンマップからのみ生じます。プロンプトQAの
// 指摘は warn の明細として折り込まれますが、ステータスは変えません。
func mergeValidation(script, scene domain.ValidationResult, cards []domain.PromptCard) domain.ValidationResult {
	issues := make([]domain.ValidationIssue, 0, len(script.Issues)+len(scene.Issues))
	issues = append(issues, script.Issues...)
	issues = append(issues, scene.Issues...)

	for _, card := range cards {
		for _, msg := range card.QAIssues {
			issues = append(issues, domain.ValidationIssue{
				Type:    domain.IssueWarn,
				Where:   card.SegmentID,
				Message: "[Prompt] " + msg,
			})
		}
	}

	status := "ok"
	if script.HasFail() || scene.HasFail() {
		status = "fail"
	}

	return domain.ValidationResult{Status: status, Issues: issues}
}
