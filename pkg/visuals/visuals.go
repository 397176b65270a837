// Package visuals は、確定済みパッケージのプロンプトカードをもとに
// シーン画像を生成する任意の後段ステージです。本文パイプラインの
// 成果物には手を加えず、各セグメントの imageUrl だけを書き込みます。
package visuals

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"github.com/shouni/gemini-image-kit/pkg/generator"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/shouni/go-video-kit/pkg/domain"
)

// Renderer はシーン単位の画像生成を担います。
type Renderer struct {
	imageGen generator.ImageGenerator
	limiter  *rate.Limiter
}

// NewRenderer は Renderer を初期化します。limiter が nil の場合は
// レート制限なしで動作します。
func NewRenderer(imageGen generator.ImageGenerator, limiter *rate.Limiter) *Renderer {
	return &Renderer{imageGen: imageGen, limiter: limiter}
}

// RenderScenes はシーンマップの全セグメントについて画像を生成し、
// パッケージを直接更新します。
//
// 個々のセグメントの失敗は全体を止めず、警告ログを残して
// スキップされます。1枚も成功しなかった場合でもエラーにはならず、
// imageUrl が空のままのパッケージが返ります。
func (r *Renderer) RenderScenes(ctx context.Context, pkg *domain.ProjectPackage) error {
	if pkg == nil || len(pkg.SceneMap) == 0 {
		return fmt.Errorf("シーンマップが空のためビジュアル生成を実行できません")
	}

	cardsByID := make(map[string]domain.PromptCard, len(pkg.PromptCards))
	for _, card := range pkg.PromptCards {
		cardsByID[card.SegmentID] = card
	}

	anchor := buildConsistencyAnchor(pkg.StyleBible)
	entities := domain.BuildEntityMap(pkg.EntitiesLock)
	aspect := "16:9"
	if pkg.Brief != nil && pkg.Brief.Format != "" {
		aspect = pkg.Brief.Format
	}

	eg, egCtx := errgroup.WithContext(ctx)

	for i, segment := range pkg.SceneMap {
		i, segment := i, segment
		eg.Go(func() error {
			card, ok := cardsByID[segment.ID]
			if !ok {
				slog.WarnContext(egCtx, "プロンプトカードが見つからないためスキップするのだ", "segment_id", segment.ID)
				return nil
			}

			if r.limiter != nil {
				if err := r.limiter.Wait(egCtx); err != nil {
					return err
				}
			}

			seed := sceneSeed(segment, entities)
			logger := slog.With("segment_id", segment.ID, "shot_type", segment.ShotType)
			logger.Info("シーン画像の生成を開始")

			startTime := time.Now()
			resp, err := r.imageGen.GenerateMangaPanel(egCtx, imagedom.ImageGenerationRequest{
				Prompt:         anchor + card.FinalPositivePrompt,
				NegativePrompt: card.FinalNegativePrompt,
				Seed:           &seed,
				AspectRatio:    aspect,
			})
			if err != nil {
				// 1シーンの失敗で実行全体を道連れにしない
				logger.Warn("シーン画像の生成に失敗したのだ", "error", err)
				return nil
			}

			logger.Info("シーン画像の生成が完了", "duration", time.Since(startTime).Round(time.Millisecond))
			pkg.SceneMap[i].ImageURL = dataURI(resp)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("ビジュアル生成が中断されました: %w", err)
	}

	generated := 0
	for _, segment := range pkg.SceneMap {
		if segment.ImageURL != "" {
			generated++
		}
	}
	slog.InfoContext(ctx, "ビジュアル生成が完了したのだ",
		"generated", generated, "total", len(pkg.SceneMap))
	return nil
}

// buildConsistencyAnchor は全シーンの先頭に付与する一貫性の前置きを
// 組み立てます。スタイルバイブルの世界観をシーンごとのプロンプトより
// 前に置くことで、モデルの解釈ブレを抑えます。
func buildConsistencyAnchor(bible domain.StyleBible) string {
	var sb strings.Builder
	sb.WriteString("CONSISTENCY ANCHOR (apply to every scene):\n")
	if len(bible.Palette) > 0 {
		fmt.Fprintf(&sb, "- Palette: %s\n", strings.Join(bible.Palette, ", "))
	}
	if bible.Lighting != "" {
		fmt.Fprintf(&sb, "- Lighting: %s\n", bible.Lighting)
	}
	if bible.Camera != "" {
		fmt.Fprintf(&sb, "- Camera: %s\n", bible.Camera)
	}
	for _, lock := range bible.GlobalLocks {
		fmt.Fprintf(&sb, "- Lock: %s\n", lock)
	}
	sb.WriteString("\nSCENE PROMPT:\n")
	return sb.String()
}

// sceneSeed はセグメントの決定的なシードを導出します。継続性タグを
// 持つセグメントは同じタグで常に同じシードになり、登場物の見た目が
// シーンをまたいで揃います。タグがエンティティロックの名前と一致する
// 場合はロック側の正規表記でシードを引くため、大文字小文字の揺れが
// あっても同一エンティティは同一シードになります。
func sceneSeed(segment domain.SceneSegment, entities domain.EntityMap) int64 {
	if len(segment.ContinuityTags) > 0 {
		tag := segment.ContinuityTags[0]
		if e := entities.FindEntity(tag); e != nil {
			return domain.GetSeedFromName(e.Name)
		}
		return domain.GetSeedFromName(tag)
	}
	return domain.GetSeedFromName(segment.ID)
}

func dataURI(resp *imagedom.ImageResponse) string {
	mimeType := resp.MimeType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(resp.Data))
}
