package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// defaultMaxAttempts は生成ステージごとの試行回数上限です（初回 + リトライ2回）。
const defaultMaxAttempts = 3

// withRetry は操作を有限回リトライする明示的なコンビネータです。
// 一時的障害も不正形応答も同じ扱いでリトライし、使い切ったら最後の
// エラーにステージ名と試行回数を添えてエスカレートします。
func withRetry[T any](ctx context.Context, stage string, maxAttempts int, backoff time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt < maxAttempts {
			slog.WarnContext(ctx, "ステージが失敗したためリトライするのだ",
				"stage", stage,
				"attempt", attempt,
				"remaining", maxAttempts-attempt,
				"error", err,
			)
			if backoff > 0 {
				select {
				case <-time.After(backoff):
				case <-ctx.Done():
					return zero, ctx.Err()
				}
			}
		}
	}

	return zero, fmt.Errorf("ステージ %s が %d 回の試行すべてで失敗しました: %w", stage, maxAttempts, lastErr)
}
