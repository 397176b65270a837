package pipeline

import "errors"

var (
	// ErrNoClient は生成バックエンドが設定されないまま構築されたことを表します。
	// どのステージも実行される前に、構築時点で失敗させます。
	ErrNoClient = errors.New("生成AIクライアントが設定されていません")

	// ErrEmptyResponse はバックエンドが空のテキストを返したことを表します。
	// 一時的障害として扱われ、リトライの対象になります。
	ErrEmptyResponse = errors.New("生成結果が空でした")
)
