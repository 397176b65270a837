// Package parser は、生成 AI の自由形式テキストから JSON 値を取り出すための
// 寛容な抽出・復元処理を提供します。
package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const snippetLen = 100

var (
	fenceRegex         = regexp.MustCompile("```(?:json)?")
	trailingCommaRegex = regexp.MustCompile(`,(\s*[\]}])$`)
)

// MalformedOutputError は、応答は得られたものの期待する JSON 形状に
// 変換できなかったことを表します。リトライ判断のために診断用の抜粋を保持します。
type MalformedOutputError struct {
	Err     error
	Snippet string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("AI応答のJSON解析に失敗しました (応答抜粋: %q): %v", e.Snippet, e.Err)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

// ExtractJSON は、前後に説明文や Markdown フェンスが付いたテキストから
// JSON 値（オブジェクトまたは配列）の部分文字列を切り出します。
//
// 最初に現れる '{' と '[' のうち早い方で値の種類を判定し、対応する
// 末尾の閉じ括弧までをスライスします。括弧が見つからない場合は
// フェンス記号を除去して全体をトリムするフォールバックに回ります。
// 修復するのは末尾の閉じ括弧直前の余分なカンマだけです。文字列リテラルの
// 中身には決して手を入れず、それ以上に壊れた出力を直す汎用リペアエンジン
// でもありません。
func ExtractJSON(raw string) string {
	firstBrace := strings.Index(raw, "{")
	firstBracket := strings.Index(raw, "[")

	start, end := -1, -1
	switch {
	case firstBracket != -1 && (firstBrace == -1 || firstBracket < firstBrace):
		start = firstBracket
		end = strings.LastIndex(raw, "]")
	case firstBrace != -1:
		start = firstBrace
		end = strings.LastIndex(raw, "}")
	}

	cleaned := raw
	if start != -1 && end != -1 && end > start {
		cleaned = raw[start : end+1]
	} else {
		cleaned = strings.TrimSpace(fenceRegex.ReplaceAllString(raw, ""))
	}

	return trailingCommaRegex.ReplaceAllString(cleaned, "$1")
}

// DecodeJSON は ExtractJSON で切り出した文字列を T にデコードします。
// 解析に失敗した場合は *MalformedOutputError を返します。
func DecodeJSON[T any](raw string) (T, error) {
	var out T
	cleaned := ExtractJSON(raw)

	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return out, &MalformedOutputError{Err: err, Snippet: truncate(cleaned, snippetLen)}
	}
	return out, nil
}

// truncate は s を maxLen バイト以内に切り詰めます。切断位置がマルチバイト
// 文字の途中に当たる場合は、直前のルーン境界まで戻します。
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
