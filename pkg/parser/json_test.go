package parser

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDecodeJSON(t *testing.T) {
	t.Run("素のJSONオブジェクトを復元できること", func(t *testing.T) {
		got, err := DecodeJSON[payload](`{"name": "hook", "count": 3}`)
		if err != nil {
			t.Fatalf("正常なJSONでエラーが発生しました: %v", err)
		}
		if got.Name != "hook" || got.Count != 3 {
			t.Errorf("期待値 {hook 3}, 実際の値 %+v", got)
		}
	})

	t.Run("Markdownフェンスと前置きの説明文を剥がせること", func(t *testing.T) {
		raw := "Sure! Here is the JSON you asked for:\n```json\n[{\"name\": \"a\", \"count\": 1}]\n```\nLet me know if you need anything else."
		got, err := DecodeJSON[[]payload](raw)
		if err != nil {
			t.Fatalf("フェンス付きJSONでエラーが発生しました: %v", err)
		}
		if len(got) != 1 || got[0].Name != "a" {
			t.Errorf("期待値 [{a 1}], 実際の値 %+v", got)
		}
	})

	t.Run("閉じ括弧直前の余分なカンマが修復されること", func(t *testing.T) {
		got, err := DecodeJSON[payload](`{"name": "x", "count": 2,}`)
		if err != nil {
			t.Fatalf("末尾カンマ付きJSONでエラーが発生しました: %v", err)
		}
		if got.Count != 2 {
			t.Errorf("期待値 2, 実際の値 %d", got.Count)
		}
	})

	t.Run("文字列リテラル内のカンマと閉じ括弧が保存されること", func(t *testing.T) {
		type wrapper struct {
			A string `json:"a"`
		}
		got, err := DecodeJSON[wrapper](`{"a": "x ,]"}`)
		if err != nil {
			t.Fatalf("正常なJSONでエラーが発生しました: %v", err)
		}
		if got.A != "x ,]" {
			t.Errorf("期待値 %q, 実際の値 %q", "x ,]", got.A)
		}
	})

	t.Run("オブジェクトより先に配列が始まる場合は配列を切り出すこと", func(t *testing.T) {
		raw := `The list: [{"name": "first", "count": 1}, {"name": "second", "count": 2}] done`
		got, err := DecodeJSON[[]payload](raw)
		if err != nil {
			t.Fatalf("配列の切り出しでエラーが発生しました: %v", err)
		}
		if len(got) != 2 || got[1].Name != "second" {
			t.Errorf("期待値 2件, 実際の値 %+v", got)
		}
	})

	t.Run("解析不能な応答はMalformedOutputErrorになること", func(t *testing.T) {
		_, err := DecodeJSON[payload]("I could not generate the outline, sorry.")
		if err == nil {
			t.Fatal("不正な応答でエラーが発生しませんでした")
		}

		var malformed *MalformedOutputError
		if !errors.As(err, &malformed) {
			t.Errorf("MalformedOutputError ではありません: %T", err)
		}
	})
}

func TestExtractJSON(t *testing.T) {
	t.Run("JSONを含まないテキストはフェンス除去のみ行うこと", func(t *testing.T) {
		got := ExtractJSON("```\nplain text\n```")
		if got != "plain text" {
			t.Errorf("期待値 'plain text', 実際の値 %q", got)
		}
	})

	t.Run("途中の余分なカンマは修復対象外であること", func(t *testing.T) {
		raw := `{"items": [1, 2,], "count": 2}`
		if got := ExtractJSON(raw); got != raw {
			t.Errorf("入力が書き換えられました: %q", got)
		}
	})
}

func TestTruncate(t *testing.T) {
	t.Run("マルチバイト文字の途中で切断しないこと", func(t *testing.T) {
		s := "導入部のフックはここで視聴者の関心をつかみます"
		got := truncate(s, 10)
		if !utf8.ValidString(got) {
			t.Errorf("不正なUTF-8になりました: %q", got)
		}
		if !strings.HasSuffix(got, "...") {
			t.Errorf("省略記号がありません: %q", got)
		}
	})

	t.Run("上限以下の文字列はそのまま返すこと", func(t *testing.T) {
		if got := truncate("short", 100); got != "short" {
			t.Errorf("期待値 'short', 実際の値 %q", got)
		}
	})
}
