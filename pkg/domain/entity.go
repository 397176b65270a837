package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
)

// ScriptEntity は映像に繰り返し登場する主体（キャラクター・場所・小道具）の定義です。
// Entities Lock 段階で一度だけ確定され、以降の全ステージで名前に対する
// 唯一の視覚的記述として扱われます。
type ScriptEntity struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // character / object / location
	Description string `json:"description"`
}

// EntityMap は名前をキーとしたエンティティの検索用マップなのだ。
type EntityMap map[string]ScriptEntity

// BuildEntityMap はスライス形式の Entities Lock を検索効率の良いマップに変換するのだ。
func BuildEntityMap(entities []ScriptEntity) EntityMap {
	m := make(EntityMap, len(entities))
	for _, e := range entities {
		if e.Name != "" {
			m[e.Name] = e
		}
	}
	return m
}

// FindEntity は名前からエンティティを特定します。大文字小文字の揺れも許容します。
func (m EntityMap) FindEntity(name string) *ScriptEntity {
	if m == nil {
		return nil
	}
	if e, ok := m[name]; ok {
		res := e
		return &res
	}
	for k, e := range m {
		if strings.EqualFold(k, name) {
			res := e
			return &res
		}
	}
	return nil
}

// SortedNames は名前をソート順で返します。プロンプトの組み立て結果を
// 決定論的に保つため、マップの走査順に依存してはいけないのだ。
func (m EntityMap) SortedNames() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String はエンティティの情報を文字列で返すのだ。
func (e ScriptEntity) String() string {
	return fmt.Sprintf("%s (%s): %s", e.Name, e.Type, e.Description)
}

// GetSeedFromName は名前から決定論的なシード値を生成します。
// 同じエンティティなら実行をまたいでも同じシードになり、画像生成の
// 一貫性維持に利用できます。
func GetSeedFromName(name string) int64 {
	hash := sha256.Sum256([]byte(name))
	seed := int32(binary.BigEndian.Uint32(hash[:4]))
	// シード値は正の数が望ましいため、最上位ビットを落とすのが安全なのだ
	return int64(seed & 0x7FFFFFFF)
}
