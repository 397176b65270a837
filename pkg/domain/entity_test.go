package domain

import (
	"testing"
)

func TestBuildEntityMap(t *testing.T) {
	entities := []ScriptEntity{
		{Name: "Marco", Type: "character", Description: "A merchant in a red cloak"},
		{Name: "", Type: "object", Description: "nameless"},
	}

	m := BuildEntityMap(entities)

	if len(m) != 1 {
		t.Errorf("期待値 1件, 実際の値 %d件（名前なしは除外されるべき）", len(m))
	}
}

func TestEntityMap_FindEntity(t *testing.T) {
	m := BuildEntityMap([]ScriptEntity{
		{Name: "Marco", Type: "character", Description: "A merchant in a red cloak"},
	})

	t.Run("完全一致で引けること", func(t *testing.T) {
		if e := m.FindEntity("Marco"); e == nil || e.Description != "A merchant in a red cloak" {
			t.Errorf("期待したエンティティが引けません: %+v", e)
		}
	})

	t.Run("大文字小文字の揺れを許容すること", func(t *testing.T) {
		if e := m.FindEntity("marco"); e == nil {
			t.Error("小文字の名前で引けませんでした")
		}
	})

	t.Run("存在しない名前はnilを返すこと", func(t *testing.T) {
		if e := m.FindEntity("Polo"); e != nil {
			t.Errorf("期待値 nil, 実際の値 %+v", e)
		}
	})

	t.Run("nilマップでも落ちないこと", func(t *testing.T) {
		var empty EntityMap
		if e := empty.FindEntity("Marco"); e != nil {
			t.Errorf("期待値 nil, 実際の値 %+v", e)
		}
	})
}

func TestEntityMap_SortedNames(t *testing.T) {
	m := BuildEntityMap([]ScriptEntity{
		{Name: "Zanzibar", Type: "location"},
		{Name: "Astrolabe", Type: "object"},
		{Name: "Marco", Type: "character"},
	})

	names := m.SortedNames()
	expected := []string{"Astrolabe", "Marco", "Zanzibar"}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("位置 %d: 期待値 %s, 実際の値 %s", i, name, names[i])
		}
	}
}

func TestGetSeedFromName(t *testing.T) {
	t.Run("同じ名前から常に同じシードが生成されること", func(t *testing.T) {
		seed1 := GetSeedFromName("Marco")
		seed2 := GetSeedFromName("Marco")
		if seed1 != seed2 {
			t.Error("同じ名前から異なるシードが生成されました。決定論的ではありません")
		}
	})

	t.Run("シードが負にならないこと", func(t *testing.T) {
		for _, name := range []string{"Marco", "Zanzibar", "Astrolabe", "砂漠の商人"} {
			if seed := GetSeedFromName(name); seed < 0 {
				t.Errorf("%s: 負のシード %d が生成されました", name, seed)
			}
		}
	})

	t.Run("異なる名前は異なるシードになること", func(t *testing.T) {
		if GetSeedFromName("Marco") == GetSeedFromName("Polo") {
			t.Error("異なる名前から同じシードが生成されました")
		}
	})
}
