package domain

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestCharacter_JSON(t *testing.T) {
	t.Run("Character構造体が正しくJSON変換できるのだ", func(t *testing.T) {
		char := Character{
			ID:          "chr-001",
			Name:        "Mira",
			Gender:      GenderFemale,
			Age:         "34",
			Description: "silver-haired engineer with augmented eyes",
			Role:        "Protagonist",
			Outfits: []Outfit{
				{ID: "out-001", Name: "Dock Jacket", Description: "weathered harbor coat", IsDefault: true},
			},
		}

		data, err := json.Marshal(char)
		if err != nil {
			t.Fatalf("Marshal失敗なのだ: %v", err)
		}

		var decoded Character
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal失敗なのだ: %v", err)
		}

		if !reflect.DeepEqual(char, decoded) {
			t.Errorf("変換前後でデータが一致しないのだ。期待: %+v, 実際: %+v", char, decoded)
		}
	})
}

func TestBuildCharactersMap(t *testing.T) {
	chars := []Character{
		{ID: "c1", Name: "Mira"},
		{ID: "c2"}, // 名前が空ならIDをキーに使う
	}

	m := BuildCharactersMap(chars)
	if m.FindCharacter("Mira") == nil {
		t.Error("名前でキャラクターを引けないのだ")
	}
	if m.FindCharacter("c2") == nil {
		t.Error("名前が空のキャラはIDで引けるはずなのだ")
	}
	if m.FindCharacter("nobody") != nil {
		t.Error("存在しない名前で nil 以外が返ったのだ")
	}
}

func TestNewWorldFromScript(t *testing.T) {
	t.Run("空のジャンルと画風には既定値が入ること", func(t *testing.T) {
		world := NewWorldFromScript("w1", "user@example.com", "", ProductionScript{}, time.Time{})
		if world.Genre != "General" || world.VisualStyle != "Cinematic" || world.Title != "New World" {
			t.Errorf("既定値の補完が誤っているのだ: %+v", world)
		}
	})

	t.Run("台本のキャラとロケが引き継がれること", func(t *testing.T) {
		script := ProductionScript{
			Genre:               "Noir",
			SelectedVisualStyle: "35mm film",
			Characters:          []Character{{Name: "Joon"}},
			Locations:           []LocationSetting{{Name: "Harbor"}},
		}
		world := NewWorldFromScript("w2", "user@example.com", "Harbor Tales", script, time.Time{})
		if len(world.Characters) != 1 || len(world.Locations) != 1 || world.Genre != "Noir" {
			t.Errorf("台本からの引き継ぎが誤っているのだ: %+v", world)
		}
	})
}
