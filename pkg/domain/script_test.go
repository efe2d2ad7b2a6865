package domain

import (
	"encoding/json"
	"testing"
)

func TestProductionScript_JSON(t *testing.T) {
	t.Run("AIからのレスポンス形式をシミュレートするのだ", func(t *testing.T) {
		inputJSON := `{
			"title": "最後の灯台",
			"genre": "Drama",
			"scenes": [
				{
					"sceneNumber": 1,
					"location": "灯台",
					"time": "Night",
					"actionDescription": "嵐の中、守人が階段を駆け上がる",
					"dialogue": [{"speaker": "守人", "line": "まだ間に合う"}],
					"visualPrompt": "storm-battered lighthouse interior"
				}
			]
		}`

		var script ProductionScript
		if err := json.Unmarshal([]byte(inputJSON), &script); err != nil {
			t.Fatalf("パース失敗なのだ: %v", err)
		}

		if script.Title != "最後の灯台" {
			t.Errorf("タイトルが違うのだ: %s", script.Title)
		}
		if len(script.Scenes) != 1 || script.Scenes[0].Dialogue[0].Speaker != "守人" {
			t.Error("シーン内容が正しくパースされていないのだ")
		}
	})
}

func TestSceneContext(t *testing.T) {
	script := ProductionScript{
		Characters: []Character{
			{Name: "Mira", Description: "silver-haired engineer"},
			{Name: "Joon", Description: "retired detective"},
		},
		Locations: []LocationSetting{
			{Name: "Harbor", Description: "foggy industrial docks"},
		},
	}

	t.Run("登場キャラとロケーションの説明だけが合成されること", func(t *testing.T) {
		scene := Scene{
			Location: "Harbor",
			Dialogue: []DialogueLine{{Speaker: "Mira", Line: "..."}},
		}

		ctx := script.SceneContext(scene)
		want := "Mira: silver-haired engineer. Location (Harbor): foggy industrial docks"
		if ctx != want {
			t.Errorf("期待値 '%s', 実際の値 '%s'", want, ctx)
		}
	})

	t.Run("登場しないキャラの説明は混ざらないこと", func(t *testing.T) {
		scene := Scene{Location: "Nowhere", Dialogue: []DialogueLine{{Speaker: "Joon"}}}

		ctx := script.SceneContext(scene)
		if ctx != "Joon: retired detective" {
			t.Errorf("不要な文脈が混入したのだ: %s", ctx)
		}
	})
}

func TestPendingSceneIndexes(t *testing.T) {
	script := ProductionScript{
		Scenes: []Scene{
			{SceneNumber: 1, GeneratedImageURL: "data:image/png;base64,xx"},
			{SceneNumber: 2},
			{SceneNumber: 3},
		},
	}

	pending := script.PendingSceneIndexes()
	if len(pending) != 2 || pending[0] != 1 || pending[1] != 2 {
		t.Errorf("未生成シーンの抽出が誤っているのだ: %v", pending)
	}
}

func TestCombineQA(t *testing.T) {
	questions := []Question{
		{ID: "q1", Question: "主人公が最も恐れるものは？"},
		{ID: "q2", Question: "物語の転換点は？"},
	}
	answers := []Answer{
		{QuestionID: "q2", Answer: "灯台の消灯"},
		{QuestionID: "missing", Answer: "迷子の回答"},
	}

	pairs := CombineQA(questions, answers)
	if len(pairs) != 2 {
		t.Fatalf("ペア数が期待と違うのだ: %d", len(pairs))
	}
	if pairs[0].Question != "物語の転換点は？" || pairs[0].Answer != "灯台の消灯" {
		t.Errorf("ペアの突き合わせが誤っているのだ: %+v", pairs[0])
	}
	if pairs[1].Question != "" {
		t.Error("存在しない質問IDには空の質問文を残すはずなのだ")
	}
}

func TestMergeCharacters(t *testing.T) {
	world := []Character{{ID: "w1", Name: "Mira"}}
	suggested := []Character{
		{ID: "s1", Name: "Mira"}, // 同名はワールド側を優先
		{ID: "s2", Name: "Joon"},
	}

	merged := MergeCharacters(world, suggested)
	if len(merged) != 2 {
		t.Fatalf("マージ結果の件数が誤っているのだ: %d", len(merged))
	}
	if merged[0].ID != "w1" || merged[1].ID != "s2" {
		t.Errorf("マージ順序または重複排除が誤っているのだ: %+v", merged)
	}
}
