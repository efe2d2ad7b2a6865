package parser

import (
	"encoding/json"
	"testing"
)

func TestCleanJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"jsonタグ付きフェンスを除去できるのだ", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"タグ無しフェンスも除去できるのだ", "```\n[1,2]\n```", "[1,2]"},
		{"大文字のタグでも除去できるのだ", "```JSON\n{}\n```", "{}"},
		{"フェンスが無ければトリムだけなのだ", "  {\"a\":1}  ", `{"a":1}`},
		{"空文字列は空のままなのだ", "", ""},
		{"空白だけでも空になるのだ", "   \n  ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanJSON(tc.input); got != tc.want {
				t.Errorf("期待値 %q, 実際の値 %q", tc.want, got)
			}
		})
	}
}

func TestRepairTruncatedJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"文字列の途中で切れたオブジェクト", `{"a":1,"b":"x`, `{"a":1,"b":"x"}`},
		{"配列要素の途中で切れた入力", `[{"id":"1"},{"id":"2`, `[{"id":"1"},{"id":"2"}]`},
		{"末尾のカンマは落とすのだ", `{"a":1,`, `{"a":1}`},
		{"ネストの深い切断もLIFOで閉じるのだ", `{"a":[{"b":[1,2`, `{"a":[{"b":[1,2]}]}`},
		{"エスケープ済み引用符は文字列を閉じないのだ", `{"a":"he said \"hi`, `{"a":"he said \"hi"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RepairTruncatedJSON(tc.input)
			if got != tc.want {
				t.Errorf("期待値 %q, 実際の値 %q", tc.want, got)
			}
			if !json.Valid([]byte(got)) {
				t.Errorf("補修結果が有効なJSONではないのだ: %q", got)
			}
		})
	}
}

func TestRepairTruncatedJSON_Idempotent(t *testing.T) {
	// すでに正しいJSONは等価なままパース可能であること
	valids := []string{
		`{"a":1,"b":"x"}`,
		`[1,2,3]`,
		`{"nested":{"list":[{"k":"v"}]},"s":"a \"quoted\" word"}`,
		`"just a string"`,
	}

	for _, input := range valids {
		got := RepairTruncatedJSON(input)
		if got != input {
			t.Errorf("有効なJSONが書き換えられたのだ。入力 %q, 出力 %q", input, got)
		}
	}
}

func TestRepairTruncatedJSON_PrefixConsistency(t *testing.T) {
	// 元のJSONを末尾から削った入力は、元の部分構造としてパースできること
	original := `{"title":"Last Light","scenes":[{"n":1,"loc":"Harbor"},{"n":2,"loc":"Tower"}]}`

	for cut := len(original) - 1; cut > 1; cut-- {
		truncated := original[:cut]
		repaired := RepairTruncatedJSON(truncated)
		var v any
		if err := json.Unmarshal([]byte(repaired), &v); err != nil {
			// 数値やリテラルのど真ん中での切断は補修対象外なのだ
			continue
		}
		if _, ok := v.(map[string]any); !ok {
			t.Errorf("cut=%d: オブジェクトとして復元できなかったのだ: %q", cut, repaired)
		}
	}
}

func TestDecodeLenient(t *testing.T) {
	t.Run("フェンス付きで切断されたJSONを一気に復元できるのだ", func(t *testing.T) {
		raw := "```json\n[{\"id\":\"1\",\"title\":\"A\"},{\"id\":\"2\",\"title\":\"B"
		var out []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		}
		if err := DecodeLenient(raw, &out); err != nil {
			t.Fatalf("復元に失敗したのだ: %v", err)
		}
		if len(out) != 2 || out[1].Title != "B" {
			t.Errorf("復元内容が誤っているのだ: %+v", out)
		}
	})

	t.Run("補修不能な入力はエラーになるのだ", func(t *testing.T) {
		var v any
		if err := DecodeLenient(`{"a": [1, }`, &v); err == nil {
			t.Error("構造の入れ違いでエラーが返らなかったのだ")
		}
	})
}
