package parser

import (
	"encoding/json"
	"strings"
)

// RepairTruncatedJSON は、長さ制限などで途中切断されたJSON文字列に
// 最小限の閉じ文字を補って、パース可能な形に整えるのだ。
//
// アルゴリズム:
//  1. 末尾のカンマ（と空白）を1つ落とす。切断直前のカンマは不正になりがちなのだ。
//  2. 1文字ずつ走査し、文字列内かどうか（エスケープは1文字の後読みフラグで追跡）と、
//     文字列外で現れた `{` / `[` に対応する閉じ文字のスタックを管理する。
//  3. 走査後、文字列が開いたままなら `"` を1つ、残った閉じ文字をLIFO順で追記する。
//
// これはベストエフォートのヒューリスティックであって、汎用のJSON復元ではない。
// 切断点がエスケープ列の途中にある場合や、数値リテラルの破損、構造の入れ違い
// （`}` が期待される位置の `]` など）は補修しない。補修後もパースに失敗するなら、
// 呼び出し側はそれを生成失敗として扱うこと。再補修は無意味なのだ。
func RepairTruncatedJSON(jsonString string) string {
	trimmed := strings.TrimSpace(jsonString)
	trimmed = strings.TrimRight(trimmed, " \t\r\n")
	trimmed = strings.TrimSuffix(trimmed, ",")

	var stack []byte
	insideString := false
	escape := false

	for i := 0; i < len(trimmed); i++ {
		char := trimmed[i]
		if insideString {
			switch {
			case char == '\\':
				escape = !escape
			case char == '"' && !escape:
				insideString = false
			default:
				escape = false
			}
			continue
		}

		switch char {
		case '"':
			insideString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == char {
				stack = stack[:len(stack)-1]
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(trimmed)
	if insideString {
		sb.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		sb.WriteByte(stack[i])
	}
	return sb.String()
}

// DecodeLenient はフェンス除去→補修→Unmarshalを一気に行う補助関数です。
// 補修後もパースできない入力はそのままエラーになります。
func DecodeLenient(raw string, v any) error {
	repaired := RepairTruncatedJSON(CleanJSON(raw))
	return json.Unmarshal([]byte(repaired), v)
}
