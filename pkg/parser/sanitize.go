// Package parser は、AIモデルが返すテキストをJSONとして救済するための
// 小さなユーティリティ群です。Markdownフェンスの除去と、途中で切れた
// JSONの補修だけを担当し、スキーマの解釈は呼び出し側に委ねます。
package parser

import "strings"

// CleanJSON は、AIが付けがちなMarkdownコードフェンス（```json ... ```）を
// 取り除き、前後の空白を落とした中身だけを返すのだ。
// フェンスが無い入力はそのまま（トリムだけして）返る、純粋な変換です。
func CleanJSON(text string) string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return ""
	}

	if rest, ok := cutFencePrefix(cleaned, "```json"); ok {
		cleaned = rest
	} else if rest, ok := cutFencePrefix(cleaned, "```"); ok {
		cleaned = rest
	}
	cleaned = strings.TrimSuffix(cleaned, "```")

	return strings.TrimSpace(cleaned)
}

// cutFencePrefix は大文字小文字を無視してフェンス開始タグを剥がすのだ。
func cutFencePrefix(s, fence string) (string, bool) {
	if len(s) < len(fence) {
		return s, false
	}
	if !strings.EqualFold(s[:len(fence)], fence) {
		return s, false
	}
	return s[len(fence):], true
}
