package rss

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// snippetLimit は本文スニペットの最大文字数。
const snippetLimit = 200

// stripPolicy は全タグを除去するbluemondayポリシー。
// パッケージ初期化時に1回だけ構築する（Sanitizeはスレッドセーフ）。
var stripPolicy = bluemonday.StrictPolicy()

// Snippet は本文HTMLからマークアップタグを除去し、
// HTMLエンティティを復元した上で先頭limit文字に切り詰めて返す。
// limitが0以下の場合はデフォルトの200文字を使用する。
func Snippet(bodyHTML string, limit int) string {
	if limit <= 0 {
		limit = snippetLimit
	}

	stripped := stripPolicy.Sanitize(bodyHTML)
	stripped = html.UnescapeString(stripped)
	stripped = strings.TrimSpace(stripped)

	runes := []rune(stripped)
	if len(runes) <= limit {
		return stripped
	}
	return string(runes[:limit])
}
