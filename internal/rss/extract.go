// Package rss はフィードマークアップからの記事抽出とフィード集約を提供する。
//
// 実世界のRSSはwell-formedでないXMLであることが多いため、
// DOM/XMLパーサーではなくパターンマッチングで抽出を行う。
// 仕様準拠のXMLプロセッサではない点に注意。
// 各抽出ルールは名前付きの純粋関数として分離しており、
// 将来的に寛容なストリーミングパーサーへ差し替える場合も
// 呼び出し側を変更せずに置き換えられる。
package rss

import (
	"regexp"
	"strings"
)

const (
	cdataOpen  = "<![CDATA["
	cdataClose = "]]>"
)

// openingTagPattern はタグ名に対する開始タグの正規表現を構築する。
// 属性付きの開始タグ（<tag attr="...">）にもマッチする。
func openingTagPattern(tagName string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)<` + regexp.QuoteMeta(tagName) + `(?:\s[^>]*?)?>`)
}

// closingTagPattern はタグ名に対する終了タグの正規表現を構築する。
func closingTagPattern(tagName string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)</` + regexp.QuoteMeta(tagName) + `\s*>`)
}

// ExtractTag はブロック内の最初のタグペアの内部テキストを返す。
// タグ名は大文字小文字を区別しない。CDATAラッパーは除去し、前後の空白を削除する。
// タグが存在しない場合は空文字列を返す（エラーにはしない）。
// CDATAセクション内では山括弧がネストしていてもCDATA終端のみを
// コンテンツ終了マーカーとして扱う。
func ExtractTag(block, tagName string) string {
	inner, _, found := findTagContent(block, tagName)
	if !found {
		return ""
	}
	return strings.TrimSpace(inner)
}

// ExtractAll はブロック内の同名タグ全ての内部テキストを文書順で返す。
// 1件も見つからない場合は空スライスを返す。
func ExtractAll(block, tagName string) []string {
	values := []string{}
	rest := block
	for {
		inner, end, found := findTagContent(rest, tagName)
		if !found {
			return values
		}
		values = append(values, strings.TrimSpace(inner))
		rest = rest[end:]
	}
}

// ExtractSelfClosingAttrs は自己終了タグ（enclosure等）の属性値を抽出する。
// 要求された属性のうち存在するものだけを結果に含める。
// タグ自体が存在しない場合は空マップを返す。
func ExtractSelfClosingAttrs(block, tagName string, attrNames []string) map[string]string {
	result := make(map[string]string)

	loc := openingTagPattern(tagName).FindStringIndex(block)
	if loc == nil {
		return result
	}
	tagText := block[loc[0]:loc[1]]

	for _, name := range attrNames {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\s*=\s*(?:"([^"]*)"|'([^']*)')`)
		m := re.FindStringSubmatch(tagText)
		if m == nil {
			continue
		}
		if m[1] != "" {
			result[name] = m[1]
		} else {
			result[name] = m[2]
		}
	}

	return result
}

// findTagContent はブロック内の最初のタグペアの内部テキストと、
// そのタグペアの直後のオフセットを返す。
// CDATAで始まるコンテンツはCDATA終端までを内部テキストとして扱うため、
// CDATA内に終了タグと同じ文字列が含まれていても誤検出しない。
// 終了マーカー（CDATA終端または終了タグ）が見つからない場合はfound=falseを返す。
func findTagContent(block, tagName string) (inner string, end int, found bool) {
	openLoc := openingTagPattern(tagName).FindStringIndex(block)
	if openLoc == nil {
		return "", 0, false
	}

	content := block[openLoc[1]:]

	// CDATAセクション: 終端マーカーまでを無条件にコンテンツとする
	trimmed := strings.TrimLeft(content, " \t\r\n")
	if strings.HasPrefix(trimmed, cdataOpen) {
		skipped := len(content) - len(trimmed)
		start := skipped + len(cdataOpen)
		closeIdx := strings.Index(content[start:], cdataClose)
		if closeIdx < 0 {
			return "", 0, false
		}
		inner = content[start : start+closeIdx]
		end = openLoc[1] + start + closeIdx + len(cdataClose)
		// CDATA直後の終了タグは読み飛ばす（存在しなくても抽出は成立する）
		if closeLoc := closingTagPattern(tagName).FindStringIndex(content[start+closeIdx:]); closeLoc != nil {
			end = openLoc[1] + start + closeIdx + closeLoc[1]
		}
		return inner, end, true
	}

	closeLoc := closingTagPattern(tagName).FindStringIndex(content)
	if closeLoc == nil {
		return "", 0, false
	}

	inner = content[:closeLoc[0]]
	end = openLoc[1] + closeLoc[1]
	return inner, end, true
}
