package rss

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/hitoshi/marketfeed/internal/model"
)

// itemBlockPattern はRSSの記事コンテナ（<item>...</item>）を非貪欲でマッチする。
var itemBlockPattern = regexp.MustCompile(`(?is)<item(?:\s[^>]*?)?>(.*?)</item\s*>`)

// entryBlockPattern はAtomの記事コンテナ（<entry>...</entry>）を非貪欲でマッチする。
var entryBlockPattern = regexp.MustCompile(`(?is)<entry(?:\s[^>]*?)?>(.*?)</entry\s*>`)

// ParseEntries はフィード文書を記事ブロックに分割し、
// ブロックごとにFeedRecordを構築して文書順で返す。
// 1ブロックの不正がパース全体を中断することはなく、
// 各ブロックのフィールド抽出は独立してベストエフォートで行われる。
func ParseEntries(document string) []model.FeedRecord {
	blocks := entryBlocks(document)

	records := make([]model.FeedRecord, 0, len(blocks))
	for _, block := range blocks {
		records = append(records, parseBlock(block))
	}
	return records
}

// entryBlocks は文書内の記事ブロックを文書順で返す。
// RSSの<item>を優先し、見つからない場合はAtomの<entry>を探す。
func entryBlocks(document string) []string {
	matches := itemBlockPattern.FindAllStringSubmatch(document, -1)
	if matches == nil {
		matches = entryBlockPattern.FindAllStringSubmatch(document, -1)
	}

	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, m[1])
	}
	return blocks
}

// parseBlock は1記事ブロックからFeedRecordを構築する。
// 重複・曖昧な取得元フィールドには以下の優先順位を適用する:
//   - 本文: content:encoded を優先し、なければ description
//   - 著者: dc:creator を優先し、なければ author
//   - 画像: media:content / media:thumbnail のurl属性を優先し、
//     なければtype属性が image/ で始まるenclosureのurl
func parseBlock(block string) model.FeedRecord {
	record := model.FeedRecord{
		Title:      ExtractTag(block, "title"),
		Link:       extractLink(block),
		Author:     extractAuthor(block),
		Categories: ExtractAll(block, "category"),
		GUID:       ExtractTag(block, "guid"),
	}

	record.PublishedAt = extractPublishedAt(block)
	record.ISOPublishedAt = toISODate(record.PublishedAt)

	record.BodyHTML = extractBody(block)
	record.BodySnippet = Snippet(record.BodyHTML, snippetLimit)

	if attrs := ExtractSelfClosingAttrs(block, "enclosure", []string{"url", "length", "type"}); len(attrs) > 0 {
		record.Enclosure = &model.Enclosure{
			URL:    attrs["url"],
			Length: attrs["length"],
			Type:   attrs["type"],
		}
	}
	record.ImageURL = extractImageURL(block, record.Enclosure)

	return record
}

// extractBody は本文を抽出する。リッチコンテンツフィールドを優先する。
func extractBody(block string) string {
	if body := ExtractTag(block, "content:encoded"); body != "" {
		return body
	}
	return ExtractTag(block, "description")
}

// extractAuthor は著者を抽出する。構造化されたcreatorフィールドを優先する。
func extractAuthor(block string) string {
	if author := ExtractTag(block, "dc:creator"); author != "" {
		return author
	}
	return ExtractTag(block, "author")
}

// extractLink はリンクを抽出する。
// RSSの<link>テキストを優先し、なければAtom形式の<link href="..."/>を探す。
func extractLink(block string) string {
	if link := ExtractTag(block, "link"); link != "" {
		return link
	}
	attrs := ExtractSelfClosingAttrs(block, "link", []string{"href"})
	return attrs["href"]
}

// extractPublishedAt は公開日時の生テキストを抽出する。
// 取得元の表記をそのまま保持する（パースして再整形しない）。
func extractPublishedAt(block string) string {
	if pubDate := ExtractTag(block, "pubDate"); pubDate != "" {
		return pubDate
	}
	if published := ExtractTag(block, "published"); published != "" {
		return published
	}
	return ExtractTag(block, "dc:date")
}

// extractImageURL は画像URLを優先順位付きで抽出する。
// 埋め込みメディア参照を優先し、なければtype属性が画像を示すenclosureを使用する。
func extractImageURL(block string, enclosure *model.Enclosure) string {
	if attrs := ExtractSelfClosingAttrs(block, "media:content", []string{"url"}); attrs["url"] != "" {
		return attrs["url"]
	}
	if attrs := ExtractSelfClosingAttrs(block, "media:thumbnail", []string{"url"}); attrs["url"] != "" {
		return attrs["url"]
	}
	if enclosure != nil && strings.HasPrefix(enclosure.Type, "image/") {
		return enclosure.URL
	}
	return ""
}

// toISODate は生の日付テキストをISO-8601(UTC)に変換する。
// パースできない場合は空文字列を返す（エラーにはしない）。
func toISODate(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
