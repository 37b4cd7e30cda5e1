// Package model はドメインモデルを定義する。
package model

// Enclosure はフィード記事の添付ファイル参照を表す。
// url・length・typeはいずれも取得元で省略されうる。
type Enclosure struct {
	URL    string `json:"url,omitempty"`
	Length string `json:"length,omitempty"`
	Type   string `json:"type,omitempty"`
}

// FeedRecord はフィードから抽出した1件の記事を表す。
// 全フィールドが独立して省略可能であり、不正なエントリでも
// フィールド単位のベストエフォートで構築される（エントリ全体を棄却しない）。
// リクエストごとに構築される一時オブジェクトで、永続化されない。
type FeedRecord struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	// PublishedAt は取得元の日付文字列をそのまま保持する（表示用、パースしない）。
	PublishedAt string `json:"published_at"`
	// ISOPublishedAt はPublishedAtのISO-8601変換（ベストエフォート、失敗時は空文字列）。
	ISOPublishedAt string `json:"iso_published_at"`
	// BodyHTML は抽出した本文（マークアップを含みうる）。
	BodyHTML string `json:"body_html"`
	// BodySnippet はタグ除去済み本文の先頭200文字。
	BodySnippet string   `json:"body_snippet"`
	Author      string   `json:"author"`
	Categories  []string `json:"categories,omitempty"`
	// GUID は一意性のヒントとして保持する（一意性は強制しない）。
	GUID      string     `json:"guid,omitempty"`
	ImageURL  string     `json:"image_url,omitempty"`
	Enclosure *Enclosure `json:"enclosure,omitempty"`
}
