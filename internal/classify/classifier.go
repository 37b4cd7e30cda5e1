// Package classify はフィード記事の地域・トピック分類を提供する。
//
// 分類はキーワードの部分文字列マッチングで行う。
// ステミングやトークン境界の判定は行わない（キーワードは
// 小文字化した全文に対する「contains」テスト）。
// キーワードセットは引数として渡されるため、分類関数は
// (テキスト, キーワードセット) の純粋関数として独立にテスト・設定できる。
package classify

import (
	"strings"

	"github.com/hitoshi/marketfeed/internal/model"
)

// Region はフィード記事の地域分類を表す。
type Region string

const (
	// RegionZimbabwean はジンバブエ関連の記事を示す。
	RegionZimbabwean Region = "zimbabwean"
	// RegionAfrican はアフリカ大陸関連の記事を示す。
	RegionAfrican Region = "african"
	// RegionInternational は上記いずれにも該当しない記事を示す。
	RegionInternational Region = "international"
)

// ZimbabweKeywords はジンバブエ固有の分類キーワード。
var ZimbabweKeywords = []string{
	"zimbabwe", "zimbabwean", "harare", "bulawayo", "mutare", "gweru",
	"zse", "victoria falls exchange", "rbz", "reserve bank of zimbabwe",
	"zwl", "zig", "zimdollar", "mnangagwa", "victoria falls",
	"econet", "delta corporation", "innscor",
}

// AfricanKeywords は汎アフリカの分類キーワード。
var AfricanKeywords = []string{
	"africa", "african union", "south africa", "nigeria", "kenya",
	"ghana", "egypt", "zambia", "botswana", "mozambique", "tanzania",
	"johannesburg", "lagos", "nairobi", "cairo", "accra",
	"jse", "nse", "ecowas", "sadc", "afdb",
}

// FinanceKeywords は金融・経済トピックの分類キーワード。
var FinanceKeywords = []string{
	"stock", "shares", "equity", "market", "economy", "economic",
	"inflation", "currency", "forex", "exchange rate", "bank",
	"investment", "investor", "trade", "tariff", "commodity",
	"gold", "platinum", "lithium", "mining", "tobacco",
	"gdp", "bond", "dividend", "interest rate", "monetary policy",
	"budget", "treasury", "revenue", "crypto", "bitcoin",
}

// ClassifyRegion は記事のタイトルとスニペットから地域分類を導出する。
// デフォルトのキーワードセットを使用する。
func ClassifyRegion(record model.FeedRecord) Region {
	return ClassifyRegionWith(classifiableText(record), ZimbabweKeywords, AfricanKeywords)
}

// ClassifyRegionWith はテキストを指定されたキーワードセットで地域分類する。
/// 厳密な優先順位で判定する: ジンバブエ固有キーワードが1つでも一致すれば
// zimbabwean（以降の判定は行わない）、次に汎アフリカキーワードが一致すれば
// african、いずれも一致しなければinternational。
func ClassifyRegionWith(text string, zimbabweKeywords, africanKeywords []string) Region {
	lowered := strings.ToLower(text)

	if matchesAny(lowered, zimbabweKeywords) {
		return RegionZimbabwean
	}
	if matchesAny(lowered, africanKeywords) {
		return RegionAfrican
	}
	return RegionInternational
}

// IsFinanciallyRelevant は記事が金融・経済トピックに関連するかを判定する。
// 地域分類とは独立したブール値であり、国際記事が金融関連であることもある。
func IsFinanciallyRelevant(record model.FeedRecord) bool {
	return MatchesKeywords(classifiableText(record), FinanceKeywords)
}

// MatchesKeywords はテキストがキーワードセットのいずれかに一致するかを判定する。
// 大文字小文字を区別しない部分文字列マッチング。
func MatchesKeywords(text string, keywords []string) bool {
	return matchesAny(strings.ToLower(text), keywords)
}

// classifiableText は分類対象のテキスト（タイトル + スニペット）を構築する。
func classifiableText(record model.FeedRecord) string {
	return record.Title + " " + record.BodySnippet
}

// matchesAny は小文字化済みテキストに対するcontainsテストを行う。
func matchesAny(loweredText string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(loweredText, keyword) {
			return true
		}
	}
	return false
}
