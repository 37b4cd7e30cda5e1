package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/marketfeed/internal/classify"
	"github.com/hitoshi/marketfeed/internal/model"
)

// FeedAggregatorInterface はフィードハンドラーが必要とする集約サービスのインターフェース。
type FeedAggregatorInterface interface {
	// Aggregate は設定済み取得元からフィードを集約する。エラーを返すことはない。
	Aggregate(ctx context.Context, sources []string, maxItems int) []model.FeedRecord
}

// FeedHandler はフィード集約のHTTPハンドラー。
type FeedHandler struct {
	aggregator FeedAggregatorInterface
	sources    []string
	maxItems   int
}

// NewFeedHandler はFeedHandlerを生成する。
func NewFeedHandler(aggregator FeedAggregatorInterface, sources []string, maxItems int) *FeedHandler {
	return &FeedHandler{
		aggregator: aggregator,
		sources:    sources,
		maxItems:   maxItems,
	}
}

// feedItemResponse はフィード記事1件のレスポンス。
// 分類結果（地域・金融関連フラグ）を付与してコンテンツのルーティングに使用する。
type feedItemResponse struct {
	model.FeedRecord
	Region              classify.Region `json:"region"`
	FinanciallyRelevant bool            `json:"financially_relevant"`
}

// feedItemsResponse はフィード記事一覧のレスポンス。
type feedItemsResponse struct {
	Items []feedItemResponse `json:"items"`
}

// GetFeedItems はフィード記事一覧を取得する。
// GET /api/feed/items?region=zimbabwean|african|international&financial=true
// クエリパラメータ指定時は分類結果でフィルタする。不正なregion値は400を返す。
// 取得元の部分的な失敗はスキップされるため、集約自体がエラーになることはない
// （全滅時は空のitemsを返す）。
func (h *FeedHandler) GetFeedItems(w http.ResponseWriter, r *http.Request) {
	regionFilter := r.URL.Query().Get("region")
	if !isValidRegionFilter(regionFilter) {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidParameterError("region", regionFilter))
		return
	}
	financialOnly := r.URL.Query().Get("financial") == "true"

	records := h.aggregator.Aggregate(r.Context(), h.sources, h.maxItems)

	items := make([]feedItemResponse, 0, len(records))
	for _, record := range records {
		item := feedItemResponse{
			FeedRecord:          record,
			Region:              classify.ClassifyRegion(record),
			FinanciallyRelevant: classify.IsFinanciallyRelevant(record),
		}

		if regionFilter != "" && string(item.Region) != regionFilter {
			continue
		}
		if financialOnly && !item.FinanciallyRelevant {
			continue
		}
		items = append(items, item)
	}

	writeJSON(w, http.StatusOK, feedItemsResponse{Items: items})
}

// isValidRegionFilter はregionクエリパラメータの値を検証する。
// 空文字列（フィルタなし）は許可する。
func isValidRegionFilter(v string) bool {
	switch v {
	case "", string(classify.RegionZimbabwean), string(classify.RegionAfrican), string(classify.RegionInternational):
		return true
	default:
		return false
	}
}
