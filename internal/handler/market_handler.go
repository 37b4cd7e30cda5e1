package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/marketfeed/internal/model"
)

// MarketDataProvider は市場データ正規化クライアントのインターフェース。
// 各メソッドはフェイルクローズド: 1レコードでもスキーマ違反があれば
// バッチ全体がエラーとなる。
type MarketDataProvider interface {
	GetBankRates(ctx context.Context) ([]model.BankRate, error)
	GetMarketIndices(ctx context.Context) ([]model.IndexQuote, error)
	GetZseEtfs(ctx context.Context) ([]model.EtfQuote, error)
	GetMarketActivity(ctx context.Context) ([]model.ActivityCounter, error)
	GetTopGainers(ctx context.Context) ([]model.MoverQuote, error)
	GetTopLosers(ctx context.Context) ([]model.MoverQuote, error)
	GetAfricanIndices(ctx context.Context) ([]model.RegionalIndex, error)
	GetWorldIndices(ctx context.Context) ([]model.RegionalIndex, error)
	GetCryptoPrices(ctx context.Context) ([]model.CryptoPrice, error)
}

// MarketHandler は市場データ系エンドポイントのHTTPハンドラー。
type MarketHandler struct {
	provider MarketDataProvider
}

// NewMarketHandler はMarketHandlerを生成する。
func NewMarketHandler(provider MarketDataProvider) *MarketHandler {
	return &MarketHandler{provider: provider}
}

// respond は正規化結果を統一エンベロープに包んで書き込む。
func respond[T any](w http.ResponseWriter, data []T, err error) {
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeSuccess(w, data)
}

// GetBankRates は銀行為替レート一覧を取得する。
// GET /api/rates/bank
func (h *MarketHandler) GetBankRates(w http.ResponseWriter, r *http.Request) {
	data, err := h.provider.GetBankRates(r.Context())
	respond(w, data, err)
}

// GetMarketIndices はZSE市場指数一覧を取得する。
// GET /api/markets/indices
func (h *MarketHandler) GetMarketIndices(w http.ResponseWriter, r *http.Request) {
	data, err := h.provider.GetMarketIndices(r.Context())
	respond(w, data, err)
}

// GetZseEtfs はZSE上場ETF一覧を取得する。
// GET /api/markets/etfs
func (h *MarketHandler) GetZseEtfs(w http.ResponseWriter, r *http.Request) {
	data, err := h.provider.GetZseEtfs(r.Context())
	respond(w, data, err)
}

// GetMarketActivity は市場活動統計を取得する。
// GET /api/markets/activity
func (h *MarketHandler) GetMarketActivity(w http.ResponseWriter, r *http.Request) {
	data, err := h.provider.GetMarketActivity(r.Context())
	respond(w, data, err)
}

// GetTopGainers は値上がり銘柄一覧を取得する。
// GET /api/markets/gainers
func (h *MarketHandler) GetTopGainers(w http.ResponseWriter, r *http.Request) {
	data, err := h.provider.GetTopGainers(r.Context())
	respond(w, data, err)
}

// GetTopLosers は値下がり銘柄一覧を取得する。
// GET /api/markets/losers
func (h *MarketHandler) GetTopLosers(w http.ResponseWriter, r *http.Request) {
	data, err := h.provider.GetTopLosers(r.Context())
	respond(w, data, err)
}

// GetAfricanIndices はアフリカ地域指数一覧を取得する。
// GET /api/markets/african
func (h *MarketHandler) GetAfricanIndices(w http.ResponseWriter, r *http.Request) {
	data, err := h.provider.GetAfricanIndices(r.Context())
	respond(w, data, err)
}

// GetWorldIndices は世界指数一覧を取得する。
// GET /api/markets/world
func (h *MarketHandler) GetWorldIndices(w http.ResponseWriter, r *http.Request) {
	data, err := h.provider.GetWorldIndices(r.Context())
	respond(w, data, err)
}

// GetCryptoPrices は暗号資産価格一覧を取得する。
// GET /api/markets/crypto
func (h *MarketHandler) GetCryptoPrices(w http.ResponseWriter, r *http.Request) {
	data, err := h.provider.GetCryptoPrices(r.Context())
	respond(w, data, err)
}
