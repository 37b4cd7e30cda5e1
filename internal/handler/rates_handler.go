package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/marketfeed/internal/forex"
)

// ForexServiceInterface は為替レート調整サービスのインターフェース。
type ForexServiceInterface interface {
	GetForexRates(ctx context.Context) forex.Result
}

// RatesHandler は為替レートのHTTPハンドラー。
type RatesHandler struct {
	forexService ForexServiceInterface
}

// NewRatesHandler はRatesHandlerを生成する。
func NewRatesHandler(forexService ForexServiceInterface) *RatesHandler {
	return &RatesHandler{forexService: forexService}
}

// GetForexRates は複数プロバイダーから調整済みの為替レート一覧を取得する。
// GET /api/rates/forex
// 部分的な失敗は許容される: 1件でもレートが得られればsuccess=trueで200を返し、
// errorフィールドに失敗の内訳が残る。全滅時はsuccess=falseで502を返す。
func (h *RatesHandler) GetForexRates(w http.ResponseWriter, r *http.Request) {
	result := h.forexService.GetForexRates(r.Context())

	statusCode := http.StatusOK
	if !result.Success {
		statusCode = http.StatusBadGateway
	}
	writeJSON(w, statusCode, result)
}
