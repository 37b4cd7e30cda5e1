// Package handler はHTTP APIハンドラーを提供する。
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/marketfeed/internal/model"
)

// apiResponse は市場データ系エンドポイントの統一エンベロープ。
// 取得失敗時はSuccess=falseとなり、Errorに原因テキストが入る。
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// writeSuccess は成功エンベロープを書き込む。
func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: data})
}

// writeUpstreamError は取得元失敗のエンベロープを書き込む。
// 取得元の障害はこのサービスの障害ではないため502を返す。
func writeUpstreamError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadGateway, apiResponse{Success: false, Error: err.Error()})
}

// writeAPIErrorResponse は統一エラーフォーマットでHTTPエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"code":     apiErr.Code,
		"message":  apiErr.Message,
		"category": apiErr.Category,
		"action":   apiErr.Action,
	})
}
