package handler

import "net/http"

// HealthHandler はヘルスチェックエンドポイント。
// 依存する取得元には触れず、プロセスの生存のみを報告する。
// GET /health
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
