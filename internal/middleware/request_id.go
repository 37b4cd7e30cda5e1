package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// requestIDKey はコンテキストにリクエストIDを格納するためのキー。
type requestIDKey struct{}

// requestIDHeader はリクエストIDを返すレスポンスヘッダー。
const requestIDHeader = "X-Request-ID"

// NewRequestIDMiddleware はリクエストごとに一意のIDを生成し、
// コンテキストとレスポンスヘッダーに設定するミドルウェアを返す。
// クライアントが X-Request-ID を送信した場合はその値を引き継ぐ。
func NewRequestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, id)
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext はコンテキストからリクエストIDを取り出す。
// 未設定の場合はエラーを返す。
func RequestIDFromContext(ctx context.Context) (string, error) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	if !ok || id == "" {
		return "", fmt.Errorf("request ID not found in context")
	}
	return id, nil
}
