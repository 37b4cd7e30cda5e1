package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, upstream, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeSourceUnavailable = "SOURCE_UNAVAILABLE"
	ErrCodeSchemaViolation   = "SCHEMA_VIOLATION"
	ErrCodeNoData            = "NO_DATA"
	ErrCodeInvalidURL        = "INVALID_URL"
	ErrCodeSSRFBlocked       = "SSRF_BLOCKED"
	ErrCodeInvalidParameter  = "INVALID_PARAMETER"
)

// NewSourceUnavailableError は単一の取得元が利用不能な場合のエラーを生成する。
func NewSourceUnavailableError(source string) *APIError {
	return &APIError{
		Code:     ErrCodeSourceUnavailable,
		Message:  fmt.Sprintf("取得元が利用できません: %s", source),
		Category: "upstream",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewSchemaViolationError は取得元レスポンスが期待スキーマに違反した場合のエラーを生成する。
func NewSchemaViolationError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeSchemaViolation,
		Message:  fmt.Sprintf("取得元レスポンスが期待する形式ではありません: %s", reason),
		Category: "upstream",
		Action:   "取得元APIの仕様変更の可能性があります。管理者に連絡してください。",
	}
}

// NewNoDataError は全取得元から1件もデータを生成できなかった場合のエラーを生成する。
func NewNoDataError(detail string) *APIError {
	return &APIError{
		Code:     ErrCodeNoData,
		Message:  fmt.Sprintf("利用可能なデータがありません: %s", detail),
		Category: "upstream",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewInvalidParameterError は無効なクエリパラメータエラーを生成する。
func NewInvalidParameterError(name, detail string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidParameter,
		Message:  fmt.Sprintf("パラメータ %s が不正です: %s", name, detail),
		Category: "validation",
		Action:   "リクエストパラメータを確認してください。",
	}
}

// NewInvalidURLError は無効なURLエラーを生成する。
func NewInvalidURLError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidURL,
		Message:  fmt.Sprintf("無効なURLです: %s", reason),
		Category: "validation",
		Action:   "正しいURL形式（http:// または https:// で始まるURL）を設定してください。",
	}
}

// NewSSRFBlockedError はSSRFブロックエラーを生成する。
func NewSSRFBlockedError() *APIError {
	return &APIError{
		Code:     ErrCodeSSRFBlocked,
		Message:  "セキュリティポリシーにより、指定されたURLへのアクセスがブロックされました。",
		Category: "validation",
		Action:   "公開されているWebサイトのURLを設定してください。ローカルネットワークやプライベートIPへのアクセスは許可されていません。",
	}
}
