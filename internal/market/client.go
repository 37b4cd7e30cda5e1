// Package market は市場データ系エンドポイントの汎用正規化を提供する。
//
// 約10種の市場データ取得元（指数、ETF、市場活動、値上がり・値下がり上位、
// 地域指数、暗号資産価格）はいずれも「JSONレスポンスの必須フィールドの存在と
// 型を検証し、型付きレコードに再整形する」という同一パターンに従う。
// 個別実装を複製する代わりに、(エンドポイントパス, コレクションフィールド名,
// レコードマッパー) をパラメータとする1つの汎用関数に集約している。
//
// 検証はフェイルクローズド: スキーマ違反が1件でもあればバッチ全体を
// エラーとして返す（フィードパーサーのフィールド単位の劣化とは異なる）。
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/marketfeed/internal/model"
)

// UpstreamMetrics は市場データ取得のメトリクス収集インターフェース。
type UpstreamMetrics interface {
	RecordFetchSuccess(upstream string)
	RecordFetchFailure(upstream string, reason string)
}

// Client は市場データ系エンドポイントのクライアント。
// トンネルプロバイダ経由の取得元に必要なバイパスヘッダーを全リクエストに付与する。
type Client struct {
	httpClient  *http.Client
	logger      *slog.Logger
	metrics     UpstreamMetrics
	baseURL     string
	cryptoURL   string
	bypassName  string
	bypassValue string
}

// NewClient はClientの新しいインスタンスを生成する。
// metricsはnilを許容する（収集しない）。
func NewClient(
	httpClient *http.Client,
	logger *slog.Logger,
	metrics UpstreamMetrics,
	baseURL, cryptoURL, bypassName, bypassValue string,
) *Client {
	return &Client{
		httpClient:  httpClient,
		logger:      logger,
		metrics:     metrics,
		baseURL:     strings.TrimRight(baseURL, "/"),
		cryptoURL:   cryptoURL,
		bypassName:  bypassName,
		bypassValue: bypassValue,
	}
}

// getJSON はGETリクエストを発行し、レスポンスJSONをデコードして返す。
// ネットワークエラー・非2xxステータス・JSONパース失敗はすべてエラーとして返し、
// 例外を呼び出し元に伝播させることはない。
func (c *Client) getJSON(ctx context.Context, url string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエスト作成に失敗: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.bypassName != "" {
		req.Header.Set(c.bypassName, c.bypassValue)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエスト失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, model.NewSourceUnavailableError(fmt.Sprintf("ステータス %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンス読み取り失敗: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("レスポンスJSONのパースに失敗: %w", err)
	}
	return doc, nil
}

// fetchCollection は市場データ取得の汎用フェイルクローズドコア。
// 指定パスからJSONを取得し、コレクションフィールドの存在と型を検証した上で、
// 各要素をmapRecordで型付きレコードに変換する。
// いずれかの要素がスキーマに違反した場合はバッチ全体をエラーとして返す。
func fetchCollection[T any](ctx context.Context, c *Client, path, field string, mapRecord func(map[string]any) (T, error)) ([]T, error) {
	doc, err := c.getJSON(ctx, c.baseURL+path)
	if err != nil {
		c.recordFailure(path, err)
		return nil, err
	}

	raw, ok := doc[field]
	if !ok {
		err := model.NewSchemaViolationError(fmt.Sprintf("コレクションフィールド %q がレスポンスに含まれていません", field))
		c.recordFailure(path, err)
		return nil, err
	}
	list, ok := raw.([]any)
	if !ok {
		err := model.NewSchemaViolationError(fmt.Sprintf("フィールド %q が配列ではありません", field))
		c.recordFailure(path, err)
		return nil, err
	}

	records := make([]T, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			err := model.NewSchemaViolationError(fmt.Sprintf("%s[%d] がオブジェクトではありません", field, i))
			c.recordFailure(path, err)
			return nil, err
		}
		record, err := mapRecord(obj)
		if err != nil {
			violation := model.NewSchemaViolationError(fmt.Sprintf("%s[%d]: %s", field, i, err.Error()))
			c.recordFailure(path, violation)
			return nil, violation
		}
		records = append(records, record)
	}

	if c.metrics != nil {
		c.metrics.RecordFetchSuccess(path)
	}
	return records, nil
}

// recordFailure は取得失敗をログとメトリクスに記録する。
func (c *Client) recordFailure(upstream string, err error) {
	c.logger.Warn("市場データの取得に失敗しました",
		slog.String("upstream", upstream),
		slog.String("error", err.Error()),
	)
	if c.metrics != nil {
		c.metrics.RecordFetchFailure(upstream, err.Error())
	}
}

// --- スキーマ検証ヘルパー ---

// requireString はオブジェクトから必須の文字列フィールドを取り出す。
// 欠落または型違いはエラー。
func requireString(obj map[string]any, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("必須フィールド %q がありません", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("フィールド %q が文字列ではありません", key)
	}
	return s, nil
}

// requireNumber はオブジェクトから必須の数値フィールドを取り出す。
// 欠落または型違いはエラー。
func requireNumber(obj map[string]any, key string) (float64, error) {
	raw, ok := obj[key]
	if !ok {
		return 0, fmt.Errorf("必須フィールド %q がありません", key)
	}
	n, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("フィールド %q が数値ではありません", key)
	}
	return n, nil
}

// optionalNumber はオブジェクトから省略可能な数値フィールドを取り出す。
// 欠落時は(nil, nil)。存在するが数値でない場合はエラー（フェイルクローズド）。
func optionalNumber(obj map[string]any, key string) (*float64, error) {
	raw, ok := obj[key]
	if !ok {
		return nil, nil
	}
	n, ok := raw.(float64)
	if !ok {
		return nil, fmt.Errorf("フィールド %q が数値ではありません", key)
	}
	return &n, nil
}

// optionalString はオブジェクトから省略可能な文字列フィールドを取り出す。
// 欠落時は空文字列。存在するが文字列でない場合はエラー（フェイルクローズド）。
func optionalString(obj map[string]any, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("フィールド %q が文字列ではありません", key)
	}
	return s, nil
}
