package rss

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/hitoshi/marketfeed/internal/model"
)

// defaultMaxItems は集約結果の最大件数（デフォルト）。
const defaultMaxItems = 50

// userAgent はアウトバウンドフェッチのUser-Agentヘッダー。
const userAgent = "Marketfeed/1.0 Feed Aggregator"

// SSRFValidator はSSRF検証のインターフェース。
// security.SSRFGuardServiceを抽象化してテスタビリティを向上させる。
type SSRFValidator interface {
	ValidateURL(rawURL string) error
	NewSafeClient(timeout time.Duration, maxResponseSize int64) *http.Client
}

// FetchMetrics はフィードフェッチのメトリクス収集インターフェース。
type FetchMetrics interface {
	RecordFetchSuccess(upstream string)
	RecordFetchFailure(upstream string, reason string)
	RecordFetchLatency(duration time.Duration)
}

// Aggregator は設定済みの取得元リストからフィードを集約する。
// 取得元ごとのフェッチは独立しており、単一取得元の失敗は
// 残りの取得元の処理を中断しない。呼び出し元にエラーを返すことはない。
type Aggregator struct {
	ssrfGuard      SSRFValidator
	logger         *slog.Logger
	metrics        FetchMetrics
	timeout        time.Duration
	maxBodySize    int64
	maxConcurrency int
}

// NewAggregator はAggregatorの新しいインスタンスを生成する。
// maxConcurrencyが0以下の場合はデフォルト値4を使用する。
// metricsはnilを許容する（収集しない）。
func NewAggregator(
	ssrfGuard SSRFValidator,
	logger *slog.Logger,
	metrics FetchMetrics,
	timeout time.Duration,
	maxBodySize int64,
	maxConcurrency int,
) *Aggregator {
	if maxConcurrency <= 0 {
		maxConcurrency = 4
	}
	return &Aggregator{
		ssrfGuard:      ssrfGuard,
		logger:         logger,
		metrics:        metrics,
		timeout:        timeout,
		maxBodySize:    maxBodySize,
		maxConcurrency: maxConcurrency,
	}
}

// Aggregate は各取得元からフィードをフェッチ・パースし、
// 取得元リスト順で連結した上でmaxItems件に切り詰めて返す。
// maxItemsが0以下の場合はデフォルトの50件を使用する。
// フェッチ失敗やエラーステータスの取得元はログに記録してスキップし、
// 残りの取得元の結果だけで出力を構築する（空になることはあってもエラーにはしない）。
func (a *Aggregator) Aggregate(ctx context.Context, sources []string, maxItems int) []model.FeedRecord {
	if maxItems <= 0 {
		maxItems = defaultMaxItems
	}

	// 取得元ごとの結果をインデックスで保持し、取得元リスト順を保証する
	results := make([][]model.FeedRecord, len(sources))

	sem := make(chan struct{}, a.maxConcurrency)
	var wg sync.WaitGroup

	for i, source := range sources {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, src string) {
			defer wg.Done()
			defer func() { <-sem }()

			records, err := a.fetchSource(ctx, src)
			if err != nil {
				a.logger.Warn("取得元のフェッチに失敗しました（スキップします）",
					slog.String("source", src),
					slog.String("error", err.Error()),
				)
				if a.metrics != nil {
					a.metrics.RecordFetchFailure(src, err.Error())
				}
				return
			}

			if a.metrics != nil {
				a.metrics.RecordFetchSuccess(src)
			}
			results[idx] = records
		}(i, source)
	}

	wg.Wait()

	merged := make([]model.FeedRecord, 0, maxItems)
	for _, records := range results {
		merged = append(merged, records...)
	}
	if len(merged) > maxItems {
		merged = merged[:maxItems]
	}

	a.logger.Info("フィード集約が完了しました",
		slog.Int("sources", len(sources)),
		slog.Int("items", len(merged)),
	)

	return merged
}

// fetchSource は1取得元からフィード文書をフェッチしてパースする。
func (a *Aggregator) fetchSource(ctx context.Context, source string) ([]model.FeedRecord, error) {
	start := time.Now()

	if err := a.ssrfGuard.ValidateURL(source); err != nil {
		return nil, fmt.Errorf("SSRF検証に失敗: %w", err)
	}

	client := a.ssrfGuard.NewSafeClient(a.timeout, a.maxBodySize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエスト作成に失敗: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエスト失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("取得元がステータス %d を返しました", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, a.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("レスポンス読み取り失敗: %w", err)
	}

	if a.metrics != nil {
		a.metrics.RecordFetchLatency(time.Since(start))
	}

	records := ParseEntries(string(body))

	a.logger.Info("取得元のフェッチが完了しました",
		slog.String("source", source),
		slog.Int("http_status", resp.StatusCode),
		slog.Int("items", len(records)),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)

	return records, nil
}
