// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// フィード集約と市場データ取得の両方から利用する。
type MetricsCollector interface {
	RecordFetchSuccess(upstream string)
	RecordFetchFailure(upstream string, reason string)
	RecordFetchLatency(duration time.Duration)
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	fetchSuccess *prometheus.CounterVec
	fetchFail    *prometheus.CounterVec
	fetchLatency prometheus.Histogram
	httpStatus   *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		fetchSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketfeed_upstream_fetch_success_total",
			Help: "取得元別のフェッチ成功の合計数",
		}, []string{"upstream"}),
		fetchFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketfeed_upstream_fetch_fail_total",
			Help: "取得元別のフェッチ失敗の合計数",
		}, []string{"upstream"}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "marketfeed_upstream_fetch_latency_seconds",
			Help:    "取得元フェッチのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketfeed_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.fetchSuccess,
		c.fetchFail,
		c.fetchLatency,
		c.httpStatus,
	)

	return c
}

// RecordFetchSuccess は取得元のフェッチ成功を記録する。
func (c *Collector) RecordFetchSuccess(upstream string) {
	c.fetchSuccess.WithLabelValues(upstream).Inc()
}

// RecordFetchFailure は取得元のフェッチ失敗を記録する。
func (c *Collector) RecordFetchFailure(upstream string, reason string) {
	c.fetchFail.WithLabelValues(upstream).Inc()
}

// RecordFetchLatency は取得元フェッチのレイテンシを記録する。
func (c *Collector) RecordFetchLatency(duration time.Duration) {
	c.fetchLatency.Observe(duration.Seconds())
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
