package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/marketfeed/internal/middleware"
)

// RouterDeps はルーター構築に必要な依存関係を保持する。
type RouterDeps struct {
	Logger *slog.Logger

	FeedHandler   *FeedHandler
	RatesHandler  *RatesHandler
	MarketHandler *MarketHandler

	RateLimiter *middleware.RateLimiter

	// MetricsHandler が非nilの場合、GET /metrics として公開する。
	MetricsHandler http.Handler

	// Stats はHTTPステータスのメトリクス通知先。nil可。
	Stats middleware.StatusRecorder

	CORSAllowedOrigin string
}

// NewRouter はAPIルーターを構築する。
// ミドルウェアの適用順: RequestID → Logging → Recovery → CORS。
// レート制限は /api 配下にのみ適用する（/health と /metrics は
// 監視系からの高頻度アクセスを許容するため対象外）。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.Stats))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	r.Get("/health", HealthHandler)

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		r.Get("/feed/items", deps.FeedHandler.GetFeedItems)

		r.Route("/rates", func(r chi.Router) {
			r.Get("/forex", deps.RatesHandler.GetForexRates)
			r.Get("/bank", deps.MarketHandler.GetBankRates)
		})

		r.Route("/markets", func(r chi.Router) {
			r.Get("/indices", deps.MarketHandler.GetMarketIndices)
			r.Get("/etfs", deps.MarketHandler.GetZseEtfs)
			r.Get("/activity", deps.MarketHandler.GetMarketActivity)
			r.Get("/gainers", deps.MarketHandler.GetTopGainers)
			r.Get("/losers", deps.MarketHandler.GetTopLosers)
			r.Get("/african", deps.MarketHandler.GetAfricanIndices)
			r.Get("/world", deps.MarketHandler.GetWorldIndices)
			r.Get("/crypto", deps.MarketHandler.GetCryptoPrices)
		})
	})

	return r
}
