// Package app はアプリケーションの起動とライフサイクル管理を提供する。
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/marketfeed/internal/config"
	"github.com/hitoshi/marketfeed/internal/forex"
	"github.com/hitoshi/marketfeed/internal/handler"
	"github.com/hitoshi/marketfeed/internal/logger"
	"github.com/hitoshi/marketfeed/internal/market"
	"github.com/hitoshi/marketfeed/internal/metrics"
	"github.com/hitoshi/marketfeed/internal/middleware"
	"github.com/hitoshi/marketfeed/internal/rss"
	"github.com/hitoshi/marketfeed/internal/security"
)

// shutdownTimeout はグレースフルシャットダウンの猶予時間。
const shutdownTimeout = 15 * time.Second

// Run はログをセットアップし、指定されたサブコマンドを実行する。
func Run(w io.Writer, args []string) error {
	logger.SetupDefault(w)

	cmd, err := ParseCommand(args)
	if err != nil {
		return err
	}

	switch cmd {
	case CommandHealthcheck:
		return runHealthcheck()
	default:
		return runServe()
	}
}

// runServe は依存関係を組み立ててHTTP APIサーバーを起動する。
// SIGINT/SIGTERM受信時はグレースフルシャットダウンする。
func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("設定の読み込みに失敗: %w", err)
	}

	log := slog.Default()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 全アウトバウンドHTTPはSSRF防止付きクライアントを経由する
	ssrfGuard := security.NewSSRFGuard()
	safeClient := ssrfGuard.NewSafeClient(cfg.FetchTimeout, cfg.FetchMaxSize)

	aggregator := rss.NewAggregator(
		ssrfGuard,
		log,
		collector,
		cfg.FetchTimeout,
		cfg.FetchMaxSize,
		cfg.FetchMaxConcurrent,
	)
	reconciler := forex.NewReconciler(safeClient, log, cfg.ForexAPIBase, cfg.ForexFallbackAPIBase)
	marketClient := market.NewClient(
		safeClient,
		log,
		collector,
		cfg.MarketAPIBase,
		cfg.CryptoAPIBase,
		cfg.MarketBypassName,
		cfg.MarketBypassValue,
	)

	rateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig(cfg.RateLimitGeneral))
	defer rateLimiter.Stop()

	router := handler.NewRouter(&handler.RouterDeps{
		Logger:            log,
		FeedHandler:       handler.NewFeedHandler(aggregator, cfg.FeedSources, cfg.FeedMaxItems),
		RatesHandler:      handler.NewRatesHandler(reconciler),
		MarketHandler:     handler.NewMarketHandler(marketClient),
		RateLimiter:       rateLimiter,
		MetricsHandler:    metrics.Handler(registry),
		Stats:             collector,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.Info("サーバーを起動します",
			slog.String("port", cfg.ServerPort),
			slog.Int("feed_sources", len(cfg.FeedSources)),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("サーバーの起動に失敗: %w", err)
	case <-ctx.Done():
	}

	log.Info("シャットダウンシグナルを受信しました")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("グレースフルシャットダウンに失敗: %w", err)
	}

	log.Info("サーバーを正常に停止しました")
	return nil
}

// runHealthcheck はローカルで稼働中のサーバーの/healthを呼び出す。
// 200以外のステータスまたは接続失敗はエラーを返す。
func runHealthcheck() error {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get("http://localhost:" + port + "/health")
	if err != nil {
		return fmt.Errorf("ヘルスチェックに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ヘルスチェックがステータス %d を返しました", resp.StatusCode)
	}
	return nil
}
