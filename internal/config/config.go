// Package config はアプリケーション設定を提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Feed
	FeedSources        []string
	FeedMaxItems       int
	FetchTimeout       time.Duration
	FetchMaxSize       int64
	FetchMaxConcurrent int

	// Forex
	ForexAPIBase         string
	ForexFallbackAPIBase string

	// Market data
	MarketAPIBase     string
	MarketBypassName  string
	MarketBypassValue string
	CryptoAPIBase     string

	// Rate Limit
	RateLimitGeneral int

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// defaultFeedSources はFEED_SOURCES未設定時のフィード取得元。
var defaultFeedSources = []string{
	"https://www.herald.co.zw/feed/",
	"https://www.newsday.co.zw/feed/",
	"https://www.chronicle.co.zw/feed/",
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.MarketAPIBase = os.Getenv("MARKET_API_BASE")
	if cfg.MarketAPIBase == "" {
		missing = append(missing, "MARKET_API_BASE")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.FeedSources = getEnvList("FEED_SOURCES", defaultFeedSources)
	cfg.FeedMaxItems = getEnvInt("FEED_MAX_ITEMS", 50)
	cfg.FetchTimeout = getEnvDuration("FETCH_TIMEOUT", 10*time.Second)
	cfg.FetchMaxSize = getEnvInt64("FETCH_MAX_SIZE", 5242880)
	cfg.FetchMaxConcurrent = getEnvInt("FETCH_MAX_CONCURRENT", 4)
	cfg.ForexAPIBase = getEnvString("FOREX_API_BASE", "https://api.frankfurter.dev/v1")
	cfg.ForexFallbackAPIBase = getEnvString("FOREX_FALLBACK_API_BASE", "https://open.er-api.com/v6/latest/USD")
	cfg.MarketBypassName = getEnvString("MARKET_BYPASS_HEADER_NAME", "Bypass-Tunnel-Reminder")
	cfg.MarketBypassValue = getEnvString("MARKET_BYPASS_HEADER_VALUE", "true")
	cfg.CryptoAPIBase = getEnvString("CRYPTO_API_BASE", "https://api.coingecko.com/api/v3/simple/price")
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// getEnvList はカンマ区切りの環境変数を文字列スライスとして読み込む。
// 空要素はスキップする。
func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return defaultVal
	}
	return result
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
