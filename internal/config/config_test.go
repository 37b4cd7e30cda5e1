package config

import (
	"testing"
	"time"
)

// TestLoad_MissingRequired は必須環境変数MARKET_API_BASEの未設定でエラーになることをテストする。
func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("MARKET_API_BASE", "")

	if _, err := Load(); err == nil {
		t.Error("MARKET_API_BASE未設定はエラーになるべき")
	}
}

// TestLoad_Defaults は省略可能な設定がデフォルト値で埋まることをテストする。
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MARKET_API_BASE", "https://market.example.com/api")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("エラーは発生すべきではない: %v", err)
	}

	if len(cfg.FeedSources) != 3 {
		t.Errorf("デフォルトのフィード取得元: 期待 3 件, 結果: %d 件", len(cfg.FeedSources))
	}
	if cfg.FeedMaxItems != 50 {
		t.Errorf("FeedMaxItems: 期待 50, 結果: %d", cfg.FeedMaxItems)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout: 期待 10s, 結果: %s", cfg.FetchTimeout)
	}
	if cfg.FetchMaxSize != 5242880 {
		t.Errorf("FetchMaxSize: 期待 5242880, 結果: %d", cfg.FetchMaxSize)
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral: 期待 120, 結果: %d", cfg.RateLimitGeneral)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort: 期待 8080, 結果: %s", cfg.ServerPort)
	}
	if cfg.MarketBypassName != "Bypass-Tunnel-Reminder" {
		t.Errorf("MarketBypassName: 期待 Bypass-Tunnel-Reminder, 結果: %s", cfg.MarketBypassName)
	}
}

// TestLoad_RequiredValue は必須環境変数の値が設定に反映されることをテストする。
func TestLoad_RequiredValue(t *testing.T) {
	t.Setenv("MARKET_API_BASE", "https://market.example.com/api")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("エラーは発生すべきではない: %v", err)
	}
	if cfg.MarketAPIBase != "https://market.example.com/api" {
		t.Errorf("期待: https://market.example.com/api, 結果: %s", cfg.MarketAPIBase)
	}
}

// TestLoad_FeedSourcesList はカンマ区切りのFEED_SOURCESをパースすることをテストする。
func TestLoad_FeedSourcesList(t *testing.T) {
	t.Setenv("MARKET_API_BASE", "https://market.example.com/api")
	t.Setenv("FEED_SOURCES", "https://a.example.com/feed, https://b.example.com/feed ,,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("エラーは発生すべきではない: %v", err)
	}
	if len(cfg.FeedSources) != 2 {
		t.Fatalf("期待: 2 件, 結果: %d 件", len(cfg.FeedSources))
	}
	if cfg.FeedSources[0] != "https://a.example.com/feed" {
		t.Errorf("空白が除去されるべき, 結果: %q", cfg.FeedSources[0])
	}
	if cfg.FeedSources[1] != "https://b.example.com/feed" {
		t.Errorf("空白が除去されるべき, 結果: %q", cfg.FeedSources[1])
	}
}

// TestLoad_InvalidIntFallsBack は不正な整数値でデフォルトにフォールバックすることをテストする。
func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("MARKET_API_BASE", "https://market.example.com/api")
	t.Setenv("FEED_MAX_ITEMS", "many")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("エラーは発生すべきではない: %v", err)
	}
	if cfg.FeedMaxItems != 50 {
		t.Errorf("期待: デフォルトの50, 結果: %d", cfg.FeedMaxItems)
	}
}

// TestLoad_DurationOverride はFETCH_TIMEOUTのDuration形式を読み込むことをテストする。
func TestLoad_DurationOverride(t *testing.T) {
	t.Setenv("MARKET_API_BASE", "https://market.example.com/api")
	t.Setenv("FETCH_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("エラーは発生すべきではない: %v", err)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("期待: 30s, 結果: %s", cfg.FetchTimeout)
	}
}
