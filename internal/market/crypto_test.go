package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// --- FormatPrice のテスト ---

// TestFormatPrice_SubDollar は1.0未満の価格を小数4桁固定で整形することをテストする。
func TestFormatPrice_SubDollar(t *testing.T) {
	if got := FormatPrice(0.0734); got != "$0.0734" {
		t.Errorf("期待: %q, 結果: %q", "$0.0734", got)
	}
}

// TestFormatPrice_SubDollarPadsZeros は1.0未満の価格で末尾のゼロを保持することをテストする。
func TestFormatPrice_SubDollarPadsZeros(t *testing.T) {
	if got := FormatPrice(0.5); got != "$0.5000" {
		t.Errorf("期待: %q, 結果: %q", "$0.5000", got)
	}
}

// TestFormatPrice_Grouped は1.0以上の価格を桁区切り付きで整形することをテストする。
func TestFormatPrice_Grouped(t *testing.T) {
	if got := FormatPrice(43250.5); got != "$43,250.5" {
		t.Errorf("期待: %q, 結果: %q", "$43,250.5", got)
	}
}

// TestFormatPrice_MillionsGrouped は百万単位でも桁区切りが正しいことをテストする。
func TestFormatPrice_MillionsGrouped(t *testing.T) {
	if got := FormatPrice(1234567.89); got != "$1,234,567.89" {
		t.Errorf("期待: %q, 結果: %q", "$1,234,567.89", got)
	}
}

// TestFormatPrice_ExactlyOne は境界値1.0が桁区切り整形側に入ることをテストする。
func TestFormatPrice_ExactlyOne(t *testing.T) {
	if got := FormatPrice(1.0); got != "$1" {
		t.Errorf("期待: %q, 結果: %q", "$1", got)
	}
}

// --- FormatChangePercent のテスト ---

// TestFormatChangePercent_PositivePrefix は非負の変化率に"+"を前置することをテストする。
func TestFormatChangePercent_PositivePrefix(t *testing.T) {
	if got := FormatChangePercent(2.5); got != "+2.50%" {
		t.Errorf("期待: %q, 結果: %q", "+2.50%", got)
	}
}

// TestFormatChangePercent_Negative は負の変化率をそのまま整形することをテストする。
func TestFormatChangePercent_Negative(t *testing.T) {
	if got := FormatChangePercent(-2.346); got != "-2.35%" {
		t.Errorf("期待: %q, 結果: %q", "-2.35%", got)
	}
}

// TestFormatChangePercent_Zero はゼロに"+"を前置することをテストする。
func TestFormatChangePercent_Zero(t *testing.T) {
	if got := FormatChangePercent(0); got != "+0.00%" {
		t.Errorf("期待: %q, 結果: %q", "+0.00%", got)
	}
}

// TestFormatChangePercent_NegativeRoundsToZero は負のごく小さい値が0に丸められた場合に
// "+-0.00%"ではなく"+0.00%"になることをテストする。
func TestFormatChangePercent_NegativeRoundsToZero(t *testing.T) {
	if got := FormatChangePercent(-0.0001); got != "+0.00%" {
		t.Errorf("期待: %q, 結果: %q", "+0.00%", got)
	}
}

// TestFormatChangePercent_HalfUp は0.005がhalf-up（0から遠い方向）で丸められることをテストする。
// 0.125は2進数で正確に表現できるため丸めモードの差が観測できる。
func TestFormatChangePercent_HalfUp(t *testing.T) {
	if got := FormatChangePercent(0.125); got != "+0.13%" {
		t.Errorf("期待: %q, 結果: %q", "+0.13%", got)
	}
	if got := FormatChangePercent(-0.125); got != "-0.13%" {
		t.Errorf("期待: %q, 結果: %q", "-0.13%", got)
	}
}

// --- GetCryptoPrices のテスト ---

// newCryptoClient は暗号資産価格レスポンスを返すクライアントを生成する。
func newCryptoClient(t *testing.T, body string, status int) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewClient(&http.Client{Timeout: 5 * time.Second}, testLogger(), nil,
		srv.URL, srv.URL+"/simple/price", "", "")
}

// TestGetCryptoPrices_Success は3コインの価格と表示文字列を返すことをテストする。
func TestGetCryptoPrices_Success(t *testing.T) {
	client := newCryptoClient(t, `{
		"bitcoin":{"usd":43250.5,"usd_24h_change":2.5},
		"ethereum":{"usd":2280.0,"usd_24h_change":-1.25},
		"solana":{"usd":0.0734,"usd_24h_change":0}
	}`, http.StatusOK)

	prices, err := client.GetCryptoPrices(context.Background())
	if err != nil {
		t.Fatalf("エラーは発生すべきではない: %v", err)
	}
	if len(prices) != 3 {
		t.Fatalf("期待: 3 件, 結果: %d 件", len(prices))
	}

	btc := prices[0]
	if btc.Coin != "bitcoin" {
		t.Errorf("1件目: 期待 bitcoin, 結果: %s", btc.Coin)
	}
	if btc.PriceDisplay != "$43,250.5" {
		t.Errorf("価格表示: 期待 %q, 結果: %q", "$43,250.5", btc.PriceDisplay)
	}
	if btc.ChangeDisplay != "+2.50%" {
		t.Errorf("変化率表示: 期待 %q, 結果: %q", "+2.50%", btc.ChangeDisplay)
	}
	if btc.Direction != "up" {
		t.Errorf("方向: 期待 up, 結果: %s", btc.Direction)
	}

	eth := prices[1]
	if eth.ChangeDisplay != "-1.25%" {
		t.Errorf("変化率表示: 期待 %q, 結果: %q", "-1.25%", eth.ChangeDisplay)
	}
	if eth.Direction != "down" {
		t.Errorf("方向: 期待 down, 結果: %s", eth.Direction)
	}

	sol := prices[2]
	if sol.PriceDisplay != "$0.0734" {
		t.Errorf("価格表示: 期待 %q, 結果: %q", "$0.0734", sol.PriceDisplay)
	}
	if sol.Direction != "neutral" {
		t.Errorf("方向: 期待 neutral, 結果: %s", sol.Direction)
	}
}

// TestGetCryptoPrices_MissingChangeOptional は24時間変化率が欠落しても
// 価格は返され、変化率表示は空・方向はneutralになることをテストする。
func TestGetCryptoPrices_MissingChangeOptional(t *testing.T) {
	client := newCryptoClient(t, `{
		"bitcoin":{"usd":43250.5},
		"ethereum":{"usd":2280.0},
		"solana":{"usd":98.6}
	}`, http.StatusOK)

	prices, err := client.GetCryptoPrices(context.Background())
	if err != nil {
		t.Fatalf("エラーは発生すべきではない: %v", err)
	}
	if prices[0].Change24h != nil {
		t.Error("変化率はnilであるべき")
	}
	if prices[0].ChangeDisplay != "" {
		t.Errorf("変化率表示は空であるべき, 結果: %q", prices[0].ChangeDisplay)
	}
	if prices[0].Direction != "neutral" {
		t.Errorf("方向: 期待 neutral, 結果: %s", prices[0].Direction)
	}
}

// TestGetCryptoPrices_MissingCoinFailsClosed は固定コインセットの1つが欠落した場合に
// バッチ全体がエラーになることをテストする。
func TestGetCryptoPrices_MissingCoinFailsClosed(t *testing.T) {
	client := newCryptoClient(t, `{
		"bitcoin":{"usd":43250.5},
		"ethereum":{"usd":2280.0}
	}`, http.StatusOK)

	if _, err := client.GetCryptoPrices(context.Background()); err == nil {
		t.Error("コイン欠落はエラーになるべき")
	}
}

// TestGetCryptoPrices_WrongTypeFailsClosed は価格フィールドの型違いで
// バッチ全体がエラーになることをテストする。
func TestGetCryptoPrices_WrongTypeFailsClosed(t *testing.T) {
	client := newCryptoClient(t, `{
		"bitcoin":{"usd":"expensive"},
		"ethereum":{"usd":2280.0},
		"solana":{"usd":98.6}
	}`, http.StatusOK)

	if _, err := client.GetCryptoPrices(context.Background()); err == nil {
		t.Error("型違いの価格はエラーになるべき")
	}
}

// TestGetCryptoPrices_UpstreamError は取得元の非2xxステータスでエラーになることをテストする。
func TestGetCryptoPrices_UpstreamError(t *testing.T) {
	client := newCryptoClient(t, "", http.StatusServiceUnavailable)

	if _, err := client.GetCryptoPrices(context.Background()); err == nil {
		t.Error("非2xxステータスはエラーになるべき")
	}
}
