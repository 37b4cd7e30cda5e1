package market

import (
	"context"
	"testing"
)

// TestGetZseEtfs_Success はETF一覧を正規化し、方向を変化率から導出することをテストする。
func TestGetZseEtfs_Success(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{
		"/etfs": `{"etfs":[{"symbol":"OMTT","name":"Old Mutual Top Ten","price":102.5,"change_percent":0.8}]}`,
	})

	etfs, err := client.GetZseEtfs(context.Background())
	if err != nil {
		t.Fatalf("エラーは発生すべきではない: %v", err)
	}
	if len(etfs) != 1 {
		t.Fatalf("期待: 1 件, 結果: %d 件", len(etfs))
	}
	if etfs[0].Symbol != "OMTT" || etfs[0].Direction != "up" {
		t.Errorf("期待: {OMTT up}, 結果: %+v", etfs[0])
	}
}

// TestGetZseEtfs_NameOptional はETFのnameが省略可能であることをテストする。
func TestGetZseEtfs_NameOptional(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{
		"/etfs": `{"etfs":[{"symbol":"DMCS","price":55.0,"change_percent":-0.2}]}`,
	})

	etfs, err := client.GetZseEtfs(context.Background())
	if err != nil {
		t.Fatalf("エラーは発生すべきではない: %v", err)
	}
	if etfs[0].Name != "" {
		t.Errorf("name欠落時は空であるべき, 結果: %q", etfs[0].Name)
	}
}

// TestGetMarketActivity_Success は市場活動カウンターを正規化することをテストする。
func TestGetMarketActivity_Success(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{
		"/market-activity": `{"activity":[{"name":"trades","value":412},{"name":"volume","value":1250000}]}`,
	})

	counters, err := client.GetMarketActivity(context.Background())
	if err != nil {
		t.Fatalf("エラーは発生すべきではない: %v", err)
	}
	if len(counters) != 2 {
		t.Fatalf("期待: 2 件, 結果: %d 件", len(counters))
	}
	if counters[0].Name != "trades" || counters[0].Value != 412 {
		t.Errorf("期待: {trades 412}, 結果: %+v", counters[0])
	}
}

// TestGetTopGainers_Success は値上がり上位銘柄を正規化することをテストする。
func TestGetTopGainers_Success(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{
		"/top-gainers": `{"gainers":[{"symbol":"DLTA","price":15.2,"change_percent":4.7}]}`,
	})

	movers, err := client.GetTopGainers(context.Background())
	if err != nil {
		t.Fatalf("エラーは発生すべきではない: %v", err)
	}
	if movers[0].Symbol != "DLTA" || movers[0].Direction != "up" {
		t.Errorf("期待: {DLTA up}, 結果: %+v", movers[0])
	}
}

// TestGetTopLosers_Success は値下がり上位銘柄を正規化することをテストする。
func TestGetTopLosers_Success(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{
		"/top-losers": `{"losers":[{"symbol":"ECO","price":2.1,"change_percent":-3.4}]}`,
	})

	movers, err := client.GetTopLosers(context.Background())
	if err != nil {
		t.Fatalf("エラーは発生すべきではない: %v", err)
	}
	if movers[0].Direction != "down" {
		t.Errorf("期待: down, 結果: %s", movers[0].Direction)
	}
}

// TestGetWorldIndices_Success は世界指数を正規化することをテストする。
func TestGetWorldIndices_Success(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{
		"/world-indices": `{"indices":[{"name":"S&P 500","country":"United States","value":6100.5,"change_percent":0.3}]}`,
	})

	indices, err := client.GetWorldIndices(context.Background())
	if err != nil {
		t.Fatalf("エラーは発生すべきではない: %v", err)
	}
	if indices[0].Name != "S&P 500" || indices[0].Country != "United States" {
		t.Errorf("期待: {S&P 500 United States}, 結果: %+v", indices[0])
	}
}
