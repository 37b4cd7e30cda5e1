package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// unavailableSentinel はレート・変化量が取得不能な場合のJSON表現。
const unavailableSentinel = `"unavailable"`

// NullableDecimal は数値または「取得不能」を表す値。
// JSONでは数値、取得不能時は "unavailable" 文字列として出力される。
type NullableDecimal struct {
	Value     float64
	Available bool
}

// Decimal は利用可能なNullableDecimalを生成する。
func Decimal(v float64) NullableDecimal {
	return NullableDecimal{Value: v, Available: true}
}

// Unavailable は取得不能を表すNullableDecimalを生成する。
func Unavailable() NullableDecimal {
	return NullableDecimal{}
}

// MarshalJSON はjson.Marshalerを実装する。
func (d NullableDecimal) MarshalJSON() ([]byte, error) {
	if !d.Available {
		return []byte(unavailableSentinel), nil
	}
	return json.Marshal(d.Value)
}

// UnmarshalJSON はjson.Unmarshalerを実装する。
func (d *NullableDecimal) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte(unavailableSentinel)) {
		*d = NullableDecimal{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("NullableDecimalのデコードに失敗: %w", err)
	}
	*d = NullableDecimal{Value: v, Available: true}
	return nil
}

// Trend は変化量の符号から導出される3値の方向タグ。
type Trend string

const (
	// TrendUp は変化量が正であることを示す。
	TrendUp Trend = "up"
	// TrendDown は変化量が負であることを示す。
	TrendDown Trend = "down"
	// TrendStable は変化量が0または取得不能であることを示す。
	TrendStable Trend = "stable"
)

// TrendFromChange は変化量からTrendを導出する。
// 変化量が取得不能または0の場合はstable、正ならup、負ならdown。
func TrendFromChange(change NullableDecimal) Trend {
	if !change.Available || change.Value == 0 {
		return TrendStable
	}
	if change.Value > 0 {
		return TrendUp
	}
	return TrendDown
}

// RatePoint は1通貨ペアのレートスナップショットを表す。
// リクエストごとに再計算され、キャッシュされない。
type RatePoint struct {
	// Pair は "USD/EUR" 形式のペアラベル。
	Pair   string          `json:"pair"`
	Rate   NullableDecimal `json:"rate"`
	Change NullableDecimal `json:"change"`
	Trend  Trend           `json:"trend"`
}

// NewRatePoint はレートと変化量からRatePointを構築する。
// TrendはChangeの符号規則から自動的に導出される。
func NewRatePoint(pair string, rate, change NullableDecimal) RatePoint {
	return RatePoint{
		Pair:   pair,
		Rate:   rate,
		Change: change,
		Trend:  TrendFromChange(change),
	}
}
