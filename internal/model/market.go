package model

// Direction は市場データの3値の方向タグ。
// 符号付き変化量から導出するか、取得元の値をそのまま採用する。
type Direction string

const (
	// DirectionUp は上昇を示す。
	DirectionUp Direction = "up"
	// DirectionDown は下落を示す。
	DirectionDown Direction = "down"
	// DirectionNeutral は変化なしを示す。
	DirectionNeutral Direction = "neutral"
)

// DirectionFromChange は符号付き変化量からDirectionを導出する。
func DirectionFromChange(change float64) Direction {
	switch {
	case change > 0:
		return DirectionUp
	case change < 0:
		return DirectionDown
	default:
		return DirectionNeutral
	}
}

// BankRate は中央銀行公表の1通貨の対USDレートを表す。
type BankRate struct {
	Currency string  `json:"currency"`
	Bid      float64 `json:"bid"`
	Ask      float64 `json:"ask"`
	Mid      float64 `json:"mid"`
}

// IndexQuote は市場指数の1スナップショットを表す。
type IndexQuote struct {
	Name          string    `json:"name"`
	Value         float64   `json:"value"`
	ChangePercent float64   `json:"change_percent"`
	Direction     Direction `json:"direction"`
}

// EtfQuote は上場投資信託の1スナップショットを表す。
type EtfQuote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	ChangePercent float64   `json:"change_percent"`
	Direction     Direction `json:"direction"`
}

// ActivityCounter は市場活動サマリーの1カウンター（約定件数・出来高など）を表す。
type ActivityCounter struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MoverQuote は値上がり・値下がり上位銘柄の1スナップショットを表す。
type MoverQuote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	ChangePercent float64   `json:"change_percent"`
	Direction     Direction `json:"direction"`
}

// RegionalIndex はアフリカ地域・世界の指数の1スナップショットを表す。
type RegionalIndex struct {
	Name          string    `json:"name"`
	Country       string    `json:"country,omitempty"`
	Value         float64   `json:"value"`
	ChangePercent float64   `json:"change_percent"`
	Direction     Direction `json:"direction"`
}

// CryptoPrice は暗号資産の1価格スナップショットを表す。
// PriceDisplay/ChangeDisplayは表示用に整形済みの文字列。
type CryptoPrice struct {
	Coin          string    `json:"coin"`
	PriceUSD      float64   `json:"price_usd"`
	Change24h     *float64  `json:"change_24h,omitempty"`
	PriceDisplay  string    `json:"price_display"`
	ChangeDisplay string    `json:"change_display,omitempty"`
	Direction     Direction `json:"direction"`
}
