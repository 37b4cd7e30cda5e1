package market

import (
	"context"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/hitoshi/marketfeed/internal/model"
)

// cryptoCoins は暗号資産価格エンドポイントから取得する固定コインセット。
var cryptoCoins = []string{"bitcoin", "ethereum", "solana"}

// pricePrinter は価格の桁区切り整形用プリンター。
var pricePrinter = message.NewPrinter(language.English)

// GetCryptoPrices は暗号資産価格を取得・正規化する。
// レスポンスは {コイン名: {usd: 数値, usd_24h_change?: 数値}} の形式。
// 固定コインセットのいずれかが欠落または型違いの場合は
// バッチ全体をエラーとして返す（フェイルクローズド）。
func (c *Client) GetCryptoPrices(ctx context.Context) ([]model.CryptoPrice, error) {
	url := fmt.Sprintf("%s?ids=%s&vs_currencies=usd&include_24hr_change=true",
		c.cryptoURL, strings.Join(cryptoCoins, ","))

	doc, err := c.getJSON(ctx, url)
	if err != nil {
		c.recordFailure("crypto", err)
		return nil, err
	}

	prices := make([]model.CryptoPrice, 0, len(cryptoCoins))
	for _, coin := range cryptoCoins {
		raw, ok := doc[coin]
		if !ok {
			err := model.NewSchemaViolationError(fmt.Sprintf("コイン %q がレスポンスに含まれていません", coin))
			c.recordFailure("crypto", err)
			return nil, err
		}
		obj, ok := raw.(map[string]any)
		if !ok {
			err := model.NewSchemaViolationError(fmt.Sprintf("コイン %q がオブジェクトではありません", coin))
			c.recordFailure("crypto", err)
			return nil, err
		}

		usd, err := requireNumber(obj, "usd")
		if err != nil {
			violation := model.NewSchemaViolationError(fmt.Sprintf("%s: %s", coin, err.Error()))
			c.recordFailure("crypto", violation)
			return nil, violation
		}
		change, err := optionalNumber(obj, "usd_24h_change")
		if err != nil {
			violation := model.NewSchemaViolationError(fmt.Sprintf("%s: %s", coin, err.Error()))
			c.recordFailure("crypto", violation)
			return nil, violation
		}

		price := model.CryptoPrice{
			Coin:         coin,
			PriceUSD:     usd,
			Change24h:    change,
			PriceDisplay: FormatPrice(usd),
			Direction:    model.DirectionNeutral,
		}
		if change != nil {
			price.ChangeDisplay = FormatChangePercent(*change)
			price.Direction = model.DirectionFromChange(*change)
		}
		prices = append(prices, price)
	}

	if c.metrics != nil {
		c.metrics.RecordFetchSuccess("crypto")
	}
	return prices, nil
}

// FormatPrice は価格を表示用に整形する。
// 1.0未満は小数4桁固定、1.0以上はロケールの桁区切り付きで整形する。
func FormatPrice(v float64) string {
	if v < 1.0 {
		return fmt.Sprintf("$%.4f", v)
	}
	return "$" + pricePrinter.Sprintf("%v", number.Decimal(v))
}

// FormatChangePercent は変化率を小数2桁で整形する。
// 丸めはhalf-up（0.005は絶対値が大きくなる方向へ丸める）で行い、
// 非負の場合は "+" を前置する。
func FormatChangePercent(c float64) string {
	rounded := roundHalfUp(c, 2)
	if rounded >= 0 {
		return fmt.Sprintf("+%.2f%%", rounded)
	}
	return fmt.Sprintf("%.2f%%", rounded)
}

// roundHalfUp は指定桁数でhalf-up丸め（0から遠い方向への丸め）を行う。
func roundHalfUp(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	abs := math.Floor(math.Abs(v)*shift+0.5) / shift
	if abs == 0 {
		return 0
	}
	if v < 0 {
		return -abs
	}
	return abs
}
