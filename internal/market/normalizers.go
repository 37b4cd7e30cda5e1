package market

import (
	"context"

	"github.com/hitoshi/marketfeed/internal/model"
)

// GetBankRates は中央銀行公表レートを取得・正規化する。
// midフィールドは省略可能で、欠落時はbid/askの中間値を計算する。
func (c *Client) GetBankRates(ctx context.Context) ([]model.BankRate, error) {
	return fetchCollection(ctx, c, "/rates", "rates", func(obj map[string]any) (model.BankRate, error) {
		currency, err := requireString(obj, "currency")
		if err != nil {
			return model.BankRate{}, err
		}
		bid, err := requireNumber(obj, "bid")
		if err != nil {
			return model.BankRate{}, err
		}
		ask, err := requireNumber(obj, "ask")
		if err != nil {
			return model.BankRate{}, err
		}
		mid, err := optionalNumber(obj, "mid")
		if err != nil {
			return model.BankRate{}, err
		}

		rate := model.BankRate{Currency: currency, Bid: bid, Ask: ask}
		if mid != nil {
			rate.Mid = *mid
		} else {
			rate.Mid = (bid + ask) / 2
		}
		return rate, nil
	})
}

// GetMarketIndices は国内市場指数を取得・正規化する。
func (c *Client) GetMarketIndices(ctx context.Context) ([]model.IndexQuote, error) {
	return fetchCollection(ctx, c, "/indices", "indices", mapIndexQuote)
}

// GetZseEtfs は上場投資信託の一覧を取得・正規化する。
func (c *Client) GetZseEtfs(ctx context.Context) ([]model.EtfQuote, error) {
	return fetchCollection(ctx, c, "/etfs", "etfs", func(obj map[string]any) (model.EtfQuote, error) {
		symbol, err := requireString(obj, "symbol")
		if err != nil {
			return model.EtfQuote{}, err
		}
		name, err := optionalString(obj, "name")
		if err != nil {
			return model.EtfQuote{}, err
		}
		price, err := requireNumber(obj, "price")
		if err != nil {
			return model.EtfQuote{}, err
		}
		change, err := requireNumber(obj, "change_percent")
		if err != nil {
			return model.EtfQuote{}, err
		}

		return model.EtfQuote{
			Symbol:        symbol,
			Name:          name,
			Price:         price,
			ChangePercent: change,
			Direction:     model.DirectionFromChange(change),
		}, nil
	})
}

// GetMarketActivity は市場活動サマリー（約定件数・出来高等のカウンター）を
// 取得・正規化する。
func (c *Client) GetMarketActivity(ctx context.Context) ([]model.ActivityCounter, error) {
	return fetchCollection(ctx, c, "/market-activity", "activity", func(obj map[string]any) (model.ActivityCounter, error) {
		name, err := requireString(obj, "name")
		if err != nil {
			return model.ActivityCounter{}, err
		}
		value, err := requireNumber(obj, "value")
		if err != nil {
			return model.ActivityCounter{}, err
		}
		return model.ActivityCounter{Name: name, Value: value}, nil
	})
}

// GetTopGainers は値上がり上位銘柄を取得・正規化する。
func (c *Client) GetTopGainers(ctx context.Context) ([]model.MoverQuote, error) {
	return fetchCollection(ctx, c, "/top-gainers", "gainers", mapMoverQuote)
}

// GetTopLosers は値下がり上位銘柄を取得・正規化する。
func (c *Client) GetTopLosers(ctx context.Context) ([]model.MoverQuote, error) {
	return fetchCollection(ctx, c, "/top-losers", "losers", mapMoverQuote)
}

// GetAfricanIndices はアフリカ地域指数を取得・正規化する。
func (c *Client) GetAfricanIndices(ctx context.Context) ([]model.RegionalIndex, error) {
	return fetchCollection(ctx, c, "/african-indices", "indices", mapRegionalIndex)
}

// GetWorldIndices は世界の主要指数を取得・正規化する。
func (c *Client) GetWorldIndices(ctx context.Context) ([]model.RegionalIndex, error) {
	return fetchCollection(ctx, c, "/world-indices", "indices", mapRegionalIndex)
}

// mapIndexQuote は指数レコードのマッパー。
// directionフィールドは取得元の値をそのまま採用し、
// 欠落時は変化率の符号から計算する。
func mapIndexQuote(obj map[string]any) (model.IndexQuote, error) {
	name, err := requireString(obj, "name")
	if err != nil {
		return model.IndexQuote{}, err
	}
	value, err := requireNumber(obj, "value")
	if err != nil {
		return model.IndexQuote{}, err
	}
	change, err := requireNumber(obj, "change_percent")
	if err != nil {
		return model.IndexQuote{}, err
	}
	direction, err := optionalString(obj, "direction")
	if err != nil {
		return model.IndexQuote{}, err
	}

	quote := model.IndexQuote{
		Name:          name,
		Value:         value,
		ChangePercent: change,
	}
	switch direction {
	case string(model.DirectionUp), string(model.DirectionDown), string(model.DirectionNeutral):
		quote.Direction = model.Direction(direction)
	default:
		quote.Direction = model.DirectionFromChange(change)
	}
	return quote, nil
}

// mapMoverQuote は値上がり・値下がり上位銘柄レコードのマッパー。
func mapMoverQuote(obj map[string]any) (model.MoverQuote, error) {
	symbol, err := requireString(obj, "symbol")
	if err != nil {
		return model.MoverQuote{}, err
	}
	price, err := requireNumber(obj, "price")
	if err != nil {
		return model.MoverQuote{}, err
	}
	change, err := requireNumber(obj, "change_percent")
	if err != nil {
		return model.MoverQuote{}, err
	}

	return model.MoverQuote{
		Symbol:        symbol,
		Price:         price,
		ChangePercent: change,
		Direction:     model.DirectionFromChange(change),
	}, nil
}

// mapRegionalIndex は地域指数レコードのマッパー。countryは省略可能。
func mapRegionalIndex(obj map[string]any) (model.RegionalIndex, error) {
	name, err := requireString(obj, "name")
	if err != nil {
		return model.RegionalIndex{}, err
	}
	country, err := optionalString(obj, "country")
	if err != nil {
		return model.RegionalIndex{}, err
	}
	value, err := requireNumber(obj, "value")
	if err != nil {
		return model.RegionalIndex{}, err
	}
	change, err := requireNumber(obj, "change_percent")
	if err != nil {
		return model.RegionalIndex{}, err
	}

	return model.RegionalIndex{
		Name:          name,
		Country:       country,
		Value:         value,
		ChangePercent: change,
		Direction:     model.DirectionFromChange(change),
	}, nil
}
