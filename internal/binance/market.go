package binance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mtlprog/cexstat/internal/domain"
)

// ErrInvalidInterval is returned for a kline interval Binance does not support.
var ErrInvalidInterval = errors.New("invalid kline interval")

var allowedIntervals = map[string]bool{
	"1m": true, "3m": true, "5m": true, "15m": true, "30m": true,
	"1h": true, "2h": true, "4h": true, "6h": true, "8h": true, "12h": true,
	"1d": true, "3d": true, "1w": true, "1M": true,
}

// ValidInterval reports whether interval is accepted by Klines.
func ValidInterval(interval string) bool {
	return allowedIntervals[interval]
}

// TickerPrices returns the last price of each requested symbol. No request is
// made for an empty list.
func (c *Client) TickerPrices(ctx context.Context, symbols []string) ([]domain.TickerPrice, error) {
	if len(symbols) == 0 {
		return []domain.TickerPrice{}, nil
	}
	encoded, err := json.Marshal(symbols)
	if err != nil {
		return nil, fmt.Errorf("encoding symbols: %w", err)
	}

	params := url.Values{}
	params.Set("symbols", string(encoded))

	var prices []domain.TickerPrice
	if err := c.publicGet(ctx, "/api/v3/ticker/price", params, &prices); err != nil {
		return nil, fmt.Errorf("fetching ticker prices: %w", err)
	}
	return prices, nil
}

// Klines returns close prices of symbol for charting, one point per candle.
func (c *Client) Klines(ctx context.Context, symbol, interval string, limit int) ([]domain.Kline, error) {
	if !ValidInterval(interval) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("limit", strconv.Itoa(limit))

	var raw [][]json.RawMessage
	if err := c.publicGet(ctx, "/api/v3/klines", params, &raw); err != nil {
		return nil, fmt.Errorf("fetching klines for %s: %w", symbol, err)
	}

	klines := make([]domain.Kline, 0, len(raw))
	for _, k := range raw {
		if len(k) < 5 {
			continue
		}
		var openTime int64
		var closePrice string
		if err := json.Unmarshal(k[0], &openTime); err != nil {
			return nil, fmt.Errorf("parsing kline open time: %w", err)
		}
		if err := json.Unmarshal(k[4], &closePrice); err != nil {
			return nil, fmt.Errorf("parsing kline close: %w", err)
		}
		klines = append(klines, domain.Kline{
			Time:  openTime / 1000,
			Value: domain.SafeParse(closePrice),
		})
	}
	return klines, nil
}
