package binance

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mtlprog/cexstat/internal/domain"
)

const tradeLimit = 1000

// AllTrades returns the complete fill history of symbol, oldest first.
//
// Pages are chained with fromId, which is inclusive: the first record of a
// follow-up page repeats the last record of the previous one and is dropped.
func (c *Client) AllTrades(ctx context.Context, symbol string) ([]domain.RawTrade, error) {
	var all []domain.RawTrade
	var fromID *int64

	for {
		params := url.Values{}
		params.Set("symbol", symbol)
		params.Set("limit", strconv.Itoa(tradeLimit))
		if fromID != nil {
			params.Set("fromId", strconv.FormatInt(*fromID, 10))
		}

		var page []domain.RawTrade
		if err := c.signedGet(ctx, "/api/v3/myTrades", params, &page); err != nil {
			return nil, fmt.Errorf("fetching trades for %s: %w", symbol, err)
		}
		if len(page) == 0 {
			break
		}
		if fromID != nil && page[0].ID == *fromID {
			page = page[1:]
		}
		if len(page) == 0 {
			break
		}

		all = append(all, page...)
		if len(page) < tradeLimit-1 {
			break
		}
		last := page[len(page)-1].ID
		fromID = &last
	}

	return all, nil
}
