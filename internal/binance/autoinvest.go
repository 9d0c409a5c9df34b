package binance

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/mtlprog/cexstat/internal/domain"
)

const (
	autoInvestWindow   = 30 * 24 * time.Hour
	autoInvestPageSize = 100
)

// autoInvestEarliest is the start of Binance history; the walk stops here.
var autoInvestEarliest = time.Date(2017, time.July, 1, 0, 0, 0, 0, time.UTC)

type autoInvestPage struct {
	Total int                               `json:"total"`
	List  []domain.RawAutoInvestTransaction `json:"list"`
}

// AutoInvestHistory returns every successful auto-invest execution. The
// endpoint only accepts 30-day ranges, so the history is walked backwards
// window by window from now.
func (c *Client) AutoInvestHistory(ctx context.Context) ([]domain.RawAutoInvestTransaction, error) {
	var all []domain.RawAutoInvestTransaction

	end := c.now()
	for end.After(autoInvestEarliest) {
		start := end.Add(-autoInvestWindow)
		if start.Before(autoInvestEarliest) {
			start = autoInvestEarliest
		}

		for current := 1; ; current++ {
			params := url.Values{}
			params.Set("startTime", strconv.FormatInt(start.UnixMilli(), 10))
			params.Set("endTime", strconv.FormatInt(end.UnixMilli(), 10))
			params.Set("size", strconv.Itoa(autoInvestPageSize))
			params.Set("current", strconv.Itoa(current))

			var page autoInvestPage
			if err := c.signedGet(ctx, "/sapi/v1/lending/auto-invest/history/list", params, &page); err != nil {
				return nil, fmt.Errorf("fetching auto-invest history: %w", err)
			}
			if len(page.List) == 0 {
				break
			}
			for _, tx := range page.List {
				if tx.IsSuccess() {
					all = append(all, tx)
				}
			}
			if current*autoInvestPageSize >= page.Total {
				break
			}
		}

		end = start
	}

	return all, nil
}
