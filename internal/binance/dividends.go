package binance

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/mtlprog/cexstat/internal/domain"
)

const (
	dividendWindow   = 90 * 24 * time.Hour
	dividendLookback = 365 * 24 * time.Hour
	dividendLimit    = 500
)

type dividendPage struct {
	Rows  []domain.RawDividend `json:"rows"`
	Total int                  `json:"total"`
}

// DividendHistory returns earn interest and distribution records for the
// last year, across all assets.
func (c *Client) DividendHistory(ctx context.Context) ([]domain.RawDividend, error) {
	var all []domain.RawDividend
	seen := make(map[int64]bool)

	now := c.now()
	earliest := now.Add(-dividendLookback)
	for end := now; end.After(earliest); {
		start := end.Add(-dividendWindow)
		if start.Before(earliest) {
			start = earliest
		}

		rows, err := c.dividendWindow(ctx, start, end, seen)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)

		end = start
	}

	return all, nil
}

// dividendWindow pages through [start, end] from the newest record back.
// A full page moves end to the oldest divTime returned; that millisecond is
// requested again so records sharing it are not lost, and seen drops repeats.
func (c *Client) dividendWindow(ctx context.Context, start, end time.Time, seen map[int64]bool) ([]domain.RawDividend, error) {
	var rows []domain.RawDividend
	for {
		params := url.Values{}
		params.Set("startTime", strconv.FormatInt(start.UnixMilli(), 10))
		params.Set("endTime", strconv.FormatInt(end.UnixMilli(), 10))
		params.Set("limit", strconv.Itoa(dividendLimit))

		var page dividendPage
		if err := c.signedGet(ctx, "/sapi/v1/asset/assetDividend", params, &page); err != nil {
			return nil, fmt.Errorf("fetching dividend history: %w", err)
		}
		for _, d := range page.Rows {
			if !seen[d.ID] {
				seen[d.ID] = true
				rows = append(rows, d)
			}
		}

		if len(page.Rows) == 0 || (len(page.Rows) < dividendLimit && page.Total <= len(page.Rows)) {
			return rows, nil
		}

		oldest := time.UnixMilli(lo.MinBy(page.Rows, func(a, b domain.RawDividend) bool {
			return a.DivTime < b.DivTime
		}).DivTime)
		if !oldest.Before(end) {
			// a full page within one millisecond
			oldest = end.Add(-time.Millisecond)
		}
		if oldest.Before(start) {
			return rows, nil
		}
		end = oldest
	}
}
