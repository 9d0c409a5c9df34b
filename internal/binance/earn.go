package binance

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/cexstat/internal/domain"
)

const earnPageSize = 100

type earnPage[T any] struct {
	Rows  []T `json:"rows"`
	Total int `json:"total"`
}

type flexiblePosition struct {
	Asset       string `json:"asset"`
	TotalAmount string `json:"totalAmount"`
	ProductID   string `json:"productId"`
}

type lockedPosition struct {
	Asset      string `json:"asset"`
	Amount     string `json:"amount"`
	PositionID int64  `json:"positionId"`
}

// EarnBalances returns Simple Earn flexible and locked positions summed per
// asset. Everything is reported as Free; earn balances have no locked part
// in the spot sense.
func (c *Client) EarnBalances(ctx context.Context) ([]domain.Balance, error) {
	totals := make(map[string]decimal.Decimal)
	add := func(asset, amount string) {
		v := domain.SafeParse(amount)
		if v.IsPositive() {
			totals[asset] = totals[asset].Add(v)
		}
	}

	err := fetchEarnPages(ctx, c, "/sapi/v1/simple-earn/flexible/position", func(p flexiblePosition) {
		add(p.Asset, p.TotalAmount)
	})
	if err != nil {
		return nil, fmt.Errorf("fetching flexible earn positions: %w", err)
	}

	err = fetchEarnPages(ctx, c, "/sapi/v1/simple-earn/locked/position", func(p lockedPosition) {
		add(p.Asset, p.Amount)
	})
	if err != nil {
		return nil, fmt.Errorf("fetching locked earn positions: %w", err)
	}

	balances := make([]domain.Balance, 0, len(totals))
	for asset, total := range totals {
		balances = append(balances, domain.Balance{Asset: asset, Free: total.String(), Locked: "0"})
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].Asset < balances[j].Asset })
	return balances, nil
}

func fetchEarnPages[T any](ctx context.Context, c *Client, path string, visit func(T)) error {
	for current := 1; ; current++ {
		params := url.Values{}
		params.Set("current", strconv.Itoa(current))
		params.Set("size", strconv.Itoa(earnPageSize))

		var page earnPage[T]
		if err := c.signedGet(ctx, path, params, &page); err != nil {
			return err
		}
		for _, row := range page.Rows {
			visit(row)
		}
		if len(page.Rows) == 0 || current*earnPageSize >= page.Total {
			return nil
		}
	}
}
