package binance

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/mtlprog/cexstat/internal/domain"
)

type accountResponse struct {
	Balances []domain.Balance `json:"balances"`
}

// AccountBalances returns the spot balances with a positive free or locked amount.
func (c *Client) AccountBalances(ctx context.Context) ([]domain.Balance, error) {
	var resp accountResponse
	if err := c.signedGet(ctx, "/api/v3/account", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching account: %w", err)
	}
	return lo.Filter(resp.Balances, func(b domain.Balance, _ int) bool {
		return domain.SafeParse(b.Free).IsPositive() || domain.SafeParse(b.Locked).IsPositive()
	}), nil
}
