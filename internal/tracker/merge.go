package tracker

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/cexstat/internal/domain"
)

// mergeBalances sums spot and earn balances per asset, keeping the order in
// which assets first appear. Assets that net to zero are dropped.
func mergeBalances(spot, earn []domain.Balance) []domain.Balance {
	type amounts struct {
		free, locked decimal.Decimal
	}

	var order []string
	byAsset := make(map[string]*amounts)
	for _, b := range append(append([]domain.Balance{}, spot...), earn...) {
		a, ok := byAsset[b.Asset]
		if !ok {
			a = &amounts{}
			byAsset[b.Asset] = a
			order = append(order, b.Asset)
		}
		a.free = a.free.Add(domain.SafeParse(b.Free))
		a.locked = a.locked.Add(domain.SafeParse(b.Locked))
	}

	return lo.FilterMap(order, func(asset string, _ int) (domain.Balance, bool) {
		a := byAsset[asset]
		if !a.free.IsPositive() && !a.locked.IsPositive() {
			return domain.Balance{}, false
		}
		return domain.Balance{Asset: asset, Free: a.free.String(), Locked: a.locked.String()}, true
	})
}

// tradedAssets returns the balances that are not stable assets.
func tradedAssets(balances []domain.Balance, stable map[string]bool) []domain.Balance {
	return lo.Filter(balances, func(b domain.Balance, _ int) bool {
		return !stable[b.Asset]
	})
}
