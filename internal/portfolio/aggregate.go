package portfolio

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/cexstat/internal/domain"
)

// BuildPortfolio values every balance that has a price against the quote
// asset and sums the result. Assets without a price, and holdings worth no
// more than the dust threshold, are left out; a missing entry in
// tradesBySymbol or autoInvestByAsset means the asset has no such history.
// Holdings are ordered by current value, largest first.
func (c *Calculator) BuildPortfolio(
	balances []domain.Balance,
	tradesBySymbol map[string][]domain.RawTrade,
	autoInvestByAsset map[string][]domain.RawAutoInvestTransaction,
	prices []domain.TickerPrice,
) domain.PortfolioData {
	priceBySymbol := priceMap(prices)

	quoteBalance := decimal.Zero
	holdings := make([]domain.Holding, 0, len(balances))
	for _, b := range balances {
		if b.Asset == c.quote {
			quoteBalance = quoteBalance.Add(b.Quantity())
			continue
		}

		symbol := c.Symbol(b.Asset)
		price, ok := priceBySymbol[symbol]
		if !ok {
			continue
		}

		h := c.CalculateHolding(b.Asset, symbol, tradesBySymbol[symbol], autoInvestByAsset[b.Asset], price, b)
		if h.CurrentValue.GreaterThan(c.dustThreshold) {
			holdings = append(holdings, h)
		}
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].CurrentValue.GreaterThan(holdings[j].CurrentValue)
	})

	totalInvested := lo.Reduce(holdings, func(acc decimal.Decimal, h domain.Holding, _ int) decimal.Decimal {
		return acc.Add(h.TotalInvested)
	}, decimal.Zero)
	totalCurrentValue := lo.Reduce(holdings, func(acc decimal.Decimal, h domain.Holding, _ int) decimal.Decimal {
		return acc.Add(h.CurrentValue)
	}, decimal.Zero)
	totalPnL := totalCurrentValue.Sub(totalInvested)

	return domain.PortfolioData{
		Holdings:          holdings,
		TotalInvested:     totalInvested,
		TotalCurrentValue: totalCurrentValue,
		TotalPnL:          totalPnL,
		TotalPnLPercent:   domain.Percent(totalPnL, totalInvested),
		QuoteAsset:        c.quote,
		QuoteBalance:      quoteBalance,
	}
}

// priceMap indexes prices by symbol. A later duplicate overrides an earlier one.
func priceMap(prices []domain.TickerPrice) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(prices))
	for _, p := range prices {
		m[p.Symbol] = domain.SafeParse(p.Price)
	}
	return m
}
