package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/mtlprog/cexstat/internal/domain"
)

// CalculateHolding values one asset. Quantity is taken from the live balance,
// not from the trade history, so incomplete history still yields the correct
// current value; only the average cost depends on the history.
//
// Commission handling for spot buys:
//   - paid in the asset itself: the received quantity is reduced;
//   - paid in the quote asset: the cost is increased;
//   - paid in any other asset: ignored for cost-basis purposes.
//
// Auto-invest fees are added to the cost when paid in the source asset.
func (c *Calculator) CalculateHolding(
	asset, symbol string,
	trades []domain.RawTrade,
	autoInvest []domain.RawAutoInvestTransaction,
	currentPrice decimal.Decimal,
	balance domain.Balance,
) domain.Holding {
	totalQtyBought := decimal.Zero
	totalCost := decimal.Zero

	for _, t := range trades {
		if !t.IsBuyer {
			continue
		}
		qty, cost := c.effectiveSpotBuy(asset, t)
		totalQtyBought = totalQtyBought.Add(qty)
		totalCost = totalCost.Add(cost)
	}

	for _, tx := range autoInvest {
		if !tx.IsSuccess() {
			continue
		}
		cost := domain.SafeParse(tx.SourceAssetAmount)
		if tx.TransactionFeeUnit == tx.SourceAsset {
			cost = cost.Add(domain.SafeParse(tx.TransactionFee))
		}
		totalQtyBought = totalQtyBought.Add(domain.SafeParse(tx.TargetAssetAmount))
		totalCost = totalCost.Add(cost)
	}

	quantity := balance.Quantity()
	avgBuyCost := decimal.Zero
	if totalQtyBought.IsPositive() {
		avgBuyCost = totalCost.Div(totalQtyBought)
	}
	totalInvested := avgBuyCost.Mul(quantity)
	currentValue := currentPrice.Mul(quantity)
	unrealizedPnL := currentValue.Sub(totalInvested)

	return domain.Holding{
		Asset:         asset,
		Symbol:        symbol,
		Quantity:      quantity,
		AvgBuyCost:    avgBuyCost,
		TotalInvested: totalInvested,
		CurrentPrice:  currentPrice,
		CurrentValue:  currentValue,
		UnrealizedPnL: unrealizedPnL,
		PnLPercent:    domain.Percent(unrealizedPnL, totalInvested),
	}
}

func (c *Calculator) effectiveSpotBuy(asset string, t domain.RawTrade) (qty, cost decimal.Decimal) {
	qty = domain.SafeParse(t.Qty)
	cost = domain.SafeParse(t.QuoteQty)
	commission := domain.SafeParse(t.Commission)

	switch t.CommissionAsset {
	case asset:
		qty = qty.Sub(commission)
	case c.quote:
		cost = cost.Add(commission)
	}
	return qty, cost
}
