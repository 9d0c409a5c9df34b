package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/mtlprog/cexstat/internal/domain"
)

// HoldingStats summarizes a ledger without any pricing input.
//
// Fees paid in a currency other than the quote asset are estimated as
// fee × price of the transaction. This is only accurate when the fee was
// charged in the traded asset itself.
func (c *Calculator) HoldingStats(unified []domain.UnifiedTransaction) domain.HoldingStats {
	stats := domain.HoldingStats{TotalTransactions: len(unified)}

	weightedPriceSum := decimal.Zero
	weightedQtySum := decimal.Zero
	var lowest *decimal.Decimal

	for i, tx := range unified {
		if i == 0 || tx.Date < stats.FirstTradeDate {
			stats.FirstTradeDate = tx.Date
		}
		if tx.Date > stats.LastTradeDate {
			stats.LastTradeDate = tx.Date
		}

		switch tx.Type {
		case domain.TxReward:
			stats.TotalRewardTransactions++
			stats.TotalRewards = stats.TotalRewards.Add(tx.Quantity)
			continue
		case domain.TxBuy, domain.TxSell:
		default:
			continue
		}

		stats.TotalFeesPaid = stats.TotalFeesPaid.Add(c.feeInQuote(tx))

		if tx.Type == domain.TxBuy {
			stats.TotalBuyTransactions++
			stats.TotalBought = stats.TotalBought.Add(tx.Quantity)
			stats.TotalCostBasis = stats.TotalCostBasis.Add(tx.QuoteAmount)
			weightedPriceSum = weightedPriceSum.Add(tx.Price.Mul(tx.Quantity))
			weightedQtySum = weightedQtySum.Add(tx.Quantity)
			if tx.Price.GreaterThan(stats.HighestBuyPrice) {
				stats.HighestBuyPrice = tx.Price
			}
			if lowest == nil || tx.Price.LessThan(*lowest) {
				p := tx.Price
				lowest = &p
			}
		} else {
			stats.TotalSellTransactions++
			stats.TotalSold = stats.TotalSold.Add(tx.Quantity)
		}
	}

	if lowest != nil {
		stats.LowestBuyPrice = *lowest
	}
	if weightedQtySum.IsPositive() {
		stats.AvgBuyPrice = weightedPriceSum.Div(weightedQtySum)
	}
	return stats
}

func (c *Calculator) feeInQuote(tx domain.UnifiedTransaction) decimal.Decimal {
	if tx.FeeAsset == c.quote {
		return tx.Fee
	}
	return tx.Fee.Mul(tx.Price)
}
