// Package render formats portfolio data as markdown for terminal output.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/cexstat/internal/domain"
)

// PortfolioMarkdown renders the holdings table and the portfolio totals.
func PortfolioMarkdown(data domain.PortfolioData, refreshedAt time.Time) string {
	quote := data.QuoteAsset
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio\n\n")
	if !refreshedAt.IsZero() {
		fmt.Fprintf(&b, "As of %s\n\n", refreshedAt.UTC().Format("2006-01-02 15:04 UTC"))
	}

	if len(data.Holdings) == 0 {
		fmt.Fprintf(&b, "No holdings above the dust threshold.\n\n")
	} else {
		fmt.Fprintln(&b, "| Asset | Quantity | Avg Cost | Price | Invested | Value | PnL | PnL % |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|---:|")
		for _, h := range data.Holdings {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				h.Asset,
				domain.FormatQuantity(h.Quantity),
				formatPrice(h.AvgBuyCost),
				formatPrice(h.CurrentPrice),
				domain.FormatMoney(h.TotalInvested, quote),
				domain.FormatMoney(h.CurrentValue, quote),
				signedMoney(h.UnrealizedPnL, quote),
				signedPercent(h.PnLPercent),
			)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "## Totals\n\n")
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Invested | %s |\n", domain.FormatMoney(data.TotalInvested, quote))
	fmt.Fprintf(&b, "| Value | %s |\n", domain.FormatMoney(data.TotalCurrentValue, quote))
	fmt.Fprintf(&b, "| PnL | %s (%s) |\n", signedMoney(data.TotalPnL, quote), signedPercent(data.TotalPnLPercent))
	fmt.Fprintf(&b, "| %s balance | %s |\n", quote, domain.FormatMoney(data.QuoteBalance, quote))
	return b.String()
}

// HoldingMarkdown renders the drill-down of one holding.
func HoldingMarkdown(detail domain.HoldingDetail, quote string) string {
	h := detail.Holding
	s := detail.Stats
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", h.Asset)
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Quantity | %s |\n", domain.FormatQuantity(h.Quantity))
	fmt.Fprintf(&b, "| Avg buy cost | %s |\n", formatPrice(h.AvgBuyCost))
	fmt.Fprintf(&b, "| Current price | %s |\n", formatPrice(h.CurrentPrice))
	fmt.Fprintf(&b, "| Value | %s |\n", domain.FormatMoney(h.CurrentValue, quote))
	fmt.Fprintf(&b, "| PnL | %s (%s) |\n\n", signedMoney(h.UnrealizedPnL, quote), signedPercent(h.PnLPercent))

	fmt.Fprintf(&b, "## Statistics\n\n")
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Transactions | %d (%d buy, %d sell, %d reward) |\n",
		s.TotalTransactions, s.TotalBuyTransactions, s.TotalSellTransactions, s.TotalRewardTransactions)
	fmt.Fprintf(&b, "| Bought | %s |\n", domain.FormatQuantity(s.TotalBought))
	fmt.Fprintf(&b, "| Sold | %s |\n", domain.FormatQuantity(s.TotalSold))
	fmt.Fprintf(&b, "| Rewards | %s |\n", domain.FormatQuantity(s.TotalRewards))
	fmt.Fprintf(&b, "| Avg buy price | %s |\n", formatPrice(s.AvgBuyPrice))
	fmt.Fprintf(&b, "| Buy price range | %s to %s |\n", formatPrice(s.LowestBuyPrice), formatPrice(s.HighestBuyPrice))
	fmt.Fprintf(&b, "| Cost basis | %s |\n", domain.FormatMoney(s.TotalCostBasis, quote))
	fmt.Fprintf(&b, "| Fees (est.) | %s |\n", domain.FormatMoney(s.TotalFeesPaid, quote))
	if s.TotalTransactions > 0 {
		fmt.Fprintf(&b, "| Active | %s to %s |\n", formatDate(s.FirstTradeDate), formatDate(s.LastTradeDate))
	}
	fmt.Fprintln(&b)

	if detail.DCA != nil {
		dca := detail.DCA
		fmt.Fprintf(&b, "## Spot DCA\n\n")
		fmt.Fprintf(&b, "%d buys from %s to %s: %s for %s %s, average %s.\n\n",
			dca.NumBuys, formatDate(dca.FirstBuyDate), formatDate(dca.LastBuyDate),
			domain.FormatMoney(dca.TotalInvested, quote),
			domain.FormatQuantity(dca.TotalQty), h.Asset,
			formatPrice(dca.AvgCost),
		)
	}

	if len(detail.Transactions) > 0 {
		fmt.Fprintf(&b, "## Transactions\n\n")
		fmt.Fprintln(&b, "| Date | Type | Source | Price | Quantity | Amount | Fee |")
		fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|")
		for _, tx := range detail.Transactions {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				formatDate(tx.Date),
				tx.Type, tx.Source,
				formatPrice(tx.Price),
				domain.FormatQuantity(tx.Quantity),
				domain.FormatMoney(tx.QuoteAmount, quote),
				formatFee(tx),
			)
		}
	}
	return b.String()
}

func formatPrice(p decimal.Decimal) string {
	return p.StringFixed(domain.PricePrecision(p))
}

func formatFee(tx domain.UnifiedTransaction) string {
	if tx.Fee.IsZero() {
		return "-"
	}
	return domain.FormatQuantity(tx.Fee) + " " + tx.FeeAsset
}

func signedMoney(v decimal.Decimal, quote string) string {
	s := domain.FormatMoney(v, quote)
	if v.IsPositive() {
		return "+" + s
	}
	return s
}

func signedPercent(v decimal.Decimal) string {
	s := v.StringFixed(2) + "%"
	if v.IsPositive() {
		return "+" + s
	}
	return s
}

func formatDate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}
