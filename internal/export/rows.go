// Package export writes portfolio data to spreadsheets: Google Sheets for
// the periodic refresh and local XLSX files for one-off reports.
package export

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/cexstat/internal/domain"
)

var holdingHeader = []any{
	"Asset", "Symbol", "Quantity", "Avg Buy Cost", "Total Invested",
	"Current Price", "Current Value", "Unrealized PnL", "PnL %",
}

var historyHeader = []any{
	"Date", "Holdings", "Total Invested", "Current Value", "PnL", "PnL %", "Quote Balance",
}

var transactionHeader = []any{
	"ID", "Date", "Type", "Source", "Price", "Quantity", "Quote Amount", "Fee", "Fee Asset",
}

var timelineHeader = []any{"Date", "Total Qty", "Total Invested", "Avg Cost"}

// HoldingRows returns the header, one row per holding and the totals row.
func HoldingRows(data domain.PortfolioData) [][]any {
	rows := make([][]any, 0, len(data.Holdings)+2)
	rows = append(rows, holdingHeader)
	for _, h := range data.Holdings {
		rows = append(rows, []any{
			h.Asset, h.Symbol,
			toFloat(h.Quantity),
			toFloat(h.AvgBuyCost),
			toFloat(h.TotalInvested),
			toFloat(h.CurrentPrice),
			toFloat(h.CurrentValue),
			toFloat(h.UnrealizedPnL),
			toFloat(h.PnLPercent.Round(2)),
		})
	}
	return append(rows, TotalsRow(data))
}

// TotalsRow lines the portfolio totals up under the holding columns.
func TotalsRow(data domain.PortfolioData) []any {
	return []any{
		"TOTAL", data.QuoteAsset, nil, nil,
		toFloat(data.TotalInvested),
		nil,
		toFloat(data.TotalCurrentValue),
		toFloat(data.TotalPnL),
		toFloat(data.TotalPnLPercent.Round(2)),
	}
}

// HistoryRow is one dated summary line of the portfolio.
func HistoryRow(data domain.PortfolioData, at time.Time) []any {
	return []any{
		at.UTC().Format("2006-01-02 15:04"),
		float64(len(data.Holdings)),
		toFloat(data.TotalInvested),
		toFloat(data.TotalCurrentValue),
		toFloat(data.TotalPnL),
		toFloat(data.TotalPnLPercent.Round(2)),
		toFloat(data.QuoteBalance),
	}
}

// TransactionRows lists the unified ledger of a holding, newest first.
func TransactionRows(detail domain.HoldingDetail) [][]any {
	rows := [][]any{transactionHeader}
	return append(rows, lo.Map(detail.Transactions, func(tx domain.UnifiedTransaction, _ int) []any {
		return []any{
			tx.ID,
			formatMillis(tx.Date),
			tx.Type.String(),
			tx.Source.String(),
			toFloat(tx.Price),
			toFloat(tx.Quantity),
			toFloat(tx.QuoteAmount),
			toFloat(tx.Fee),
			tx.FeeAsset,
		}
	})...)
}

// TimelineRows lists the DCA timeline of a holding, oldest first.
func TimelineRows(detail domain.HoldingDetail) [][]any {
	rows := [][]any{timelineHeader}
	return append(rows, lo.Map(detail.Timeline, func(p domain.DcaPoint, _ int) []any {
		return []any{
			formatMillis(p.Date),
			toFloat(p.TotalQty),
			toFloat(p.TotalInvested),
			toFloat(p.AvgCost),
		}
	})...)
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05")
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
