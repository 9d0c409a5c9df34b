package export

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mtlprog/cexstat/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func samplePortfolio() domain.PortfolioData {
	return domain.PortfolioData{
		Holdings: []domain.Holding{
			{Asset: "BTC", Symbol: "BTCUSDT", Quantity: d("0.5"), AvgBuyCost: d("40000"), TotalInvested: d("20000"),
				CurrentPrice: d("50000"), CurrentValue: d("25000"), UnrealizedPnL: d("5000"), PnLPercent: d("25")},
			{Asset: "DOT", Symbol: "DOTUSDT", Quantity: d("100"), AvgBuyCost: d("8"), TotalInvested: d("800"),
				CurrentPrice: d("6"), CurrentValue: d("600"), UnrealizedPnL: d("-200"), PnLPercent: d("-25")},
		},
		TotalInvested:     d("20800"),
		TotalCurrentValue: d("25600"),
		TotalPnL:          d("4800"),
		TotalPnLPercent:   d("23.076923"),
		QuoteAsset:        "USDT",
		QuoteBalance:      d("150"),
	}
}

func TestHoldingRows(t *testing.T) {
	rows := HoldingRows(samplePortfolio())

	// header + 2 holdings + totals
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	for i, row := range rows {
		if len(row) != len(holdingHeader) {
			t.Errorf("row %d has %d columns, want %d", i, len(row), len(holdingHeader))
		}
	}
	if rows[1][0] != "BTC" || rows[2][0] != "DOT" {
		t.Errorf("assets = %v, %v; want BTC, DOT", rows[1][0], rows[2][0])
	}
	if v, ok := rows[2][7].(float64); !ok || v != -200 {
		t.Errorf("DOT PnL = %v, want -200", rows[2][7])
	}
	if rows[3][0] != "TOTAL" {
		t.Errorf("last row = %v, want totals", rows[3][0])
	}
	if v, ok := rows[3][8].(float64); !ok || v != 23.08 {
		t.Errorf("total PnL %% = %v, want 23.08", rows[3][8])
	}
}

func TestHistoryRow(t *testing.T) {
	at := time.Date(2026, 2, 24, 12, 30, 0, 0, time.UTC)
	row := HistoryRow(samplePortfolio(), at)

	if len(row) != len(historyHeader) {
		t.Fatalf("columns = %d, want %d", len(row), len(historyHeader))
	}
	if row[0] != "2026-02-24 12:30" {
		t.Errorf("date = %v, want 2026-02-24 12:30", row[0])
	}
	if v, ok := row[1].(float64); !ok || v != 2 {
		t.Errorf("holdings = %v, want 2", row[1])
	}
	if v, ok := row[6].(float64); !ok || v != 150 {
		t.Errorf("quote balance = %v, want 150", row[6])
	}
}

func TestTransactionAndTimelineRows(t *testing.T) {
	detail := domain.HoldingDetail{
		Transactions: []domain.UnifiedTransaction{
			{ID: "spot-2", Date: 2000, Type: domain.TxSell, Source: domain.SourceSpot, Price: d("20"), Quantity: d("1")},
			{ID: "auto-1", Date: 1000, Type: domain.TxBuy, Source: domain.SourceAutoInvest, Price: d("10"), Quantity: d("2")},
		},
		Timeline: []domain.DcaPoint{
			{Date: 1000, TotalQty: d("2"), TotalInvested: d("20"), AvgCost: d("10")},
		},
	}

	txRows := TransactionRows(detail)
	if len(txRows) != 3 {
		t.Fatalf("transaction rows = %d, want 3", len(txRows))
	}
	if txRows[1][2] != "sell" || txRows[2][3] != "auto-invest" {
		t.Errorf("type/source = %v/%v, want sell/auto-invest", txRows[1][2], txRows[2][3])
	}
	if txRows[1][1] != "1970-01-01 00:00:02" {
		t.Errorf("date = %v", txRows[1][1])
	}

	tlRows := TimelineRows(detail)
	if len(tlRows) != 2 {
		t.Fatalf("timeline rows = %d, want 2", len(tlRows))
	}
	if v, ok := tlRows[1][3].(float64); !ok || v != 10 {
		t.Errorf("avg cost = %v, want 10", tlRows[1][3])
	}
}
