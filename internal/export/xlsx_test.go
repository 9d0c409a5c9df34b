package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/mtlprog/cexstat/internal/domain"
)

func TestWritePortfolio(t *testing.T) {
	var buf bytes.Buffer
	if err := NewXLSXWriter().WritePortfolio(&buf, samplePortfolio()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxHoldingsSheet)
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	if rows[0][0] != "Asset" || rows[1][0] != "BTC" || rows[3][0] != "TOTAL" {
		t.Errorf("first column = %v, %v, %v", rows[0][0], rows[1][0], rows[3][0])
	}
}

func TestWriteDetail(t *testing.T) {
	h := samplePortfolio().Holdings[0]
	detail := domain.HoldingDetail{
		Holding: h,
		Transactions: []domain.UnifiedTransaction{
			{ID: "spot-1", Date: 1000, Type: domain.TxBuy, Source: domain.SourceSpot, Price: d("40000"), Quantity: d("0.5"), QuoteAmount: d("20000")},
		},
		Timeline: []domain.DcaPoint{
			{Date: 1000, TotalQty: d("0.5"), TotalInvested: d("20000"), AvgCost: d("40000")},
		},
	}

	var buf bytes.Buffer
	if err := NewXLSXWriter().WriteDetail(&buf, detail); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{xlsxHoldingsSheet, xlsxTransactionsSheet, xlsxTimelineSheet}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Errorf("sheet %d = %s, want %s", i, sheets[i], want[i])
		}
	}

	txRows, err := f.GetRows(xlsxTransactionsSheet)
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	if len(txRows) != 2 || txRows[1][0] != "spot-1" {
		t.Errorf("transactions = %v", txRows)
	}
}
