package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mtlprog/cexstat/internal/domain"
)

const (
	xlsxHoldingsSheet     = "Holdings"
	xlsxTransactionsSheet = "Transactions"
	xlsxTimelineSheet     = "DCA"
)

// XLSXWriter renders portfolio reports as Excel workbooks.
type XLSXWriter struct{}

// NewXLSXWriter creates an XLSXWriter.
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

// WritePortfolio writes a workbook with a single Holdings sheet.
func (x *XLSXWriter) WritePortfolio(w io.Writer, data domain.PortfolioData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxHoldingsSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := fillSheet(f, xlsxHoldingsSheet, HoldingRows(data)); err != nil {
		return err
	}
	return writeWorkbook(f, w)
}

// WriteDetail writes a workbook for one holding: its valuation, the unified
// ledger and the DCA timeline.
func (x *XLSXWriter) WriteDetail(w io.Writer, detail domain.HoldingDetail) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxHoldingsSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	holding := HoldingRows(domain.PortfolioData{Holdings: []domain.Holding{detail.Holding}})
	// header and the single holding; totals are meaningless for one asset
	if err := fillSheet(f, xlsxHoldingsSheet, holding[:2]); err != nil {
		return err
	}

	for _, s := range []struct {
		name string
		rows [][]any
	}{
		{xlsxTransactionsSheet, TransactionRows(detail)},
		{xlsxTimelineSheet, TimelineRows(detail)},
	} {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", s.name, err)
		}
		if err := fillSheet(f, s.name, s.rows); err != nil {
			return err
		}
	}
	return writeWorkbook(f, w)
}

func fillSheet(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeWorkbook(f *excelize.File, w io.Writer) error {
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
