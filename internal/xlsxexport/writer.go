package xlsxexport

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"invoicegen/internal/domain"
)

const sheetName = "Invoices"

// columns mirrors the CSV export header so both downloads line up.
var columns = []string{
	"Invoice No",
	"Billed To",
	"Grand Total",
	"Amount Paid",
	"Amount Remaining",
	"Payment Status",
	"Due Date",
	"Created Date",
}

// Write renders the invoice collection as an XLSX workbook and returns the
// serialized file. Money columns stay numeric so spreadsheet formulas work
// on them directly.
func Write(invoices []domain.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("xlsxexport.Write: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return nil, fmt.Errorf("xlsxexport.Write: %w", err)
		}
	}

	for r := range invoices {
		inv := &invoices[r]
		values := []interface{}{
			fallback(inv.InvoiceNo),
			fallback(inv.BilledToName),
			inv.GrandTotal,
			inv.AmountPaid,
			inv.AmountRemaining,
			fallback(string(inv.PaymentStatus)),
			formatDate(inv.DueDate),
			inv.CreatedAt.Format("2006-01-02"),
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("xlsxexport.Write: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("xlsxexport.Write: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsxexport.Write: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildFilename returns the download filename: {name}_{YYYY-MM-DD}.xlsx
func BuildFilename(name string) string {
	return fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("2006-01-02"))
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02")
}

func fallback(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
