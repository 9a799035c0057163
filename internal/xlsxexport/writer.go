// Package xlsxexport serializes the flat row table to an XLSX workbook.
package xlsxexport

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"invotab/internal/domain"
)

// SheetName is the single worksheet holding the exported table.
const SheetName = "Invoice_Data"

// Columns defines the header row. Order is fixed for spreadsheet
// compatibility with downstream consumers.
var Columns = []string{
	"Invoice_Number",
	"Waybill_Number",
	"Customer_Name",
	"Order_Number",
	"Invoice_Date",
	"Line_No",
	"Item_Code",
	"Item_Description",
	"Quantity",
	"UOM",
	"Unit_Price",
	"Total_Amount",
	"Discount_Amount",
	"VAT",
	"Amount_Incl_VAT",
	"Batch_No",
	"Expiry_Date",
}

// Write builds a workbook with one header row and one row per FlatRow, in
// input order, and writes it to w.
func Write(w io.Writer, rows []domain.FlatRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	for i, name := range Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for r := range rows {
		values := rowValues(&rows[r])
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", r+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// rowValues returns a row's cell values in Columns order.
func rowValues(row *domain.FlatRow) []interface{} {
	return []interface{}{
		row.InvoiceNumber,
		row.WaybillNumber,
		row.CustomerName,
		row.OrderNumber,
		row.InvoiceDate,
		row.LineNo,
		row.ItemCode,
		row.ItemDescription,
		row.Quantity,
		row.UOM,
		row.UnitPrice,
		row.TotalAmount,
		row.DiscountAmount,
		row.VAT,
		row.AmountInclVAT,
		row.BatchNo,
		row.ExpiryDate,
	}
}

// BuildFilename returns the timestamped attachment name for an export.
func BuildFilename(now time.Time) string {
	return fmt.Sprintf("invoice_extract_%s.xlsx", now.Format("20060102_150405"))
}
