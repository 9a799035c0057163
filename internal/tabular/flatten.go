// Package tabular converts nested invoice records into the flat
// row-per-line-item table used for display and spreadsheet export.
package tabular

import "invotab/internal/domain"

// Flatten emits one FlatRow per line item, repeating the record's header
// fields on every row. A nil record or a record without line items produces
// no rows; the header alone is never exported. The input is not mutated and
// output order follows line-item order.
func Flatten(rec *domain.InvoiceRecord) []domain.FlatRow {
	if rec == nil {
		return nil
	}

	rows := make([]domain.FlatRow, 0, len(rec.LineItems))
	for _, item := range rec.LineItems {
		rows = append(rows, domain.FlatRow{
			InvoiceNumber:   rec.InvoiceNumber,
			WaybillNumber:   rec.WaybillNumber,
			CustomerName:    rec.CustomerName,
			OrderNumber:     rec.OrderNumber,
			InvoiceDate:     rec.InvoiceDate,
			LineNo:          int(item.LineNo),
			ItemCode:        item.ItemCode,
			ItemDescription: item.ItemDescription,
			Quantity:        item.Quantity.Float64(),
			UOM:             item.UOM,
			UnitPrice:       item.UnitPrice.Float64(),
			TotalAmount:     item.TotalAmount.Float64(),
			DiscountAmount:  item.DiscountAmount.Float64(),
			VAT:             item.VAT.Float64(),
			AmountInclVAT:   item.AmountInclVAT.Float64(),
			BatchNo:         item.BatchNo,
			ExpiryDate:      item.ExpiryDate,
		})
	}
	return rows
}
