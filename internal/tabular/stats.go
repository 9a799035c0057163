package tabular

import "invotab/internal/domain"

// Summarize computes aggregate statistics over a flat row set. An empty set
// yields all-zero stats. TotalDocuments counts distinct Invoice_Number
// values, so rows from two uploads sharing an invoice number tabulate as one
// document; a blank invoice number is itself one bucket. TotalQuantity is
// the integer truncation of the quantity sum.
func Summarize(rows []domain.FlatRow) domain.Stats {
	stats := domain.Stats{TotalLineItems: len(rows)}

	seen := make(map[string]struct{}, len(rows))
	var quantity, value float64
	for _, row := range rows {
		seen[row.InvoiceNumber] = struct{}{}
		quantity += row.Quantity
		value += row.AmountInclVAT
	}

	stats.TotalDocuments = len(seen)
	stats.TotalQuantity = int(quantity)
	stats.TotalValue = value
	return stats
}
