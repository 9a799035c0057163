package parser

// BuildInvoicePrompt returns the extraction prompt for invoice/waybill
// documents. The model must answer with a single raw JSON object matching
// the InvoiceRecord schema.
func BuildInvoicePrompt() string {
	return `Extract data from this invoice/waybill and return ONLY valid JSON (no markdown, no backticks).

Structure:
{
  "invoice_number": "",
  "waybill_number": "",
  "customer_name": "",
  "order_number": "",
  "invoice_date": "",
  "line_items": [
    {
      "line_no": 1,
      "item_code": "",
      "item_description": "",
      "quantity": 0,
      "uom": "",
      "unit_price": 0,
      "total_amount": 0,
      "discount_amount": 0,
      "vat": 0,
      "amount_incl_vat": 0,
      "batch_no": "",
      "expiry_date": ""
    }
  ]
}

Rules:
- Extract ALL line items from the table
- For missing fields, use empty string "" or 0
- Return ONLY the JSON, no other text`
}
