package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Number is a float64 that tolerates string-encoded numbers in JSON input.
// Extraction models occasionally quote numeric fields; anything unparsable
// decodes to 0 rather than failing the whole record.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

// Float64 returns the underlying value.
func (n Number) Float64() float64 { return float64(n) }

// LineItem is one row of an invoice's itemized table as returned by the
// extraction service. All fields are optional on input.
type LineItem struct {
	LineNo          Number `json:"line_no"`
	ItemCode        string `json:"item_code"`
	ItemDescription string `json:"item_description"`
	Quantity        Number `json:"quantity"`
	UOM             string `json:"uom"`
	UnitPrice       Number `json:"unit_price"`
	TotalAmount     Number `json:"total_amount"`
	DiscountAmount  Number `json:"discount_amount"`
	VAT             Number `json:"vat"`
	AmountInclVAT   Number `json:"amount_incl_vat"`
	BatchNo         string `json:"batch_no"`
	ExpiryDate      string `json:"expiry_date"`
}

// InvoiceRecord is the nested structured result of extracting one document.
type InvoiceRecord struct {
	InvoiceNumber string     `json:"invoice_number"`
	WaybillNumber string     `json:"waybill_number"`
	CustomerName  string     `json:"customer_name"`
	OrderNumber   string     `json:"order_number"`
	InvoiceDate   string     `json:"invoice_date"`
	LineItems     []LineItem `json:"line_items"`
}

// FlatRow is one line item merged with its parent document's header fields,
// the unit of tabular export. JSON keys match the spreadsheet column names.
type FlatRow struct {
	InvoiceNumber   string  `json:"Invoice_Number"`
	WaybillNumber   string  `json:"Waybill_Number"`
	CustomerName    string  `json:"Customer_Name"`
	OrderNumber     string  `json:"Order_Number"`
	InvoiceDate     string  `json:"Invoice_Date"`
	LineNo          int     `json:"Line_No"`
	ItemCode        string  `json:"Item_Code"`
	ItemDescription string  `json:"Item_Description"`
	Quantity        float64 `json:"Quantity"`
	UOM             string  `json:"UOM"`
	UnitPrice       float64 `json:"Unit_Price"`
	TotalAmount     float64 `json:"Total_Amount"`
	DiscountAmount  float64 `json:"Discount_Amount"`
	VAT             float64 `json:"VAT"`
	AmountInclVAT   float64 `json:"Amount_Incl_VAT"`
	BatchNo         string  `json:"Batch_No"`
	ExpiryDate      string  `json:"Expiry_Date"`
}

// Stats holds aggregate statistics over the current flat row set.
type Stats struct {
	TotalDocuments int     `json:"total_documents"`
	TotalLineItems int     `json:"total_line_items"`
	TotalQuantity  int     `json:"total_quantity"`
	TotalValue     float64 `json:"total_value"`
}

// FileMeta describes one stored upload.
type FileMeta struct {
	ID           uuid.UUID `json:"id"`
	OriginalName string    `json:"original_name"`
	StoredKey    string    `json:"stored_key"`
	FileSize     int64     `json:"file_size"`
	ContentType  string    `json:"content_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// AllowedExtensions maps accepted file extensions (without dot) to their
// MIME content type.
var AllowedExtensions = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"pdf":  "application/pdf",
}

// AllowedContentTypes is the set of sniffed content types accepted on upload.
var AllowedContentTypes = map[string]struct{}{
	"image/png":       {},
	"image/jpeg":      {},
	"application/pdf": {},
}
