package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"invotab/internal/domain"
)

// StripCodeFences removes markdown code-fence markers from model output.
// Some models wrap the JSON in ```json ... ``` despite the prompt; this
// normalization is confined to the service-adapter boundary.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// DecodeInvoiceRecord sanitizes and decodes model output text into an
// InvoiceRecord. A record with no line_items key decodes to zero line items,
// which is a valid (empty) result, not an error.
func DecodeInvoiceRecord(text string) (*domain.InvoiceRecord, error) {
	cleaned := StripCodeFences(text)

	var rec domain.InvoiceRecord
	if err := json.Unmarshal([]byte(cleaned), &rec); err != nil {
		return nil, fmt.Errorf("decoding extraction output: %w (raw: %s)", err, truncate(cleaned, 500))
	}
	return &rec, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
