package port

import (
	"context"

	"invotab/internal/domain"
)

// ParseInput carries the data needed for document extraction.
type ParseInput struct {
	FileBytes   []byte
	ContentType string
}

// DocumentParser abstracts LLM-based invoice extraction. Implementations
// return the decoded record on success; any service or decode failure is an
// error for that one document.
type DocumentParser interface {
	Parse(ctx context.Context, input ParseInput) (*domain.InvoiceRecord, error)
}
