package service

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"invotab/internal/dataset"
	"invotab/internal/domain"
	"invotab/internal/port"
	"invotab/internal/tabular"
)

// FileFailure records one file that could not be extracted during a batch.
type FileFailure struct {
	Key string `json:"key"`
	Err error  `json:"-"`
}

// BatchResult is the outcome of one processing batch.
type BatchResult struct {
	Rows      []domain.FlatRow
	Processed int
	Failures  []FileFailure
}

// ExtractService defines the batch extraction contract.
type ExtractService interface {
	// ProcessBatch extracts the given stored files in order, flattens every
	// successful record, and replaces the current dataset with the result.
	// A failed file is recorded and skipped; it never aborts the batch.
	ProcessBatch(ctx context.Context, keys []string) (*BatchResult, error)
	// Rows returns a copy of the current dataset.
	Rows() []domain.FlatRow
	// Stats summarizes the current dataset.
	Stats() domain.Stats
	// Clear empties the current dataset.
	Clear()
}

type extractService struct {
	parser  port.DocumentParser
	storage port.ObjectStorage
	store   *dataset.Store
}

// NewExtractService creates a new ExtractService implementation.
func NewExtractService(parser port.DocumentParser, storage port.ObjectStorage, store *dataset.Store) ExtractService {
	return &extractService{parser: parser, storage: storage, store: store}
}

func (s *extractService) ProcessBatch(ctx context.Context, keys []string) (*BatchResult, error) {
	if len(keys) == 0 {
		return nil, domain.ErrNoFilesToProcess
	}

	result := &BatchResult{}
	for _, key := range keys {
		rec, err := s.extractOne(ctx, key)
		if err != nil {
			log.Printf("extractService.ProcessBatch: %q failed: %v", key, err)
			result.Failures = append(result.Failures, FileFailure{Key: key, Err: err})
			continue
		}

		// A record with zero line items contributes no rows but still
		// counts as processed.
		result.Rows = append(result.Rows, tabular.Flatten(rec)...)
		result.Processed++
	}

	s.store.Replace(result.Rows)
	return result, nil
}

func (s *extractService) extractOne(ctx context.Context, key string) (*domain.InvoiceRecord, error) {
	data, err := s.storage.Download(ctx, key)
	if err != nil {
		return nil, err
	}

	return s.parser.Parse(ctx, port.ParseInput{
		FileBytes:   data,
		ContentType: contentTypeForKey(key),
	})
}

func (s *extractService) Rows() []domain.FlatRow {
	return s.store.Rows()
}

func (s *extractService) Stats() domain.Stats {
	return tabular.Summarize(s.store.Rows())
}

func (s *extractService) Clear() {
	s.store.Clear()
}

// contentTypeForKey maps a stored key's extension to its MIME type. Unknown
// extensions fall back to PDF; the parser will reject anything it cannot
// send.
func contentTypeForKey(key string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(key), "."))
	if ct, ok := domain.AllowedExtensions[ext]; ok {
		return ct
	}
	return "application/pdf"
}
