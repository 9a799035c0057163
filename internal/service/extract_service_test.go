package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invotab/internal/dataset"
	"invotab/internal/domain"
	"invotab/internal/port"
	"invotab/internal/service"
)

// fakeStorage is an in-memory ObjectStorage.
type fakeStorage struct {
	objects map[string][]byte
	deleted []string
	listErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Upload(ctx context.Context, input port.UploadInput) error {
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return err
	}
	f.objects[input.Key] = data
	return nil
}

func (f *fakeStorage) Download(ctx context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such object: %s", key)
	}
	return data, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) List(ctx context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	return keys, nil
}

// fakeParser maps file content to canned records or errors.
type fakeParser struct {
	records map[string]*domain.InvoiceRecord
	errs    map[string]error
	calls   []string
}

func (f *fakeParser) Parse(ctx context.Context, input port.ParseInput) (*domain.InvoiceRecord, error) {
	key := string(input.FileBytes)
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	return f.records[key], nil
}

func record(invoiceNumber string, quantities ...float64) *domain.InvoiceRecord {
	rec := &domain.InvoiceRecord{InvoiceNumber: invoiceNumber}
	for i, q := range quantities {
		rec.LineItems = append(rec.LineItems, domain.LineItem{
			LineNo:        domain.Number(i + 1),
			Quantity:      domain.Number(q),
			AmountInclVAT: domain.Number(q * 10),
		})
	}
	return rec
}

func TestProcessBatch_ContinuesPastFailures(t *testing.T) {
	storage := newFakeStorage()
	storage.objects["a.pdf"] = []byte("a")
	storage.objects["b.pdf"] = []byte("b")
	storage.objects["c.pdf"] = []byte("c")

	p := &fakeParser{
		records: map[string]*domain.InvoiceRecord{
			"a": record("INV-A", 1, 2),
			"c": record("INV-C", 3),
		},
		errs: map[string]error{
			"b": errors.New("service unavailable"),
		},
	}

	store := dataset.NewStore()
	svc := service.NewExtractService(p, storage, store)

	result, err := svc.ProcessBatch(context.Background(), []string{"a.pdf", "b.pdf", "c.pdf"})
	require.NoError(t, err, "a failed file must not abort the batch")

	assert.Equal(t, 2, result.Processed)
	assert.Len(t, result.Rows, 3)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "b.pdf", result.Failures[0].Key)

	// Files processed sequentially in input order.
	assert.Equal(t, []string{"a", "b", "c"}, p.calls)

	// Dataset replaced with the batch result.
	assert.Len(t, store.Rows(), 3)
}

func TestProcessBatch_EmptyKeys(t *testing.T) {
	svc := service.NewExtractService(&fakeParser{}, newFakeStorage(), dataset.NewStore())

	_, err := svc.ProcessBatch(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoFilesToProcess)
}

func TestProcessBatch_MissingFileIsPerFileFailure(t *testing.T) {
	storage := newFakeStorage()
	storage.objects["ok.png"] = []byte("ok")

	p := &fakeParser{records: map[string]*domain.InvoiceRecord{"ok": record("INV-1", 2)}}
	svc := service.NewExtractService(p, storage, dataset.NewStore())

	result, err := svc.ProcessBatch(context.Background(), []string{"gone.png", "ok.png"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "gone.png", result.Failures[0].Key)
}

func TestProcessBatch_ZeroLineItemsCountsAsProcessed(t *testing.T) {
	storage := newFakeStorage()
	storage.objects["empty.jpg"] = []byte("e")

	p := &fakeParser{records: map[string]*domain.InvoiceRecord{"e": {InvoiceNumber: "INV-E"}}}
	svc := service.NewExtractService(p, storage, dataset.NewStore())

	result, err := svc.ProcessBatch(context.Background(), []string{"empty.jpg"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Empty(t, result.Rows)
	assert.Empty(t, result.Failures)
}

func TestProcessBatch_ReplacesPriorDataset(t *testing.T) {
	storage := newFakeStorage()
	storage.objects["a.pdf"] = []byte("a")

	p := &fakeParser{records: map[string]*domain.InvoiceRecord{"a": record("INV-A", 1)}}
	store := dataset.NewStore()
	store.Replace([]domain.FlatRow{{InvoiceNumber: "OLD"}, {InvoiceNumber: "OLD"}})

	svc := service.NewExtractService(p, storage, store)
	_, err := svc.ProcessBatch(context.Background(), []string{"a.pdf"})
	require.NoError(t, err)

	rows := store.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "INV-A", rows[0].InvoiceNumber)
}

func TestStatsAndClear(t *testing.T) {
	store := dataset.NewStore()
	store.Replace([]domain.FlatRow{
		{InvoiceNumber: "INV-1", Quantity: 2, AmountInclVAT: 50},
		{InvoiceNumber: "INV-1", Quantity: 3, AmountInclVAT: 75},
	})

	svc := service.NewExtractService(&fakeParser{}, newFakeStorage(), store)

	stats := svc.Stats()
	assert.Equal(t, 1, stats.TotalDocuments)
	assert.Equal(t, 2, stats.TotalLineItems)
	assert.Equal(t, 5, stats.TotalQuantity)
	assert.InDelta(t, 125.0, stats.TotalValue, 1e-9)

	svc.Clear()
	assert.Empty(t, svc.Rows())
	assert.Equal(t, domain.Stats{}, svc.Stats())
}
