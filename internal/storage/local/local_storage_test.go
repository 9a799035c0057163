package local_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invotab/internal/port"
	local "invotab/internal/storage/local"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	storage, err := local.NewStorage(dir)
	require.NoError(t, err)

	ctx := context.Background()
	content := []byte("%PDF-1.4 fake")

	err = storage.Upload(ctx, port.UploadInput{
		Key:         "abc_invoice.pdf",
		Body:        bytes.NewReader(content),
		ContentType: "application/pdf",
		Size:        int64(len(content)),
	})
	require.NoError(t, err)

	data, err := storage.Download(ctx, "abc_invoice.pdf")
	require.NoError(t, err)
	assert.Equal(t, content, data)

	keys, err := storage.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc_invoice.pdf"}, keys)

	require.NoError(t, storage.Delete(ctx, "abc_invoice.pdf"))

	keys, err = storage.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestLocalStorage_DownloadMissing(t *testing.T) {
	storage, err := local.NewStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Download(context.Background(), "nope.png")
	assert.Error(t, err)
}

func TestLocalStorage_KeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	storage, err := local.NewStorage(dir)
	require.NoError(t, err)

	ctx := context.Background()
	err = storage.Upload(ctx, port.UploadInput{
		Key:  "../outside.pdf",
		Body: bytes.NewReader([]byte("x")),
	})
	require.NoError(t, err)

	// The traversal collapses to the base name inside dir.
	keys, err := storage.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"outside.pdf"}, keys)
}

func TestLocalStorage_CreatesDir(t *testing.T) {
	dir := t.TempDir() + "/nested/uploads"
	_, err := local.NewStorage(dir)
	assert.NoError(t, err)
}
