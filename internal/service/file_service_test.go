package service_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invotab/internal/config"
	"invotab/internal/domain"
	"invotab/internal/service"
)

var (
	pngBytes  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	pdfBytes  = []byte("%PDF-1.4\n%fake invoice\n")
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F'}
)

type testUpload struct {
	name    string
	content []byte
}

// makeHeaders builds real multipart.FileHeader values by round-tripping a
// multipart body through request parsing.
func makeHeaders(t *testing.T, uploads []testUpload) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, u := range uploads {
		part, err := w.CreateFormFile("files", u.name)
		require.NoError(t, err)
		_, err = part.Write(u.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["files"]
}

func newFileService(storage *fakeStorage, maxMB int64) service.FileService {
	return service.NewFileService(storage, &config.UploadConfig{MaxFileSizeMB: maxMB})
}

func TestUpload_StoresValidFiles(t *testing.T) {
	storage := newFakeStorage()
	svc := newFileService(storage, 16)

	headers := makeHeaders(t, []testUpload{
		{"invoice one.png", pngBytes},
		{"waybill.pdf", pdfBytes},
	})

	stored, err := svc.Upload(context.Background(), headers)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.Equal(t, "invoice one.png", stored[0].OriginalName)
	assert.Equal(t, "image/png", stored[0].ContentType)
	assert.Contains(t, stored[0].StoredKey, "invoice_one.png")
	assert.Contains(t, stored[0].StoredKey, stored[0].ID.String())
	assert.Equal(t, "application/pdf", stored[1].ContentType)

	// Both objects landed in storage under their generated keys.
	assert.Len(t, storage.objects, 2)
	assert.Equal(t, pngBytes, storage.objects[stored[0].StoredKey])
}

func TestUpload_SkipsDisallowedExtension(t *testing.T) {
	storage := newFakeStorage()
	svc := newFileService(storage, 16)

	headers := makeHeaders(t, []testUpload{
		{"notes.txt", []byte("plain text")},
		{"scan.jpeg", jpegBytes},
	})

	stored, err := svc.Upload(context.Background(), headers)
	require.NoError(t, err, "a bad file is skipped, not fatal")
	require.Len(t, stored, 1)
	assert.Equal(t, "scan.jpeg", stored[0].OriginalName)
}

func TestUpload_SkipsSpoofedContent(t *testing.T) {
	storage := newFakeStorage()
	svc := newFileService(storage, 16)

	// .png extension but plain-text content fails the magic-byte sniff.
	headers := makeHeaders(t, []testUpload{
		{"fake.png", []byte("#!/bin/sh\necho hi\n")},
	})

	stored, err := svc.Upload(context.Background(), headers)
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Empty(t, storage.objects)
}

func TestUpload_SkipsOversizeFile(t *testing.T) {
	storage := newFakeStorage()
	svc := newFileService(storage, 0) // zero-byte limit: everything is oversize

	headers := makeHeaders(t, []testUpload{{"big.pdf", pdfBytes}})

	stored, err := svc.Upload(context.Background(), headers)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestUpload_NoFiles(t *testing.T) {
	svc := newFileService(newFakeStorage(), 16)

	_, err := svc.Upload(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoFilesProvided)
}

func TestUpload_SanitizesHostileFilename(t *testing.T) {
	storage := newFakeStorage()
	svc := newFileService(storage, 16)

	headers := makeHeaders(t, []testUpload{
		{"../../etc/evil name!!.pdf", pdfBytes},
	})

	stored, err := svc.Upload(context.Background(), headers)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	assert.NotContains(t, stored[0].StoredKey, "..")
	assert.NotContains(t, stored[0].StoredKey, "/")
	assert.True(t, strings.HasSuffix(stored[0].StoredKey, ".pdf"))
}

func TestClear_DeletesAllUploads(t *testing.T) {
	storage := newFakeStorage()
	storage.objects["one.pdf"] = pdfBytes
	storage.objects["two.png"] = pngBytes

	svc := newFileService(storage, 16)
	require.NoError(t, svc.Clear(context.Background()))

	assert.Empty(t, storage.objects)
	assert.Len(t, storage.deleted, 2)
}

func TestClear_ListFailure(t *testing.T) {
	storage := newFakeStorage()
	storage.listErr = assert.AnError

	svc := newFileService(storage, 16)
	assert.Error(t, svc.Clear(context.Background()))
}
