package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"invotab/internal/config"
	"invotab/internal/domain"
	"invotab/internal/port"
)

// FileService defines the upload management contract.
type FileService interface {
	// Upload stores every acceptable file from the batch and returns their
	// metadata. Files with a disallowed extension or over the size limit are
	// skipped, not fatal; an empty batch is an error.
	Upload(ctx context.Context, files []*multipart.FileHeader) ([]domain.FileMeta, error)
	// Clear best-effort deletes every stored upload, ignoring individual
	// deletion failures.
	Clear(ctx context.Context) error
}

type fileService struct {
	storage port.ObjectStorage
	cfg     *config.UploadConfig
}

// NewFileService creates a new FileService implementation.
func NewFileService(storage port.ObjectStorage, cfg *config.UploadConfig) FileService {
	return &fileService{storage: storage, cfg: cfg}
}

func (s *fileService) Upload(ctx context.Context, files []*multipart.FileHeader) ([]domain.FileMeta, error) {
	if len(files) == 0 {
		return nil, domain.ErrNoFilesProvided
	}

	stored := make([]domain.FileMeta, 0, len(files))
	for _, header := range files {
		meta, err := s.storeOne(ctx, header)
		if err != nil {
			log.Printf("fileService.Upload: skipping %q: %v", header.Filename, err)
			continue
		}
		stored = append(stored, *meta)
	}

	return stored, nil
}

func (s *fileService) storeOne(ctx context.Context, header *multipart.FileHeader) (*domain.FileMeta, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	contentType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	if header.Size > s.cfg.MaxFileSizeBytes() {
		return nil, domain.ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Magic-byte sniff so a renamed executable can't slip through on
	// extension alone.
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detected := http.DetectContentType(buf[:n])
	if _, valid := domain.AllowedContentTypes[detected]; !valid {
		return nil, domain.ErrUnsupportedFileType
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking upload: %w", err)
	}

	fileID := uuid.New()
	key := fmt.Sprintf("%s_%s", fileID, sanitizeFilename(header.Filename))

	if err := s.storage.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        file,
		ContentType: contentType,
		Size:        header.Size,
	}); err != nil {
		log.Printf("fileService.storeOne: storage upload failed for %q: %v", header.Filename, err)
		return nil, domain.ErrUploadFailed
	}

	return &domain.FileMeta{
		ID:           fileID,
		OriginalName: header.Filename,
		StoredKey:    key,
		FileSize:     header.Size,
		ContentType:  contentType,
		UploadedAt:   time.Now().UTC(),
	}, nil
}

func (s *fileService) Clear(ctx context.Context) error {
	keys, err := s.storage.List(ctx)
	if err != nil {
		return fmt.Errorf("listing uploads: %w", err)
	}

	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			log.Printf("fileService.Clear: failed to delete %q: %v", key, err)
		}
	}
	return nil
}

// nonAlphanumeric matches characters that are not alphanumeric, dot, hyphen,
// or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// sanitizeFilename cleans an original filename for use in a storage key.
// Path separators and shell-hostile characters collapse to underscores and
// the result is truncated to 100 chars.
func sanitizeFilename(name string) string {
	s := filepath.Base(name)
	s = nonAlphanumeric.ReplaceAllString(s, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[len(s)-100:]
	}
	if s == "" || s == "." {
		s = "upload"
	}
	return s
}
