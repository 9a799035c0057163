package port

import (
	"context"
	"io"
)

// UploadInput encapsulates the parameters needed to store an uploaded file.
type UploadInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// ObjectStorage abstracts the upload store. Keys are flat names generated at
// upload time; List returns every stored key so Clear can sweep the store.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]string, error)
}
