package ports

import (
	"context"
	"io"
)

// UploadResult describes a stored image.
type UploadResult struct {
	Filename string
	Path     string
	Size     int64
	MimeType string
}

// UploadService validates and stores one uploaded image: declared size
// capped at 5MB, MIME type sniffed from content against the jpeg/png/gif/
// webp allow-list, filename generated collision-resistant.
type UploadService interface {
	Store(ctx context.Context, r io.Reader, declaredSize int64) (*UploadResult, error)
}

// ImageStore is the object-storage boundary behind uploads.
type ImageStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
	Remove(ctx context.Context, name string) error
}
