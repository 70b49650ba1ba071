package service

import (
	"context"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bacheca/board-api/internal/core/domain"
	"github.com/bacheca/board-api/internal/core/ports"
)

const MaxUploadSize = 5 << 20 // 5MB

// allowedImageTypes maps sniffed MIME types to their stored extension.
// The client-declared Content-Type is never trusted.
var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// UploadService validates one uploaded image and stores it under a
// collision-resistant name.
type UploadService struct {
	store ports.ImageStore
	log   zerolog.Logger
}

func NewUploadService(store ports.ImageStore, log zerolog.Logger) *UploadService {
	return &UploadService{store: store, log: log}
}

// Store reads the upload, sniffs its content type, and writes it to object
// storage. declaredSize is the size announced by the client; anything over
// the limit is rejected before the body is read, and the read itself is
// capped one byte past the limit to catch liars.
func (s *UploadService) Store(ctx context.Context, r io.Reader, declaredSize int64) (*ports.UploadResult, error) {
	if declaredSize > MaxUploadSize {
		return nil, domain.ErrUploadTooBig
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, domain.ErrInvalidUpload
	}
	if len(data) > MaxUploadSize {
		return nil, domain.ErrUploadTooBig
	}

	mtype := mimetype.Detect(data)
	ext, ok := allowedImageTypes[mtype.String()]
	if !ok {
		return nil, domain.ErrInvalidUpload
	}

	filename := "img_" + uuid.NewString() + "." + ext
	path, err := s.store.Put(ctx, filename, mtype.String(), data)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("filename", filename).Int("size", len(data)).Str("type", mtype.String()).Msg("image uploaded")
	return &ports.UploadResult{
		Filename: filename,
		Path:     path,
		Size:     int64(len(data)),
		MimeType: mtype.String(),
	}, nil
}
