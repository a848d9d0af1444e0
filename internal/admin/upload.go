package admin

import (
	"bytes"
	"context"
	"io"
	"slices"

	apperrors "github.com/prakhar2b/sm-dryfruto/pkg/errors"
)

// MaxUploadBytes is the largest image the admin accepts.
const MaxUploadBytes = 5 << 20

// AllowedImageTypes lists the accepted upload MIME types.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Upload stores an image through the backend and returns its absolute URL.
// Type and size are checked before anything is sent.
func (s *Service) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if !slices.Contains(AllowedImageTypes, contentType) {
		return "", apperrors.InvalidInput("invalid file type; upload a JPEG, PNG, GIF or WebP image")
	}
	if size > MaxUploadBytes {
		return "", errTooLarge()
	}

	var buf bytes.Buffer
	n, err := buf.ReadFrom(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", apperrors.InvalidInput("could not read uploaded file")
	}
	if n > MaxUploadBytes {
		return "", errTooLarge()
	}
	if n == 0 {
		return "", apperrors.InvalidInput("uploaded file is empty")
	}

	path, err := s.backend.Upload(ctx, filename, contentType, buf.Bytes())
	if err != nil {
		return "", apperrors.BackendFailure("UPLOAD_FAILED", "error uploading image", err)
	}
	return s.backend.Origin() + path, nil
}

func errTooLarge() error {
	return apperrors.InvalidInput("file too large; the maximum size is 5MB")
}
