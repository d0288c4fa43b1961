package cloudinary

import (
	"context"
	"mime/multipart"

	"board-post-service/internal/domain/custom_errors"
)

// Disabled stores nothing. It is wired when no storage is configured.
type Disabled struct{}

func (Disabled) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return "", custom_errors.ErrUploadDisabled
}

func (Disabled) Remove(ctx context.Context, location string) error {
	return nil
}
