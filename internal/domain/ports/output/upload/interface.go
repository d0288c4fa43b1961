package upload

import (
	"context"
	"mime/multipart"
)

//go:generate mockery --name Uploader --dir . --output ../../../../../mocks/upload --outpkg mocks --filename Uploader.go
type Uploader interface {
	// Upload stores the file and returns a location that can be fetched later.
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, location string) error
}
