// Package custom_errors holds the sentinel errors shared by every layer.
// Handlers map them onto HTTP status codes with errors.Is.
package custom_errors

import "errors"

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrPostValidation = errors.New("post validation failed")
	ErrForbidden      = errors.New("user is not the author")
	ErrInterestNotSet = errors.New("interest is not set")

	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryCreateFailed = errors.New("failed to create category")
	ErrCategoryUpdateFailed = errors.New("failed to update category")
	ErrCategoryDeleteFailed = errors.New("failed to delete category")

	ErrDatabaseQuery = errors.New("database query failed")
	ErrCacheMiss     = errors.New("cache miss")

	ErrUploadFailed      = errors.New("upload failed")
	ErrUploadInvalidType = errors.New("unsupported file type")
	ErrUploadTooLarge    = errors.New("file is too large")
	ErrUploadDisabled    = errors.New("uploads are disabled")

	ErrInvalidToken = errors.New("invalid or expired token")
)
