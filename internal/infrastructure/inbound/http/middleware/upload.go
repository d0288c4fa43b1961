package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"board-post-service/internal/domain/custom_errors"
	ports "board-post-service/internal/domain/ports/output"
	"board-post-service/internal/domain/ports/output/upload"

	"github.com/gin-gonic/gin"
)

const uploadLocationKey = "upload_location"

// SingleFile uploads the multipart field when present and stores the resulting
// location for the handler. Requests without the field pass through untouched.
func SingleFile(field string, uploader upload.Uploader, log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile(field)
		if err != nil {
			if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
				log.Debug("Failed to read multipart file", slog.String("field", field), slog.String("error", err.Error()))
			}
			c.Next()
			return
		}

		location, err := uploader.Upload(c.Request.Context(), file)
		if err != nil {
			switch {
			case errors.Is(err, custom_errors.ErrUploadDisabled):
				// No storage configured: the post is created without an image.
				log.Warn("Upload skipped, no storage configured", slog.String("filename", file.Filename))
				c.Next()
			case errors.Is(err, custom_errors.ErrUploadInvalidType), errors.Is(err, custom_errors.ErrUploadTooLarge):
				log.Debug("Rejected upload", slog.String("filename", file.Filename), slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusPreconditionFailed, gin.H{"message": "invalid data format"})
			default:
				log.Error("Upload failed", slog.String("filename", file.Filename), slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"message": "failed to upload file"})
			}
			return
		}

		c.Set(uploadLocationKey, location)
		c.Next()
	}
}

// UploadedLocation returns the stored location, or nil when nothing was uploaded.
func UploadedLocation(c *gin.Context) *string {
	location := c.GetString(uploadLocationKey)
	if location == "" {
		return nil
	}
	return &location
}
