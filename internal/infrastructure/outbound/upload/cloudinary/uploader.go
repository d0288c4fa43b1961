package cloudinary

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"board-post-service/internal/domain/custom_errors"
	ports "board-post-service/internal/domain/ports/output"
	"board-post-service/internal/infrastructure/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	defaultMaxSize = 10 << 20
	uploadTimeout  = 30 * time.Second
)

var validExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".svg"}

type Uploader struct {
	cld     *cloudinary.Cloudinary
	folder  string
	maxSize int64
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewUploader(cfg config.Upload, log ports.Logger, metrics ports.MetricsProvider) (*Uploader, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials are not configured")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}

	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}

	return &Uploader{
		cld:     cld,
		folder:  cfg.Folder,
		maxSize: maxSize,
		log:     log,
		metrics: metrics,
	}, nil
}

func (u *Uploader) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if err := CheckFile(file, u.maxSize); err != nil {
		u.metrics.IncrementUploadOperations("upload", false)
		u.log.Debug("Rejected upload", slog.String("filename", file.Filename), slog.String("error", err.Error()))
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		u.metrics.IncrementUploadOperations("upload", false)
		u.log.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		return "", custom_errors.ErrUploadFailed
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	result, err := u.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:         u.folder,
		UseFilename:    boolPointer(true),
		UniqueFilename: boolPointer(true),
		Overwrite:      boolPointer(false),
		ResourceType:   "image",
	})
	if err != nil {
		u.metrics.IncrementUploadOperations("upload", false)
		u.log.Error("Cloudinary upload failed", slog.String("filename", file.Filename), slog.String("error", err.Error()))
		return "", custom_errors.ErrUploadFailed
	}
	if result.SecureURL == "" {
		u.metrics.IncrementUploadOperations("upload", false)
		u.log.Error("Cloudinary returned an empty url", slog.String("public_id", result.PublicID))
		return "", custom_errors.ErrUploadFailed
	}

	u.metrics.IncrementUploadOperations("upload", true)
	u.log.Debug("File uploaded", slog.String("url", result.SecureURL), slog.Int64("size", file.Size))
	return result.SecureURL, nil
}

func (u *Uploader) Remove(ctx context.Context, location string) error {
	publicID := PublicIDFromURL(location)
	if publicID == "" {
		return fmt.Errorf("cannot derive public id from %q", location)
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	if _, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		u.metrics.IncrementUploadOperations("remove", false)
		return fmt.Errorf("destroy %s: %w", publicID, err)
	}

	u.metrics.IncrementUploadOperations("remove", true)
	u.log.Debug("Uploaded file removed", slog.String("public_id", publicID))
	return nil
}

// CheckFile accepts image files up to maxSize bytes.
func CheckFile(file *multipart.FileHeader, maxSize int64) error {
	ext := strings.ToLower(path.Ext(file.Filename))
	valid := false
	for _, e := range validExtensions {
		if ext == e {
			valid = true
			break
		}
	}
	if !valid {
		return custom_errors.ErrUploadInvalidType
	}
	if file.Size > maxSize {
		return custom_errors.ErrUploadTooLarge
	}
	return nil
}

// PublicIDFromURL turns
// https://res.cloudinary.com/<cloud>/image/upload/v1712/post_pictures/cat_x1.png
// into post_pictures/cat_x1.
func PublicIDFromURL(location string) string {
	_, rest, found := strings.Cut(location, "/upload/")
	if !found || rest == "" {
		return ""
	}

	if first, tail, ok := strings.Cut(rest, "/"); ok && len(first) > 1 && first[0] == 'v' && isDigits(first[1:]) {
		rest = tail
	}

	return strings.TrimSuffix(rest, path.Ext(rest))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func boolPointer(b bool) *bool {
	return &b
}
