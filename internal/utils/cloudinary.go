// file: internal/utils/cloudinary.go
package utils

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"vidtube/internal/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Allowed upload types. Videos and thumbnails only; anything else is
// rejected before a byte leaves the process.
var (
	allowedVideoTypes = []string{"video/mp4", "video/webm", "video/quicktime"}
	allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
)

// Upload failure modes callers can match on.
var (
	ErrFileTooLarge       = fmt.Errorf("file size exceeds limit")
	ErrInvalidContentType = fmt.Errorf("invalid content type")
	ErrUnableToOpenFile   = fmt.Errorf("unable to open file")
	ErrUnableToReadFile   = fmt.Errorf("unable to read file")
	ErrMissingCredentials = fmt.Errorf("cloudinary credentials are missing")
	ErrUploadFailed       = fmt.Errorf("failed to upload file")
	ErrDeleteFailed       = fmt.Errorf("failed to delete file")
)

// UploadResult contains the outcome of a media upload. Duration is reported
// in seconds and is zero for images.
type UploadResult struct {
	URL      string
	PublicID string
	Format   string
	Size     int
	Duration float64
}

// CloudinaryService uploads media to Cloudinary with bounded retries.
type CloudinaryService struct {
	client        *cloudinary.Cloudinary
	logger        *zap.Logger
	maxFileSize   int64
	uploadTimeout time.Duration
	deleteTimeout time.Duration
	maxRetries    int
}

// NewCloudinaryService builds the media client from configuration.
func NewCloudinaryService(cfg config.CloudinaryConfig, logger *zap.Logger) (*CloudinaryService, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, ErrMissingCredentials
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{
		client:        cld,
		logger:        logger,
		maxFileSize:   cfg.MaxFileSize,
		uploadTimeout: cfg.UploadTimeout,
		deleteTimeout: 10 * time.Second,
		maxRetries:    3,
	}, nil
}

// UploadFile validates and uploads a received file, retrying transient
// failures with exponential backoff.
func (c *CloudinaryService) UploadFile(ctx context.Context, file *multipart.FileHeader, folder string) (*UploadResult, error) {
	start := time.Now()

	if file.Size > c.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d bytes", ErrFileTooLarge, file.Size, c.maxFileSize)
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnableToOpenFile, err)
	}
	defer src.Close()

	contentType, err := detectContentType(src)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(allowedVideoTypes, contentType) && !slices.Contains(allowedImageTypes, contentType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidContentType, contentType)
	}

	params := uploader.UploadParams{
		Folder:         folder,
		UseFilename:    ptrBool(true),
		UniqueFilename: ptrBool(true),
		ResourceType:   "auto",
	}

	var result *uploader.UploadResult
	operation := func() error {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %v", ErrUnableToReadFile, err))
		}
		var opErr error
		result, opErr = c.client.Upload.Upload(ctx, src, params)
		return opErr
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.uploadTimeout / 2
	err = backoff.RetryNotify(
		operation,
		backoff.WithMaxRetries(b, uint64(c.maxRetries)),
		func(err error, d time.Duration) {
			c.logger.Warn("Upload attempt failed",
				zap.String("filename", file.Filename),
				zap.Error(err),
				zap.Duration("backoff", d))
		},
	)
	if err != nil {
		c.logger.Error("All upload attempts failed",
			zap.String("filename", file.Filename),
			zap.Int("attempts", c.maxRetries),
			zap.Error(err))
		return nil, fmt.Errorf("%w after %d attempts: %v", ErrUploadFailed, c.maxRetries, err)
	}

	duration := mediaDuration(result)

	c.logger.Info("File uploaded",
		zap.String("filename", file.Filename),
		zap.String("public_id", result.PublicID),
		zap.Float64("media_duration", duration),
		zap.Duration("took", time.Since(start)))

	return &UploadResult{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Format:   result.Format,
		Size:     result.Bytes,
		Duration: duration,
	}, nil
}

// mediaDuration extracts the duration of a video upload. The typed
// uploader.UploadResult has no duration field, but the API reports it for
// video resources and the SDK keeps the decoded JSON body on Response (set
// through reflection as a pointer to the unmarshalled map).
func mediaDuration(result *uploader.UploadResult) float64 {
	var raw map[string]interface{}
	switch body := result.Response.(type) {
	case *map[string]interface{}:
		if body == nil {
			return 0
		}
		raw = *body
	case map[string]interface{}:
		raw = body
	default:
		return 0
	}
	if d, ok := raw["duration"].(float64); ok {
		return d
	}
	return 0
}

// DeleteFile removes a previously uploaded asset by its public ID.
func (c *CloudinaryService) DeleteFile(ctx context.Context, publicID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.deleteTimeout)
	defer cancel()

	if _, err := c.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		c.logger.Error("Failed to delete file",
			zap.String("public_id", publicID),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

func detectContentType(src multipart.File) (string, error) {
	buffer := make([]byte, 512)
	if _, err := src.Read(buffer); err != nil && err != io.EOF {
		return "", fmt.Errorf("%w: %v", ErrUnableToReadFile, err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnableToReadFile, err)
	}
	return http.DetectContentType(buffer), nil
}

func ptrBool(b bool) *bool {
	return &b
}
