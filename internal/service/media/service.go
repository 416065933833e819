package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"smart-campus/internal/config"
	"smart-campus/internal/domain"
)

// MaxUploadSize caps a single image at 10 MiB.
const MaxUploadSize = 10 << 20

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Upload stores an image blob and returns its storage path plus the public
// URL. Uploaded paths end up in the image fields of users, events, clubs and
// lost items, so there is no separate media table.
type Service interface {
	Upload(ctx context.Context, userID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, storagePath string) error
	PublicURL(storagePath string) string
}

type UploadResult struct {
	StoragePath string `json:"storage_path"`
	URL         string `json:"url"`
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	MimeType    string `json:"mime_type"`
}

type service struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(minioClient *minio.Client, cfg *config.Config) Service {
	return &service{minioClient: minioClient, cfg: cfg}
}

func (s *service) Upload(ctx context.Context, userID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*UploadResult, error) {
	if !allowedMimeTypes[mimeType] {
		return nil, fmt.Errorf("%w: unsupported file type %q", domain.ErrValidation, mimeType)
	}
	if fileSize <= 0 || fileSize > MaxUploadSize {
		return nil, fmt.Errorf("%w: file size must be between 1 byte and %d bytes", domain.ErrValidation, MaxUploadSize)
	}

	storagePath := fmt.Sprintf("uploads/%s/%s", time.Now().Format("2006/01"), uuid.New().String())

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
		UserMetadata: map[string]string{
			"uploaded-by": userID.String(),
			"file-name":   fileName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return &UploadResult{
		StoragePath: storagePath,
		URL:         s.PublicURL(storagePath),
		FileName:    fileName,
		FileSize:    fileSize,
		MimeType:    mimeType,
	}, nil
}

func (s *service) Delete(ctx context.Context, storagePath string) error {
	return s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
}

func (s *service) PublicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}
