package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// ImageStorage uploads and removes package images.
type ImageStorage interface {
	UploadImage(ctx context.Context, file io.Reader, folder string) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// CloudinaryStorage implements ImageStorage on Cloudinary.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	logger *zap.Logger
}

// NewCloudinaryStorage creates a new CloudinaryStorage instance.
func NewCloudinaryStorage(cld *cloudinary.Cloudinary, logger *zap.Logger) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld, logger: logger}
}

// UploadImage uploads an image into folder and returns its secure URL.
func (s *CloudinaryStorage) UploadImage(ctx context.Context, file io.Reader, folder string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorage: failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("CloudinaryStorage: upload rejected: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("CloudinaryStorage: no URL returned")
	}
	s.logger.Info("Image uploaded", zap.String("publicId", result.PublicID), zap.String("folder", folder))
	return result.SecureURL, nil
}

// DeleteImage deletes an image given its public ID.
func (s *CloudinaryStorage) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("CloudinaryStorage: failed to delete image: %w", err)
	}
	return nil
}
