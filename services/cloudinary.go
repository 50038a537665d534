package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"storefront-server/utils"
)

type CloudinaryService struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

func NewCloudinaryService(cloudinaryURL, folder string, logger *zap.Logger) (*CloudinaryService, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL is required")
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	logger.Info("cloudinary initialized",
		zap.String("cloud", cld.Config.Cloud.CloudName),
		zap.String("folder", folder))
	return &CloudinaryService{cld: cld, folder: folder, logger: logger}, nil
}

// Upload sends the image to the configured folder and returns its HTTPS URL.
func (cs *CloudinaryService) Upload(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	result, err := cs.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID(fh.Filename, time.Now()),
		Folder:         cs.folder,
		UniqueFilename: &[]bool{true}[0],
		Overwrite:      &[]bool{false}[0],
		ResourceType:   "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("failed to upload image: %s", result.Error.Message)
	}

	url := result.SecureURL
	if url == "" {
		url = result.URL
	}
	return forceHTTPS(url), nil
}

func publicID(filename string, now time.Time) string {
	safe := utils.SafeFilename(filename)
	base := strings.TrimSuffix(safe, filepath.Ext(safe))
	return fmt.Sprintf("%s_%d", base, now.UnixNano())
}

// forceHTTPS ensures Cloudinary URLs use https scheme
func forceHTTPS(in string) string {
	if in == "" {
		return in
	}
	out := strings.TrimSpace(in)
	return strings.Replace(out, "http://", "https://", 1)
}
