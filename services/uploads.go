package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"storefront-server/utils"
)

// Uploader stores an admin image and returns the URL the catalog should use.
type Uploader interface {
	Upload(ctx context.Context, fh *multipart.FileHeader) (string, error)
}

// DiskUploader writes images under dir, served back from /uploads.
type DiskUploader struct {
	dir string
	now func() time.Time
}

func NewDiskUploader(dir string) (*DiskUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskUploader{dir: dir, now: time.Now}, nil
}

func (du *DiskUploader) Dir() string {
	return du.dir
}

func (du *DiskUploader) Upload(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	name := fmt.Sprintf("%d-%s", du.now().UnixMilli(), utils.SafeFilename(fh.Filename))

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(du.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	return "/uploads/" + name, nil
}
