package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"storefront-server/models"
)

// FileCatalog keeps the catalog in a single pretty-printed JSON file.
type FileCatalog struct {
	path string
	// mu serializes read-modify-write cycles within this process
	mu sync.Mutex
}

func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{path: path}
}

func (fc *FileCatalog) Path() string {
	return fc.path
}

func (fc *FileCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	return fc.read()
}

func (fc *FileCatalog) ReplaceAll(ctx context.Context, products []models.Product) (int, error) {
	if err := PrepareProducts(products); err != nil {
		return 0, err
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	if err := fc.write(products); err != nil {
		return 0, err
	}
	return len(products), nil
}

func (fc *FileCatalog) RateProduct(ctx context.Context, id string, rating int) (*models.Product, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	products, err := fc.read()
	if err != nil {
		return nil, err
	}
	i := findProduct(products, id)
	if i < 0 {
		return nil, ErrProductNotFound
	}

	applyRating(&products[i], rating)
	if err := fc.write(products); err != nil {
		return nil, err
	}
	p := products[i]
	return &p, nil
}

func (fc *FileCatalog) Close() error {
	return nil
}

func (fc *FileCatalog) read() ([]models.Product, error) {
	data, err := os.ReadFile(fc.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Product{}, nil
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", fc.path, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// write replaces the file through a temp file so readers never see a
// half-written catalog.
func (fc *FileCatalog) write(products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	dir := filepath.Dir(fc.path)
	tmp, err := os.CreateTemp(dir, ".products-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp catalog: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), fc.path); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	return nil
}
