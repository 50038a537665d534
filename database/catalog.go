package database

import (
	"context"
	"errors"
	"fmt"

	"storefront-server/models"
	"storefront-server/utils"
)

var ErrProductNotFound = errors.New("product not found")

// ValidationError reports an admin payload the catalog refuses to store.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return e.Reason
	}
	return fmt.Sprintf("product %d: %s", e.Index, e.Reason)
}

// Catalog is the product store behind the storefront and admin APIs.
type Catalog interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	// ReplaceAll swaps the whole catalog and returns the number of products
	// stored. Concurrent callers are last-writer-wins.
	ReplaceAll(ctx context.Context, products []models.Product) (int, error)
	// RateProduct adds one rating (1..5) and returns the updated product.
	RateProduct(ctx context.Context, id string, rating int) (*models.Product, error)
	Close() error
}

// PrepareProducts checks a replace-all payload. Every entry needs an id; an
// entry without one adopts its slug. Descriptions are sanitized in place.
func PrepareProducts(products []models.Product) error {
	for i := range products {
		p := &products[i]
		if p.ID == "" {
			if p.Slug == "" {
				return &ValidationError{Index: i, Reason: "each product must have an id (or slug)"}
			}
			p.ID = p.Slug
		}
		p.Description = utils.SanitizeHTML(p.Description)
	}
	return nil
}

// applyRating folds one rating into the product's running totals.
func applyRating(p *models.Product, rating int) {
	p.RatingCount++
	p.RatingTotal += float64(rating)
	p.RatingAverage = p.RatingTotal / float64(p.RatingCount)
}

func findProduct(products []models.Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}
