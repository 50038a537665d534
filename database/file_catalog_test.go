package database_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-server/database"
	"storefront-server/models"
)

const seedCatalog = `[
  {"id": "bandana-001", "name": "Forest Bandana", "price": 12.5, "description": "Soft", "image": "/img/b.jpg", "badge": "new"},
  {"id": "mug-002", "slug": "gratitude-mug", "name": "Gratitude Mug", "price": 9, "description": "", "image": "/img/m.jpg"}
]`

func newCatalog(t *testing.T, content string) *database.FileCatalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return database.NewFileCatalog(path)
}

func TestFileCatalog_ListMissingFileIsEmpty(t *testing.T) {
	fc := newCatalog(t, "")

	products, err := fc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestFileCatalog_ListCorruptFileFails(t *testing.T) {
	fc := newCatalog(t, "{not json")

	_, err := fc.ListProducts(context.Background())
	assert.Error(t, err)
}

func TestFileCatalog_ReplaceAllWritesPrettyJSON(t *testing.T) {
	fc := newCatalog(t, seedCatalog)
	ctx := context.Background()

	products, err := fc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	products[0].Price = 14
	n, err := fc.ReplaceAll(ctx, products)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	raw, err := os.ReadFile(fc.Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "[\n  {"), "expected 2-space indent, got %q", raw[:10])

	var decoded []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.JSONEq(t, `"new"`, string(decoded[0]["badge"]), "unknown keys survive a rewrite")
	assert.JSONEq(t, `14`, string(decoded[0]["price"]))
}

func TestFileCatalog_ReplaceAllAdoptsSlug(t *testing.T) {
	fc := newCatalog(t, "")
	ctx := context.Background()

	n, err := fc.ReplaceAll(ctx, []models.Product{{Slug: "sticker", Name: "Sticker", Price: 2}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	products, err := fc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "sticker", products[0].ID)
}

func TestFileCatalog_ReplaceAllRejectsUnidentified(t *testing.T) {
	fc := newCatalog(t, seedCatalog)
	ctx := context.Background()

	_, err := fc.ReplaceAll(ctx, []models.Product{{ID: "ok"}, {Name: "anonymous"}})

	var verr *database.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Index)

	products, err := fc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2, "catalog untouched after a rejected payload")
}

func TestFileCatalog_ReplaceAllSanitizesDescriptions(t *testing.T) {
	fc := newCatalog(t, "")
	ctx := context.Background()

	_, err := fc.ReplaceAll(ctx, []models.Product{{
		ID:          "x",
		Description: `<p onclick="steal()">Hi</p><script>alert(1)</script>`,
	}})
	require.NoError(t, err)

	products, err := fc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<p>Hi</p>", products[0].Description)
}

func TestFileCatalog_OptionKeysSurviveReplaceAll(t *testing.T) {
	fc := newCatalog(t, `[{"id": "b1", "name": "Bandana", "price": 10,
	  "options": {"sizeLabel": "Neck size", "sizes": ["S"], "layout": "grid",
	              "colors": [{"value": "red", "label": "Red", "swatch": "#f00", "sku": "R1"}]}}]`)
	ctx := context.Background()

	products, err := fc.ListProducts(ctx)
	require.NoError(t, err)
	require.NotNil(t, products[0].Options)
	assert.Equal(t, "Neck size", products[0].Options.SizeLabel)

	_, err = fc.ReplaceAll(ctx, products)
	require.NoError(t, err)

	raw, err := os.ReadFile(fc.Path())
	require.NoError(t, err)
	var onDisk []struct {
		Options struct {
			SizeLabel string           `json:"sizeLabel"`
			Layout    string           `json:"layout"`
			Colors    []map[string]any `json:"colors"`
		} `json:"options"`
	}
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	require.Len(t, onDisk, 1)
	assert.Equal(t, "Neck size", onDisk[0].Options.SizeLabel)
	assert.Equal(t, "grid", onDisk[0].Options.Layout)
	require.Len(t, onDisk[0].Options.Colors, 1)
	assert.Equal(t, "R1", onDisk[0].Options.Colors[0]["sku"])
	assert.Equal(t, "#f00", onDisk[0].Options.Colors[0]["swatch"])
}

func TestFileCatalog_ReplaceAllEmptyList(t *testing.T) {
	fc := newCatalog(t, seedCatalog)
	ctx := context.Background()

	n, err := fc.ReplaceAll(ctx, []models.Product{})
	require.NoError(t, err)
	assert.Zero(t, n)

	raw, err := os.ReadFile(fc.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestFileCatalog_RateProduct(t *testing.T) {
	fc := newCatalog(t, seedCatalog)
	ctx := context.Background()

	p, err := fc.RateProduct(ctx, "mug-002", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, p.RatingCount)
	assert.InDelta(t, 5.0, p.RatingTotal, 1e-9)
	assert.InDelta(t, 5.0, p.RatingAverage, 1e-9)

	p, err = fc.RateProduct(ctx, "mug-002", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.RatingCount)
	assert.InDelta(t, 7.0, p.RatingTotal, 1e-9)
	assert.InDelta(t, 3.5, p.RatingAverage, 1e-9)

	products, err := fc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, products[1].RatingCount)
}

func TestFileCatalog_FractionalRatingTotal(t *testing.T) {
	fc := newCatalog(t, `[{"id": "b1", "name": "Bandana", "price": 10,
	  "ratingCount": 2, "ratingTotal": 8.5, "ratingAverage": 4.25}]`)
	ctx := context.Background()

	products, err := fc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.InDelta(t, 8.5, products[0].RatingTotal, 1e-9)

	p, err := fc.RateProduct(ctx, "b1", 4)
	require.NoError(t, err)
	assert.Equal(t, 3, p.RatingCount)
	assert.InDelta(t, 12.5, p.RatingTotal, 1e-9)
	assert.InDelta(t, 12.5/3, p.RatingAverage, 1e-9)
}

func TestFileCatalog_RateUnknownProduct(t *testing.T) {
	fc := newCatalog(t, seedCatalog)

	_, err := fc.RateProduct(context.Background(), "nope", 4)
	assert.ErrorIs(t, err, database.ErrProductNotFound)
}

func TestFileCatalog_ConcurrentRatingsAreNotLost(t *testing.T) {
	fc := newCatalog(t, seedCatalog)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fc.RateProduct(ctx, "bandana-001", 4)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	products, err := fc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, products[0].RatingCount)
	assert.InDelta(t, 80.0, products[0].RatingTotal, 1e-9)
}

func TestPrepareProducts_KeepsExistingID(t *testing.T) {
	products := []models.Product{{ID: "a", Slug: "b"}}
	require.NoError(t, database.PrepareProducts(products))
	assert.Equal(t, "a", products[0].ID)
}
