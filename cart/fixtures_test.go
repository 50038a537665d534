package cart_test

import (
	"errors"

	"storefront-server/models"
)

func bandana() models.Product {
	return models.Product{
		ID:    "bandana-001",
		Name:  "Forest Bandana",
		Price: 12.50,
		Image: "/img/bandana.jpg",
		Options: &models.ProductOptions{
			Colors: []models.ColorOption{
				{Value: "forest", Label: "Forest Green", Swatch: "#2f5d3a", Image: "/img/bandana-forest.jpg"},
				{Value: "rust", Label: "Rust", Swatch: "#b7410e"},
			},
			Sizes:         []models.SizeOption{models.NewSize("S"), {Value: "m", Label: "Medium"}},
			SizesRequired: true,
			DogName:       true,
			DogNamePrompt: true,
			Note:          true,
		},
	}
}

func mug() models.Product {
	return models.Product{
		ID:    "mug-002",
		Slug:  "gratitude-mug",
		Name:  "Gratitude Mug",
		Price: 9.00,
		Image: "/img/mug.jpg",
	}
}

func tag() models.Product {
	return models.Product{
		ID:    "tag-003",
		Name:  "Name Tag",
		Price: 5.25,
		Options: &models.ProductOptions{
			DogName: true,
		},
	}
}

func catalog() []models.Product {
	return []models.Product{bandana(), mug(), tag()}
}

// failingStore accepts reads but refuses every write.
type failingStore struct{}

func (failingStore) GetItem(string) (string, bool, error) { return "", false, nil }
func (failingStore) SetItem(string, string) error         { return errors.New("quota exceeded") }

// brokenStore fails reads too.
type brokenStore struct{ failingStore }

func (brokenStore) GetItem(string) (string, bool, error) { return "", false, errors.New("disk gone") }
