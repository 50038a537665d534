package cart

import (
	"fmt"
	"strings"

	"storefront-server/models"
)

// MaxGalleryImages bounds the product page thumbnail strip.
const MaxGalleryImages = 10

func Dollars(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// SizeLabel maps a stored size value to its display label.
func SizeLabel(opts models.ProductOptions, value string) string {
	if value == "" {
		return value
	}
	for _, s := range opts.Sizes {
		if s.Value == value {
			return s.DisplayLabel()
		}
	}
	return value
}

// ColorLabel maps a stored color value to its display label.
func ColorLabel(opts models.ProductOptions, value string) string {
	if value == "" {
		return value
	}
	for _, c := range opts.Colors {
		if c.Value == value {
			if c.Label != "" {
				return c.Label
			}
			return value
		}
	}
	return value
}

// DisplayImage prefers the chosen swatch's own image over the product image.
func DisplayImage(p *models.Product, color string) string {
	for _, c := range p.Opts().Colors {
		if c.Value == color && c.Image != "" {
			return c.Image
		}
	}
	return p.Image
}

// GalleryImages lists the product page images: the swatch image first, then
// the product's gallery without repeats, falling back to the main image.
func GalleryImages(p *models.Product, color string) []string {
	var out []string
	seen := make(map[string]bool)
	push := func(src string) {
		if src == "" || seen[src] {
			return
		}
		seen[src] = true
		out = append(out, src)
	}

	push(DisplayImage(p, color))
	for _, src := range p.Images {
		push(src)
	}
	if len(out) == 0 {
		push(p.Image)
	}
	if len(out) > MaxGalleryImages {
		out = out[:MaxGalleryImages]
	}
	return out
}

// LineDetails renders the option summary shown under a cart line.
func LineDetails(p *models.Product, li models.LineItem) string {
	opts := p.Opts()
	var parts []string
	if li.Color != "" {
		parts = append(parts, "Color: "+ColorLabel(opts, li.Color))
	}
	if li.Size != "" {
		parts = append(parts, "Size: "+SizeLabel(opts, li.Size))
	}
	if li.DogName != "" {
		parts = append(parts, "Name: "+li.DogName)
	} else {
		parts = append(parts, "No personalization")
	}
	if li.Note != "" {
		parts = append(parts, "Note: "+li.Note)
	}
	return strings.Join(parts, " • ")
}
