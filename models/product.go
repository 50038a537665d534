package models

import (
	"encoding/json"
	"fmt"
)

// Product is one catalog entry as stored in products.json.
//
// Keys the storefront does not know about are kept in Extra and written back
// unchanged, so admin tooling can attach its own fields without losing them
// on the next save.
type Product struct {
	ID            string          `json:"id"`
	Slug          string          `json:"slug,omitempty"`
	Handle        string          `json:"handle,omitempty"`
	Name          string          `json:"name"`
	Price         float64         `json:"price"`
	Description   string          `json:"description"`
	Image         string          `json:"image"`
	Images        []string        `json:"images,omitempty"`
	Options       *ProductOptions `json:"options,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	RatingCount   int             `json:"ratingCount,omitempty"`
	RatingTotal   float64         `json:"ratingTotal,omitempty"`
	RatingAverage float64         `json:"ratingAverage,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var productKeys = []string{
	"id", "slug", "handle", "name", "price", "description", "image", "images",
	"options", "tags", "ratingCount", "ratingTotal", "ratingAverage",
}

type productAlias Product

func (p *Product) UnmarshalJSON(data []byte) error {
	var alias productAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	extra, err := splitExtra(data, productKeys)
	if err != nil {
		return err
	}
	alias.Extra = extra

	*p = Product(alias)
	return nil
}

func (p Product) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(productAlias(p))
	if err != nil {
		return nil, err
	}
	return mergeExtra(known, p.Extra)
}

// Opts never returns nil so callers can read flags without a guard.
func (p *Product) Opts() ProductOptions {
	if p == nil || p.Options == nil {
		return ProductOptions{}
	}
	return *p.Options
}

func (Product) TableName() string {
	return "products"
}

func (Product) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		position INT NOT NULL,
		data JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);`
}

// ProductOptions describes the customizations a shopper may pick. Like
// Product, unknown keys ride along in Extra.
type ProductOptions struct {
	Colors        []ColorOption `json:"colors,omitempty"`
	Sizes         []SizeOption  `json:"sizes,omitempty"`
	SizeLabel     string        `json:"sizeLabel,omitempty"`
	SizesRequired bool          `json:"sizesRequired,omitempty"`
	DogName       bool          `json:"dogName,omitempty"`
	DogNamePrompt bool          `json:"dogNamePrompt,omitempty"`
	Note          bool          `json:"note,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var optionKeys = []string{
	"colors", "sizes", "sizeLabel", "sizesRequired", "dogName", "dogNamePrompt", "note",
}

type optionsAlias ProductOptions

func (o *ProductOptions) UnmarshalJSON(data []byte) error {
	var alias optionsAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	extra, err := splitExtra(data, optionKeys)
	if err != nil {
		return err
	}
	alias.Extra = extra

	*o = ProductOptions(alias)
	return nil
}

func (o ProductOptions) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(optionsAlias(o))
	if err != nil {
		return nil, err
	}
	return mergeExtra(known, o.Extra)
}

// SizeHeading is the label shown above the size picker.
func (o ProductOptions) SizeHeading() string {
	if o.SizeLabel != "" {
		return o.SizeLabel
	}
	return "Size"
}

func (o ProductOptions) HasColors() bool { return len(o.Colors) > 0 }
func (o ProductOptions) HasSizes() bool  { return len(o.Sizes) > 0 }

// NameRequired reports whether a personalization name must be supplied.
func (o ProductOptions) NameRequired() bool {
	return o.DogName && o.DogNamePrompt
}

// DefaultColor is the first color's value, or "" when there are none.
func (o ProductOptions) DefaultColor() string {
	if len(o.Colors) == 0 {
		return ""
	}
	return o.Colors[0].Value
}

type ColorOption struct {
	Value  string `json:"value"`
	Label  string `json:"label,omitempty"`
	Swatch string `json:"swatch,omitempty"`
	Image  string `json:"image,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var colorKeys = []string{"value", "label", "swatch", "image"}

type colorAlias ColorOption

func (c *ColorOption) UnmarshalJSON(data []byte) error {
	var alias colorAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	extra, err := splitExtra(data, colorKeys)
	if err != nil {
		return err
	}
	alias.Extra = extra

	*c = ColorOption(alias)
	return nil
}

func (c ColorOption) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(colorAlias(c))
	if err != nil {
		return nil, err
	}
	return mergeExtra(known, c.Extra)
}

// SizeOption accepts either a bare string ("M") or {"value","label"}.
type SizeOption struct {
	Value string
	Label string

	bare bool
}

func NewSize(label string) SizeOption {
	return SizeOption{Value: label, Label: label, bare: true}
}

func (s SizeOption) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Value
}

func (s *SizeOption) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = NewSize(str)
		return nil
	}

	var obj struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("size option must be a string or {value,label}: %w", err)
	}
	*s = SizeOption{Value: obj.Value, Label: obj.Label}
	return nil
}

func (s SizeOption) MarshalJSON() ([]byte, error) {
	if s.bare {
		return json.Marshal(s.Value)
	}
	return json.Marshal(struct {
		Value string `json:"value"`
		Label string `json:"label,omitempty"`
	}{s.Value, s.Label})
}
