package cart

import (
	"strings"
	"unicode/utf8"

	"storefront-server/models"
)

// MaxDogNameLength caps personalization names; longer input is cut silently.
const MaxDogNameLength = 15

// NoName is stored when the shopper opts out of personalization.
const NoName = "none"

// NormalizeDogName trims raw and applies the personalization rules. The
// second return is false when nothing usable was entered.
func NormalizeDogName(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", false
	}
	if strings.EqualFold(v, "blank") || strings.EqualFold(v, NoName) {
		return NoName, true
	}
	if utf8.RuneCountInString(v) > MaxDogNameLength {
		v = string([]rune(v)[:MaxDogNameLength])
	}
	return v, true
}

// Validate decides whether candidate may be committed for a product with the
// given options and returns the selection that should actually be stored.
//
// Rules run in a fixed order and the first failure wins:
//  1. sizesRequired with no size -> ErrSizeRequired
//  2. dogName+dogNamePrompt with no usable name -> ErrNameRequired
//
// Fields the product does not support are cleared in the result.
func Validate(opts models.ProductOptions, candidate models.Selection) (models.Selection, error) {
	if opts.SizesRequired && candidate.Size == "" {
		return models.Selection{}, &OptionError{Field: FieldSize, Err: ErrSizeRequired}
	}

	out := candidate
	if opts.NameRequired() {
		name, ok := NormalizeDogName(candidate.DogName)
		if !ok {
			return models.Selection{}, &OptionError{Field: FieldDogName, Err: ErrNameRequired}
		}
		out.DogName = name
	} else if opts.DogName {
		out.DogName = strings.TrimSpace(out.DogName)
	}

	if !opts.HasSizes() {
		out.Size = ""
	}
	if !opts.DogName {
		out.DogName = ""
	}
	if !opts.Note {
		out.Note = ""
	}
	if !opts.HasColors() {
		out.Color = ""
	}
	return out, nil
}
