package cart

import (
	"errors"
	"fmt"
)

// Field names an option input the shopper has to fix.
type Field string

const (
	FieldSize    Field = "size"
	FieldDogName Field = "dogName"
)

var (
	ErrSizeRequired    = errors.New("please choose a size")
	ErrNameRequired    = errors.New(`please enter a name (or type "none")`)
	ErrProductNotFound = errors.New("product not found")
	ErrLineNotFound    = errors.New("cart line not found")
)

// OptionError is returned when a selection cannot be committed. Field tells
// the presentation layer which input to highlight and refocus.
type OptionError struct {
	Field Field
	Err   error
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *OptionError) Unwrap() error {
	return e.Err
}

// FailedField extracts the offending field from err, if it is an OptionError.
func FailedField(err error) (Field, bool) {
	var oe *OptionError
	if errors.As(err, &oe) {
		return oe.Field, true
	}
	return "", false
}
