package model

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidFieldSelector is returned when a field selector is not one of
// title, h1 or meta_description. It indicates a defect in the stage list.
var ErrInvalidFieldSelector = errors.New("invalid field selector")

// Field identifies one comparable metadata field of a page.
//
// Design decision: Fields form a closed enumeration instead of free-form
// column names. Unknown selectors are rejected by ParseField when the stage
// list is built, not when a page is inspected.
type Field int

const (
	// FieldTitle is the contents of the <title> element.
	FieldTitle Field = iota

	// FieldH1 is the text of the first <h1> element.
	FieldH1

	// FieldMetaDescription is the content of <meta name="description">.
	FieldMetaDescription
)

// AllFields lists every field in cascade order.
var AllFields = []Field{FieldTitle, FieldH1, FieldMetaDescription}

// ParseField converts a selector name into a Field.
func ParseField(name string) (Field, error) {
	switch name {
	case "title":
		return FieldTitle, nil
	case "h1":
		return FieldH1, nil
	case "meta_description":
		return FieldMetaDescription, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFieldSelector, name)
	}
}

// Valid reports whether f is a member of the enumeration.
func (f Field) Valid() bool {
	return f >= FieldTitle && f <= FieldMetaDescription
}

// String returns the selector name (title, h1, meta_description).
func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldH1:
		return "h1"
	case FieldMetaDescription:
		return "meta_description"
	default:
		return "unknown"
	}
}

// DisplayName returns the human-readable name used in report descriptions,
// e.g. "Meta Description" for FieldMetaDescription.
func (f Field) DisplayName() string {
	return cases.Title(language.English).String(strings.ReplaceAll(f.String(), "_", " "))
}

// ShortName returns the name used inside combination labels, where
// FieldMetaDescription is abbreviated to "Meta".
func (f Field) ShortName() string {
	if f == FieldMetaDescription {
		return "Meta"
	}
	return f.DisplayName()
}

// DefaultColumn returns the dataset column the field is read from when no
// override is configured.
func (f Field) DefaultColumn() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldH1:
		return "metadata-h1-contents"
	case FieldMetaDescription:
		return "Meta Description"
	default:
		return ""
	}
}
