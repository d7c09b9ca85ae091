package dedup

import (
	"fmt"
	"strings"

	"github.com/nao1215/dupmeta/internal/model"
)

// KeySeparator joins normalized values inside a composite key.
const KeySeparator = "|"

// BuildKey returns the composite key of page for the ordered field list.
// Two pages share a group iff their keys for the same field list are equal.
func BuildKey(page model.Page, fields []model.Field) (string, error) {
	values := make([]string, len(fields))
	for i, f := range fields {
		v, err := normalizedValue(page, f)
		if err != nil {
			return "", err
		}
		values[i] = v
	}
	return strings.Join(values, KeySeparator), nil
}

// normalizedValue returns the normalized value of one field.
func normalizedValue(page model.Page, f model.Field) (string, error) {
	raw, ok := page.Value(f)
	if !ok {
		return "", fmt.Errorf("%w: %d", model.ErrInvalidFieldSelector, int(f))
	}
	return Normalize(raw), nil
}

// validateFields fails when any field is outside the enumeration.
func validateFields(fields []model.Field) error {
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields selected", model.ErrInvalidFieldSelector)
	}
	for _, f := range fields {
		if !f.Valid() {
			return fmt.Errorf("%w: %d", model.ErrInvalidFieldSelector, int(f))
		}
	}
	return nil
}
