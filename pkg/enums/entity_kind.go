package enums

import "fmt"

// EntityKind discriminates which table an entity tag row points at.
type EntityKind string

const (
	EntityKindProduct EntityKind = "product"
	EntityKindTip     EntityKind = "tip"
)

var validEntityKinds = []EntityKind{
	EntityKindProduct,
	EntityKindTip,
}

// String implements fmt.Stringer.
func (e EntityKind) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EntityKind.
func (e EntityKind) IsValid() bool {
	for _, candidate := range validEntityKinds {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEntityKind converts raw input into a EntityKind.
func ParseEntityKind(value string) (EntityKind, error) {
	for _, candidate := range validEntityKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid entity kind %q", value)
}
