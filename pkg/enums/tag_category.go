package enums

import "fmt"

// TagCategory scopes a tag to the catalog or to tips.
type TagCategory string

const (
	TagCategoryProduct TagCategory = "product"
	TagCategoryTip     TagCategory = "tip"
)

var validTagCategories = []TagCategory{
	TagCategoryProduct,
	TagCategoryTip,
}

// String implements fmt.Stringer.
func (t TagCategory) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TagCategory.
func (t TagCategory) IsValid() bool {
	for _, candidate := range validTagCategories {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTagCategory converts raw input into a TagCategory.
func ParseTagCategory(value string) (TagCategory, error) {
	for _, candidate := range validTagCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tag category %q", value)
}
