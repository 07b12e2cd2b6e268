package enums

import "fmt"

// TipType groups informational tips.
type TipType string

const (
	TipTypeQuickTip TipType = "quick_tip"
	TipTypeBusiness TipType = "business"
)

var validTipTypes = []TipType{
	TipTypeQuickTip,
	TipTypeBusiness,
}

// String implements fmt.Stringer.
func (t TipType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TipType.
func (t TipType) IsValid() bool {
	for _, candidate := range validTipTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTipType converts raw input into a TipType.
func ParseTipType(value string) (TipType, error) {
	for _, candidate := range validTipTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tip type %q", value)
}
