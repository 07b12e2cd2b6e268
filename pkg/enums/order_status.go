package enums

import "fmt"

// OrderStatus tracks the lifecycle of a storefront order.
type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusProcessed OrderStatus = "processed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusConfirmed,
	OrderStatusProcessed,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (o OrderStatus) IsTerminal() bool {
	return o == OrderStatusCancelled
}

// CanTransitionTo reports whether the state machine allows moving from o to next.
// processed is reachable from confirmed or processed; cancelled from any
// non-cancelled state; nothing leaves cancelled.
func (o OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if o.IsTerminal() || !next.IsValid() {
		return false
	}
	switch next {
	case OrderStatusConfirmed:
		return o == OrderStatusConfirmed
	case OrderStatusProcessed, OrderStatusCancelled:
		return true
	}
	return false
}

// Rank orders statuses for admin listings: open work first.
func (o OrderStatus) Rank() int {
	for idx, candidate := range validOrderStatuses {
		if candidate == o {
			return idx
		}
	}
	return len(validOrderStatuses)
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
