package enums

// OrderStatus tracks an archived order's hand-off state.
type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusSent      OrderStatus = "sent"
)

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	return o == OrderStatusConfirmed || o == OrderStatusSent
}
