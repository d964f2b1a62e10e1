package enum

// Wire values below are persisted inside serialized orders; do not rename.

const (
	OrderTypeDineIn   = "dine-in"
	OrderTypeDelivery = "delivery"
)

const (
	PaymentTypeCash = "cash"
	PaymentTypeCard = "card"
)

// Delivery fee calculation modes (config-selected, not persisted).

const (
	FeeModePerItem     = "per_item"
	FeeModePerCategory = "per_category"
)

// IsValidOrderType reports whether s is a known order type.
func IsValidOrderType(s string) bool {
	switch s {
	case OrderTypeDineIn, OrderTypeDelivery:
		return true
	}
	return false
}

// IsValidPaymentType reports whether s is a known payment type.
func IsValidPaymentType(s string) bool {
	switch s {
	case PaymentTypeCash, PaymentTypeCard:
		return true
	}
	return false
}
