package enums

import "fmt"

// PaymentMethod describes how the customer intends to settle the order.
type PaymentMethod string

const (
	PaymentMethodPix      PaymentMethod = "pix"
	PaymentMethodCredit   PaymentMethod = "credit"
	PaymentMethodDebit    PaymentMethod = "debit"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodPix,
	PaymentMethodCredit,
	PaymentMethodDebit,
	PaymentMethodCash,
	PaymentMethodTransfer,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// Label returns the customer-facing pt-BR label used in the order message.
func (p PaymentMethod) Label() string {
	switch p {
	case PaymentMethodPix:
		return "Pix"
	case PaymentMethodCredit:
		return "Cartão de Crédito"
	case PaymentMethodDebit:
		return "Cartão de Débito"
	case PaymentMethodCash:
		return "Dinheiro"
	case PaymentMethodTransfer:
		return "Transferência Bancária"
	}
	return string(p)
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
