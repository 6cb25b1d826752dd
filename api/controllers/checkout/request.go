package checkout

import (
	checkoutsvc "github.com/feiroulabs/feirou-backend/internal/checkout"
	"github.com/feiroulabs/feirou-backend/internal/orders"
	"github.com/feiroulabs/feirou-backend/pkg/enums"
	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
	"github.com/feiroulabs/feirou-backend/pkg/money"
)

type DeliveryMethodRequest struct {
	Method string `json:"method" validate:"required,oneof=delivery pickup"`
}

type PersonalInfoRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}

type AddressRequest struct {
	Street       string `json:"street" validate:"required"`
	Number       string `json:"number" validate:"required"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood" validate:"required"`
	City         string `json:"city" validate:"required"`
	Reference    string `json:"reference"`
}

type PaymentRequest struct {
	Method    string `json:"method" validate:"required"`
	ChangeFor string `json:"change_for"`
}

type GoToStepRequest struct {
	Step string `json:"step" validate:"required"`
}

func (r AddressRequest) toAddress() orders.Address {
	return orders.Address{
		Street:       r.Street,
		Number:       r.Number,
		Complement:   r.Complement,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		Reference:    r.Reference,
	}
}

func (r PaymentRequest) toPayment() (checkoutsvc.Payment, error) {
	method, err := enums.ParsePaymentMethod(r.Method)
	if err != nil {
		return checkoutsvc.Payment{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}

	payment := checkoutsvc.Payment{Method: method}
	if r.ChangeFor != "" {
		changeFor, err := money.Parse(r.ChangeFor)
		if err != nil {
			return checkoutsvc.Payment{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid change amount")
		}
		payment.ChangeFor = &changeFor
	}
	return payment, nil
}
