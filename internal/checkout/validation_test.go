package checkout

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/feiroulabs/feirou-backend/internal/orders"
	"github.com/feiroulabs/feirou-backend/pkg/enums"
	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
)

var testRules = Rules{MinNameLength: 3, MinPhoneDigits: 8}

func validDeliverySession() *Session {
	s := sessionWithItems(lineItem("Pão", "0.75", 10))
	s.Personal = PersonalInfo{FullName: "Maria Silva", Phone: "11998887777"}
	s.Address = orders.Address{Street: "Rua das Flores", Number: "123", Neighborhood: "Centro", City: "São Paulo"}
	s.Payment = Payment{Method: enums.PaymentMethodPix}
	return s
}

func TestPersonalInfoViolations(t *testing.T) {
	t.Parallel()

	s := validDeliverySession()
	if vs := PersonalInfoViolations(s, testRules); len(vs) != 0 {
		t.Fatalf("valid session should pass, got %+v", vs)
	}

	s.Personal.FullName = "Jo"
	s.Personal.Phone = "123"
	s.Address.Street = ""
	vs := PersonalInfoViolations(s, testRules)
	if len(vs) != 3 {
		t.Fatalf("expected 3 violations, got %+v", vs)
	}
	for _, v := range vs {
		if v.Section != SectionPersonalInfo {
			t.Fatalf("expected personalInfo section, got %+v", v)
		}
	}
}

func TestPickupSkipsAddressChecks(t *testing.T) {
	t.Parallel()

	s := validDeliverySession()
	s.SetDeliveryMethod(enums.DeliveryMethodPickup)
	s.Address = orders.Address{}

	if vs := PersonalInfoViolations(s, testRules); len(vs) != 0 {
		t.Fatalf("pickup must not require an address, got %+v", vs)
	}
}

func TestNeighborhoodRestriction(t *testing.T) {
	t.Parallel()

	s := validDeliverySession()
	s.Neighborhoods = []string{"Centro", "Jardins"}
	if vs := PersonalInfoViolations(s, testRules); len(vs) != 0 {
		t.Fatalf("listed neighborhood should pass, got %+v", vs)
	}

	s.Address.Neighborhood = "Vila Nova"
	vs := PersonalInfoViolations(s, testRules)
	if len(vs) != 1 || vs[0].Field != "neighborhood" {
		t.Fatalf("expected a neighborhood violation, got %+v", vs)
	}
}

func TestPaymentViolationsCashChange(t *testing.T) {
	t.Parallel()

	s := validDeliverySession()
	s.DeliveryFee = decimal.RequireFromString("8.00") // total 15.50

	s.Payment = Payment{Method: enums.PaymentMethodCash}
	if vs := PaymentViolations(s); len(vs) != 0 {
		t.Fatalf("cash without change means exact payment, got %+v", vs)
	}

	short := decimal.RequireFromString("10.00")
	s.Payment.ChangeFor = &short
	if vs := PaymentViolations(s); len(vs) != 1 {
		t.Fatalf("change below the total should fail, got %+v", vs)
	}

	exact := decimal.RequireFromString("15.50")
	s.Payment.ChangeFor = &exact
	if vs := PaymentViolations(s); len(vs) != 0 {
		t.Fatalf("change equal to the total should pass, got %+v", vs)
	}
}

func TestPaymentViolationsInvalidMethod(t *testing.T) {
	t.Parallel()

	s := validDeliverySession()
	s.Payment = Payment{Method: "cheque"}
	vs := PaymentViolations(s)
	if len(vs) != 1 || vs[0].Field != "method" {
		t.Fatalf("expected a method violation, got %+v", vs)
	}
}

func TestValidateForFinalizeAggregatesSections(t *testing.T) {
	t.Parallel()

	s := validDeliverySession()
	if err := ValidateForFinalize(s, testRules); err != nil {
		t.Fatalf("valid session should finalize, got %v", err)
	}

	s.Personal.FullName = ""
	short := decimal.RequireFromString("0.01")
	s.Payment = Payment{Method: enums.PaymentMethodCash, ChangeFor: &short}
	err := ValidateForFinalize(s, testRules)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}

	details, ok := typed.Details().(map[string][]Violation)
	if !ok {
		t.Fatalf("expected violations grouped by section, got %T", typed.Details())
	}
	if len(details[SectionPersonalInfo]) == 0 || len(details[SectionPayment]) == 0 {
		t.Fatalf("expected both sections reported, got %+v", details)
	}
}
