package checkout

import (
	"strings"

	"go.uber.org/multierr"

	"github.com/feiroulabs/feirou-backend/internal/catalog"
	"github.com/feiroulabs/feirou-backend/pkg/enums"
	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
)

// Section names identify which checkout screen a violation belongs to, so
// the client can send the customer back to the right place.
const (
	SectionPersonalInfo = "personalInfo"
	SectionPayment      = "payment"
)

// Violation is one human-actionable problem found in a session.
type Violation struct {
	Section string `json:"section"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Rules carries the tunable validation thresholds.
type Rules struct {
	MinNameLength  int
	MinPhoneDigits int
}

// PersonalInfoViolations checks the customer block. Address fields are only
// required for deliveries; pickup orders skip them entirely.
func PersonalInfoViolations(s *Session, rules Rules) []Violation {
	var out []Violation

	if len(strings.TrimSpace(s.Personal.FullName)) < rules.MinNameLength {
		out = append(out, Violation{SectionPersonalInfo, "full_name", "nome muito curto"})
	}
	if countDigits(s.Personal.Phone) < rules.MinPhoneDigits {
		out = append(out, Violation{SectionPersonalInfo, "phone", "telefone inválido"})
	}

	if s.IsDelivery() {
		if strings.TrimSpace(s.Address.Street) == "" {
			out = append(out, Violation{SectionPersonalInfo, "street", "rua é obrigatória"})
		}
		if strings.TrimSpace(s.Address.Number) == "" {
			out = append(out, Violation{SectionPersonalInfo, "number", "número é obrigatório"})
		}
		if strings.TrimSpace(s.Address.City) == "" {
			out = append(out, Violation{SectionPersonalInfo, "city", "cidade é obrigatória"})
		}
		if strings.TrimSpace(s.Address.Neighborhood) == "" {
			out = append(out, Violation{SectionPersonalInfo, "neighborhood", "bairro é obrigatório"})
		} else {
			served := catalog.DeliveryConfig{Neighborhoods: s.Neighborhoods}
			if !served.ServesNeighborhood(s.Address.Neighborhood) {
				out = append(out, Violation{SectionPersonalInfo, "neighborhood", "bairro fora da área de entrega"})
			}
		}
	}
	return out
}

// PaymentViolations checks the payment block. A cash order may omit
// changeFor (exact payment); when it is supplied it must cover the total.
func PaymentViolations(s *Session) []Violation {
	var out []Violation

	if !s.Payment.Method.IsValid() {
		out = append(out, Violation{SectionPayment, "method", "forma de pagamento inválida"})
		return out
	}
	if s.Payment.Method == enums.PaymentMethodCash && s.Payment.ChangeFor != nil {
		if s.Payment.ChangeFor.Cmp(s.Total()) < 0 {
			out = append(out, Violation{SectionPayment, "change_for", "troco menor que o total do pedido"})
		}
	}
	return out
}

// IsPersonalInfoValid is the step predicate used by the UI.
func IsPersonalInfoValid(s *Session, rules Rules) bool {
	return len(PersonalInfoViolations(s, rules)) == 0
}

// IsPaymentValid is the step predicate used by the UI.
func IsPaymentValid(s *Session) bool {
	return len(PaymentViolations(s)) == 0
}

// ValidateForFinalize re-runs every section check and aggregates what it
// finds. The returned error carries the violations grouped by section so the
// client can report each failing screen at once.
func ValidateForFinalize(s *Session, rules Rules) error {
	violations := append(PersonalInfoViolations(s, rules), PaymentViolations(s)...)
	if len(violations) == 0 {
		return nil
	}

	var agg error
	bySection := make(map[string][]Violation)
	for _, v := range violations {
		bySection[v.Section] = append(bySection[v.Section], v)
		agg = multierr.Append(agg, pkgerrors.New(pkgerrors.CodeValidation, v.Section+"."+v.Field+": "+v.Message))
	}

	return pkgerrors.Wrap(pkgerrors.CodeValidation, agg, "checkout validation failed").
		WithDetails(bySection)
}

func countDigits(value string) int {
	n := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
