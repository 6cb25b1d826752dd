package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/feiroulabs/feirou-backend/internal/cart"
	"github.com/feiroulabs/feirou-backend/internal/orders"
	"github.com/feiroulabs/feirou-backend/pkg/enums"
)

// PersonalInfo is the customer identification collected during checkout.
type PersonalInfo struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// Payment is the customer's chosen settlement method. ChangeFor only applies
// to cash and records the banknote the customer will pay with.
type Payment struct {
	Method    enums.PaymentMethod `json:"method"`
	ChangeFor *decimal.Decimal    `json:"change_for,omitempty"`
}

// Session is the mutable checkout state for one client. It is created from a
// value copy of the active cart, so later cart edits never leak into an
// in-flight checkout.
type Session struct {
	ClientID       string               `json:"client_id"`
	Seller         cart.Seller          `json:"seller"`
	Items          []cart.LineItem      `json:"items"`
	DeliveryMethod enums.DeliveryMethod `json:"delivery_method"`
	Personal       PersonalInfo         `json:"personal"`
	Address        orders.Address       `json:"address"`
	Payment        Payment              `json:"payment"`
	DeliveryFee    decimal.Decimal      `json:"delivery_fee"`
	MinimumOrder   decimal.Decimal      `json:"minimum_order"`
	Neighborhoods  []string             `json:"neighborhoods,omitempty"`
	Steps          []string             `json:"steps"`
	StepIndex      int                  `json:"step_index"`
	CreatedAt      time.Time            `json:"created_at"`
}

// CurrentStep returns the label of the step the session is on.
func (s *Session) CurrentStep() string {
	if s.StepIndex < 0 || s.StepIndex >= len(s.Steps) {
		return ""
	}
	return s.Steps[s.StepIndex]
}

// NextStep moves forward one step, capped at the last one.
func (s *Session) NextStep() {
	if s.StepIndex < len(s.Steps)-1 {
		s.StepIndex++
	}
}

// PrevStep moves back one step, floored at the first one.
func (s *Session) PrevStep() {
	if s.StepIndex > 0 {
		s.StepIndex--
	}
}

// GoToStep jumps straight to the named step. Navigation never checks
// whether earlier steps are complete; validity is enforced at finalize.
func (s *Session) GoToStep(step string) bool {
	for i, label := range s.Steps {
		if label == step {
			s.StepIndex = i
			return true
		}
	}
	return false
}

// IsDelivery reports whether the order will be delivered.
func (s *Session) IsDelivery() bool {
	return s.DeliveryMethod == enums.DeliveryMethodDelivery
}

// Subtotal recomputes the item subtotal, excluding orphan add-ons.
func (s *Session) Subtotal() decimal.Decimal {
	return cart.CalculateOrderTotal(s.Items)
}

// Total applies the delivery fee on top of the subtotal for deliveries.
// Pickup totals equal the subtotal no matter what fee is stored.
func (s *Session) Total() decimal.Decimal {
	return cart.CalculateFinalTotal(s.Subtotal(), s.DeliveryFee, s.IsDelivery())
}

// SetDeliveryMethod switches the fulfillment mode. Address fields are kept
// when switching to pickup so flipping back to delivery loses nothing.
func (s *Session) SetDeliveryMethod(method enums.DeliveryMethod) {
	s.DeliveryMethod = method
}
