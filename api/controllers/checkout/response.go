package checkout

import (
	checkoutsvc "github.com/feiroulabs/feirou-backend/internal/checkout"
	"github.com/feiroulabs/feirou-backend/pkg/money"
)

type sessionView struct {
	Seller         string                   `json:"seller"`
	SellerName     string                   `json:"seller_name"`
	DeliveryMethod string                   `json:"delivery_method"`
	Personal       checkoutsvc.PersonalInfo `json:"personal"`
	Address        any                      `json:"address"`
	PaymentMethod  string                   `json:"payment_method,omitempty"`
	ChangeFor      string                   `json:"change_for,omitempty"`
	Steps          []string                 `json:"steps"`
	CurrentStep    string                   `json:"current_step"`
	ItemCount      int                      `json:"item_count"`
	Subtotal       string                   `json:"subtotal"`
	DeliveryFee    string                   `json:"delivery_fee"`
	Total          string                   `json:"total"`
	MinimumOrder   string                   `json:"minimum_order,omitempty"`
	Violations     []checkoutsvc.Violation  `json:"violations,omitempty"`
}

func newSessionView(session *checkoutsvc.Session, rules checkoutsvc.Rules) sessionView {
	view := sessionView{
		Seller:         session.Seller.Slug,
		SellerName:     session.Seller.Name,
		DeliveryMethod: session.DeliveryMethod.String(),
		Personal:       session.Personal,
		Address:        session.Address,
		Steps:          session.Steps,
		CurrentStep:    session.CurrentStep(),
		ItemCount:      len(session.Items),
		Subtotal:       money.Format(session.Subtotal()),
		DeliveryFee:    money.Format(session.DeliveryFee),
		Total:          money.Format(session.Total()),
	}
	if session.Payment.Method != "" {
		view.PaymentMethod = session.Payment.Method.String()
	}
	if session.Payment.ChangeFor != nil {
		view.ChangeFor = money.Format(*session.Payment.ChangeFor)
	}
	if !session.MinimumOrder.IsZero() {
		view.MinimumOrder = money.Format(session.MinimumOrder)
	}

	view.Violations = append(
		checkoutsvc.PersonalInfoViolations(session, rules),
		checkoutsvc.PaymentViolations(session)...,
	)
	return view
}
