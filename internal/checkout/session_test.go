package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feiroulabs/feirou-backend/internal/cart"
	"github.com/feiroulabs/feirou-backend/internal/orders"
	"github.com/feiroulabs/feirou-backend/pkg/enums"
)

var defaultSteps = []string{"orderSummary", "personalInfo", "payment", "confirmation"}

func sessionWithItems(items ...cart.LineItem) *Session {
	return &Session{
		ClientID:       "client-1",
		Seller:         cart.Seller{ID: "1", Slug: "padaria-central", Name: "Padaria Central", Phone: "5511912345678"},
		Items:          items,
		Steps:          append([]string(nil), defaultSteps...),
		DeliveryMethod: enums.DeliveryMethodDelivery,
	}
}

func lineItem(name, priceStr string, qty int) cart.LineItem {
	return cart.LineItem{
		ID:        uuid.New(),
		ProductID: name,
		Name:      name,
		UnitPrice: decimal.RequireFromString(priceStr),
		Quantity:  qty,
	}
}

func TestSessionStepNavigationStaysInRange(t *testing.T) {
	t.Parallel()

	s := sessionWithItems(lineItem("Pão", "0.75", 1))

	s.PrevStep()
	if s.CurrentStep() != "orderSummary" {
		t.Fatalf("rewind on the first step must stay put, got %q", s.CurrentStep())
	}

	for i := 0; i < 10; i++ {
		s.NextStep()
	}
	if s.CurrentStep() != "confirmation" {
		t.Fatalf("advance past the end must cap at the last step, got %q", s.CurrentStep())
	}

	if !s.GoToStep("payment") {
		t.Fatal("jump to a known step should succeed")
	}
	if s.CurrentStep() != "payment" {
		t.Fatalf("expected payment, got %q", s.CurrentStep())
	}
	if s.GoToStep("naoExiste") {
		t.Fatal("jump to an unknown step must be refused")
	}
}

func TestSessionTotalFollowsDeliveryMethod(t *testing.T) {
	t.Parallel()

	s := sessionWithItems(lineItem("Pão", "0.75", 10))
	s.DeliveryFee = decimal.RequireFromString("8.00")

	if !s.Total().Equal(decimal.RequireFromString("15.50")) {
		t.Fatalf("delivery total should include the fee, got %s", s.Total())
	}

	s.SetDeliveryMethod(enums.DeliveryMethodPickup)
	if !s.Total().Equal(decimal.RequireFromString("7.50")) {
		t.Fatalf("pickup total must drop the fee, got %s", s.Total())
	}
}

func TestSetDeliveryMethodKeepsAddress(t *testing.T) {
	t.Parallel()

	s := sessionWithItems(lineItem("Pão", "0.75", 1))
	s.Address = orders.Address{Street: "Rua das Flores", Number: "123", Neighborhood: "Centro", City: "São Paulo"}

	s.SetDeliveryMethod(enums.DeliveryMethodPickup)
	s.SetDeliveryMethod(enums.DeliveryMethodDelivery)

	if s.Address.Street != "Rua das Flores" {
		t.Fatalf("address must survive method flips, got %+v", s.Address)
	}
}

func TestSessionSubtotalExcludesOrphanAddons(t *testing.T) {
	t.Parallel()

	ghost := uuid.New()
	orphan := cart.LineItem{
		ID: uuid.New(), ProductID: "molho", Name: "Molho",
		UnitPrice: decimal.RequireFromString("99.00"), Quantity: 1, ParentItemID: &ghost,
	}
	s := sessionWithItems(lineItem("Pão", "0.75", 10), orphan)

	if !s.Subtotal().Equal(decimal.RequireFromString("7.50")) {
		t.Fatalf("orphan add-on must not count, got %s", s.Subtotal())
	}
}
