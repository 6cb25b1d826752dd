package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feiroulabs/feirou-backend/internal/cart"
	"github.com/feiroulabs/feirou-backend/pkg/enums"
)

// Address is the delivery destination captured during checkout.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	Reference    string `json:"reference,omitempty"`
}

// Document is the immutable view of a finalized order, everything the
// serializer and the archive need.
type Document struct {
	ID             uuid.UUID
	Seller         cart.Seller
	PlacedAt       time.Time
	DeliveryMethod enums.DeliveryMethod
	CustomerName   string
	CustomerPhone  string
	Address        *Address
	Items          []cart.LineItem
	DeliveryFee    decimal.Decimal
	PaymentMethod  enums.PaymentMethod
	ChangeFor      *decimal.Decimal
}

// Subtotal recomputes the item subtotal from the document's own lines, so
// the serialized message can never disagree with the items it shows.
func (d Document) Subtotal() decimal.Decimal {
	return cart.CalculateOrderTotal(d.Items)
}

// Total is the subtotal plus the delivery fee when the order is a delivery.
func (d Document) Total() decimal.Decimal {
	return cart.CalculateFinalTotal(d.Subtotal(), d.DeliveryFee, d.DeliveryMethod == enums.DeliveryMethodDelivery)
}

// Handoff is what the caller gets back after finalizing: the serialized
// message and the deep link that opens the conversation with the seller.
type Handoff struct {
	OrderID     uuid.UUID `json:"order_id"`
	Destination string    `json:"destination"`
	Message     string    `json:"message"`
	Link        string    `json:"link"`
}
