package cart

import (
	"github.com/feiroulabs/feirou-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Seller is the merchant a cart is bound to.
type Seller struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	City  string `json:"city"`
}

// Cart holds the line items for exactly one seller. A cart that runs out of
// items forgets its seller binding so the next add can target anyone.
type Cart struct {
	seller Seller
	items  []LineItem
}

// NewCart returns an empty, unbound cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddResult reports what AddItem did, including how many items a
// cross-seller replacement discarded so callers can surface it.
type AddResult struct {
	Item           LineItem
	Merged         bool
	Replaced       bool
	DiscardedItems int
}

// AddItem inserts an item for the given seller. Adding for a different
// seller than the cart is bound to replaces the whole cart (one active
// seller at a time). Main items with the same product id merge by summing
// quantities; the observation is overwritten only when the new call
// supplies one.
func (c *Cart) AddItem(seller Seller, item LineItem) AddResult {
	var result AddResult

	if !c.IsEmpty() && c.seller.Slug != seller.Slug {
		result.Replaced = true
		result.DiscardedItems = len(c.items)
		c.items = nil
	}
	c.seller = seller

	item = item.Clone()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.Quantity = clampQuantity(item.Quantity)
	if !item.Kind.IsValid() {
		item.Kind = item.EffectiveKind()
	}

	if item.Kind == enums.LineItemKindMain {
		for i := range c.items {
			existing := &c.items[i]
			if existing.EffectiveKind() != enums.LineItemKindMain || existing.ProductID != item.ProductID {
				continue
			}
			existing.Quantity += item.Quantity
			if item.Observation != "" {
				existing.Observation = item.Observation
			}
			result.Merged = true
			result.Item = existing.Clone()
			return result
		}
	}

	c.items = append(c.items, item)
	result.Item = item.Clone()
	return result
}

// RemoveItem drops the item and any add-ons linked to it. Removing the last
// item resets the cart to its unbound empty state. Missing ids are a no-op.
func (c *Cart) RemoveItem(itemID uuid.UUID) bool {
	found := false
	for _, item := range c.items {
		if item.ID == itemID {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	kept := make([]LineItem, 0, len(c.items)-1)
	for _, item := range c.items {
		if item.ID == itemID {
			continue
		}
		if item.ParentItemID != nil && *item.ParentItemID == itemID {
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept
	if len(c.items) == 0 {
		c.reset()
	}
	return true
}

// UpdateQuantity clamps qty to at least 1 and recomputes the line total.
// Add-on lines are never independently quantity-edited: their quantity is
// fixed when added and they leave the cart with their parent.
func (c *Cart) UpdateQuantity(itemID uuid.UUID, qty int) bool {
	for i := range c.items {
		if c.items[i].ID != itemID {
			continue
		}
		if c.items[i].EffectiveKind() == enums.LineItemKindAddon {
			return false
		}
		c.items[i].Quantity = clampQuantity(qty)
		return true
	}
	return false
}

// UpdateObservation replaces the free-text note on the item.
func (c *Cart) UpdateObservation(itemID uuid.UUID, text string) bool {
	for i := range c.items {
		if c.items[i].ID == itemID {
			c.items[i].Observation = text
			return true
		}
	}
	return false
}

// Clear empties the cart and drops the seller binding.
func (c *Cart) Clear() {
	c.reset()
}

func (c *Cart) reset() {
	c.seller = Seller{}
	c.items = nil
}

// Seller returns the seller the cart is currently bound to.
func (c *Cart) Seller() Seller {
	return c.seller
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Len returns the number of line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// Subtotal sums every line total. The delivery fee is applied only at
// checkout, never stored on the cart.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Total())
	}
	return total
}

// Total equals Subtotal; kept as its own accessor because checkout layers a
// delivery fee on top of it.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal()
}

// Items returns a deep copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	return CloneItems(c.items)
}
