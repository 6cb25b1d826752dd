package cart

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CartSnapshot is the serializable value copy of a cart.
type CartSnapshot struct {
	Seller   Seller          `json:"seller"`
	Items    []LineItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
}

// RegistrySnapshot is the serializable value copy of the whole registry,
// the unit the persistence collaborator loads and saves.
type RegistrySnapshot struct {
	Active string         `json:"active,omitempty"`
	Carts  []CartSnapshot `json:"carts,omitempty"`
}

// IsEmpty reports whether the snapshot carries no carts.
func (s RegistrySnapshot) IsEmpty() bool {
	return len(s.Carts) == 0
}

// CartBySlug finds a cart snapshot by seller slug.
func (s RegistrySnapshot) CartBySlug(slug string) (CartSnapshot, bool) {
	for _, c := range s.Carts {
		if c.Seller.Slug == slug {
			return c, true
		}
	}
	return CartSnapshot{}, false
}

func snapshotCart(c *Cart) CartSnapshot {
	return CartSnapshot{
		Seller:   c.Seller(),
		Items:    c.Items(),
		Subtotal: c.Subtotal(),
		Total:    c.Total(),
	}
}

func sortCartSnapshots(carts []CartSnapshot) {
	sort.Slice(carts, func(i, j int) bool {
		return carts[i].Seller.Slug < carts[j].Seller.Slug
	})
}
