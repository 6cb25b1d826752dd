package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Registry keys one cart per seller slug and tracks which seller is active.
// Mutating one seller's cart never touches another's. The lock keeps the
// registry safe when shared across request handlers.
type Registry struct {
	mu     sync.RWMutex
	carts  map[string]*Cart
	active string
}

// NewRegistry returns an empty registry with no active seller.
func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Cart)}
}

// AddItem routes the item to the seller's cart, creating it on first add,
// and marks that seller active.
func (r *Registry) AddItem(seller Seller, item LineItem) AddResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[seller.Slug]
	if !ok {
		c = NewCart()
		r.carts[seller.Slug] = c
	}
	result := c.AddItem(seller, item)
	r.active = seller.Slug
	return result
}

// RemoveItem removes the item from the seller's cart. An emptied cart is
// dropped from the registry entirely.
func (r *Registry) RemoveItem(sellerSlug string, itemID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[sellerSlug]
	if !ok {
		return false
	}
	changed := c.RemoveItem(itemID)
	if c.IsEmpty() {
		r.drop(sellerSlug)
	}
	return changed
}

// UpdateQuantity updates a line quantity in the seller's cart.
func (r *Registry) UpdateQuantity(sellerSlug string, itemID uuid.UUID, qty int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[sellerSlug]
	if !ok {
		return false
	}
	return c.UpdateQuantity(itemID, qty)
}

// UpdateObservation updates a line note in the seller's cart.
func (r *Registry) UpdateObservation(sellerSlug string, itemID uuid.UUID, text string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[sellerSlug]
	if !ok {
		return false
	}
	return c.UpdateObservation(itemID, text)
}

// Clear empties and drops the seller's cart.
func (r *Registry) Clear(sellerSlug string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drop(sellerSlug)
}

// SetActive points the registry at the given seller. Unknown slugs are
// accepted; the active cart simply resolves to empty until an add happens.
func (r *Registry) SetActive(sellerSlug string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = sellerSlug
}

// Active returns the active seller slug, if any.
func (r *Registry) Active() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// CartFor returns a value snapshot of the seller's cart.
func (r *Registry) CartFor(sellerSlug string) (CartSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[sellerSlug]
	if !ok {
		return CartSnapshot{}, false
	}
	return snapshotCart(c), true
}

// ActiveCart resolves the active seller's cart snapshot.
func (r *Registry) ActiveCart() (CartSnapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.active == "" {
		return CartSnapshot{}, false
	}
	c, ok := r.carts[r.active]
	if !ok {
		return CartSnapshot{}, false
	}
	return snapshotCart(c), true
}

// Snapshot captures the whole registry for persistence.
func (r *Registry) Snapshot() RegistrySnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := RegistrySnapshot{Active: r.active}
	for _, c := range r.carts {
		if c.IsEmpty() {
			continue
		}
		snap.Carts = append(snap.Carts, snapshotCart(c))
	}
	sortCartSnapshots(snap.Carts)
	return snap
}

// RestoreRegistry rebuilds a registry from a persisted snapshot.
func RestoreRegistry(snap RegistrySnapshot) *Registry {
	r := NewRegistry()
	for _, cs := range snap.Carts {
		c := NewCart()
		for _, item := range cs.Items {
			c.AddItem(cs.Seller, item)
		}
		if !c.IsEmpty() {
			r.carts[cs.Seller.Slug] = c
		}
	}
	if _, ok := r.carts[snap.Active]; ok {
		r.active = snap.Active
	}
	return r
}

func (r *Registry) drop(sellerSlug string) {
	delete(r.carts, sellerSlug)
	if r.active == sellerSlug {
		r.active = ""
	}
}
