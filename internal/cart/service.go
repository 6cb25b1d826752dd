package cart

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
	"github.com/feiroulabs/feirou-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service exposes the multi-cart operations backed by the snapshot store.
// Every mutation loads the client's registry, applies the change in memory,
// and persists the result before returning.
type Service interface {
	Carts(ctx context.Context, clientID string) (RegistrySnapshot, error)
	ActiveCart(ctx context.Context, clientID string) (CartSnapshot, error)
	AddItem(ctx context.Context, clientID string, seller Seller, input ItemInput) (AddOutcome, error)
	RemoveItem(ctx context.Context, clientID, sellerSlug string, itemID uuid.UUID) (CartSnapshot, error)
	UpdateQuantity(ctx context.Context, clientID, sellerSlug string, itemID uuid.UUID, qty int) (CartSnapshot, error)
	UpdateObservation(ctx context.Context, clientID, sellerSlug string, itemID uuid.UUID, text string) (CartSnapshot, error)
	Clear(ctx context.Context, clientID, sellerSlug string) error
	SetActive(ctx context.Context, clientID, sellerSlug string) error
}

// ItemInput carries the payload for adding one line item.
type ItemInput struct {
	ProductID    string
	Name         string
	UnitPrice    decimal.Decimal
	Quantity     int
	Observation  string
	Variation    *Variation
	ParentItemID *uuid.UUID
	Steps        []CustomStep
}

// AddOutcome reports the add plus the resulting cart.
type AddOutcome struct {
	Result AddResult
	Cart   CartSnapshot
}

type service struct {
	store   SnapshotStore
	metrics *metrics.EngineMetrics
}

// NewService builds the cart service.
func NewService(store SnapshotStore, engineMetrics *metrics.EngineMetrics) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	return &service{store: store, metrics: engineMetrics}, nil
}

func (s *service) Carts(ctx context.Context, clientID string) (RegistrySnapshot, error) {
	if err := requireClientID(clientID); err != nil {
		return RegistrySnapshot{}, err
	}
	return s.store.Load(ctx, clientID)
}

func (s *service) ActiveCart(ctx context.Context, clientID string) (CartSnapshot, error) {
	snap, err := s.Carts(ctx, clientID)
	if err != nil {
		return CartSnapshot{}, err
	}
	registry := RestoreRegistry(snap)
	active, ok := registry.ActiveCart()
	if !ok {
		return CartSnapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "no active cart")
	}
	return active, nil
}

func (s *service) AddItem(ctx context.Context, clientID string, seller Seller, input ItemInput) (AddOutcome, error) {
	if err := requireClientID(clientID); err != nil {
		return AddOutcome{}, err
	}
	if strings.TrimSpace(seller.Slug) == "" {
		return AddOutcome{}, pkgerrors.New(pkgerrors.CodeValidation, "seller slug is required")
	}
	if strings.TrimSpace(input.ProductID) == "" {
		return AddOutcome{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return AddOutcome{}, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if input.UnitPrice.IsNegative() {
		return AddOutcome{}, pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}

	registry, err := s.loadRegistry(ctx, clientID)
	if err != nil {
		return AddOutcome{}, err
	}

	result := registry.AddItem(seller, buildLineItem(input))
	if err := s.store.Save(ctx, clientID, registry.Snapshot()); err != nil {
		return AddOutcome{}, err
	}
	s.metrics.IncCartOp("add_item")

	current, _ := registry.CartFor(seller.Slug)
	return AddOutcome{Result: result, Cart: current}, nil
}

func (s *service) RemoveItem(ctx context.Context, clientID, sellerSlug string, itemID uuid.UUID) (CartSnapshot, error) {
	return s.mutate(ctx, clientID, sellerSlug, "remove_item", func(r *Registry) {
		r.RemoveItem(sellerSlug, itemID)
	})
}

func (s *service) UpdateQuantity(ctx context.Context, clientID, sellerSlug string, itemID uuid.UUID, qty int) (CartSnapshot, error) {
	return s.mutate(ctx, clientID, sellerSlug, "update_quantity", func(r *Registry) {
		r.UpdateQuantity(sellerSlug, itemID, qty)
	})
}

func (s *service) UpdateObservation(ctx context.Context, clientID, sellerSlug string, itemID uuid.UUID, text string) (CartSnapshot, error) {
	return s.mutate(ctx, clientID, sellerSlug, "update_observation", func(r *Registry) {
		r.UpdateObservation(sellerSlug, itemID, text)
	})
}

func (s *service) Clear(ctx context.Context, clientID, sellerSlug string) error {
	_, err := s.mutate(ctx, clientID, sellerSlug, "clear", func(r *Registry) {
		r.Clear(sellerSlug)
	})
	return err
}

func (s *service) SetActive(ctx context.Context, clientID, sellerSlug string) error {
	if err := requireClientID(clientID); err != nil {
		return err
	}
	registry, err := s.loadRegistry(ctx, clientID)
	if err != nil {
		return err
	}
	if _, ok := registry.CartFor(sellerSlug); !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no cart for seller")
	}
	registry.SetActive(sellerSlug)
	return s.store.Save(ctx, clientID, registry.Snapshot())
}

func (s *service) mutate(ctx context.Context, clientID, sellerSlug, op string, fn func(*Registry)) (CartSnapshot, error) {
	if err := requireClientID(clientID); err != nil {
		return CartSnapshot{}, err
	}
	registry, err := s.loadRegistry(ctx, clientID)
	if err != nil {
		return CartSnapshot{}, err
	}

	fn(registry)

	if err := s.store.Save(ctx, clientID, registry.Snapshot()); err != nil {
		return CartSnapshot{}, err
	}
	s.metrics.IncCartOp(op)

	current, _ := registry.CartFor(sellerSlug)
	return current, nil
}

func (s *service) loadRegistry(ctx context.Context, clientID string) (*Registry, error) {
	snap, err := s.store.Load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return RestoreRegistry(snap), nil
}

func buildLineItem(input ItemInput) LineItem {
	return LineItem{
		ProductID:    input.ProductID,
		Name:         input.Name,
		UnitPrice:    input.UnitPrice,
		Quantity:     input.Quantity,
		Observation:  input.Observation,
		Variation:    input.Variation,
		ParentItemID: input.ParentItemID,
		Steps:        input.Steps,
	}
}

func requireClientID(clientID string) error {
	if strings.TrimSpace(clientID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "client id is required")
	}
	return nil
}
