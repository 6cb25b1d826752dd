package cart

import (
	"context"
	"testing"

	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

type memorySnapshotStore struct {
	snapshots map[string]RegistrySnapshot
	saveErr   error
}

func newMemorySnapshotStore() *memorySnapshotStore {
	return &memorySnapshotStore{snapshots: make(map[string]RegistrySnapshot)}
}

func (m *memorySnapshotStore) Load(_ context.Context, clientID string) (RegistrySnapshot, error) {
	return m.snapshots[clientID], nil
}

func (m *memorySnapshotStore) Save(_ context.Context, clientID string, snap RegistrySnapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if snap.IsEmpty() {
		delete(m.snapshots, clientID)
		return nil
	}
	m.snapshots[clientID] = snap
	return nil
}

func (m *memorySnapshotStore) Delete(_ context.Context, clientID string) error {
	delete(m.snapshots, clientID)
	return nil
}

func TestServiceAddItemPersistsAcrossLoads(t *testing.T) {
	t.Parallel()

	store := newMemorySnapshotStore()
	svc, err := NewService(store, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	outcome, err := svc.AddItem(ctx, "client-1", padaria, ItemInput{
		ProductID: "pao",
		Name:      "Pão Francês",
		UnitPrice: decimal.RequireFromString("0.75"),
		Quantity:  10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Result.Merged || outcome.Result.Replaced {
		t.Fatalf("first add should be plain, got %+v", outcome.Result)
	}

	active, err := svc.ActiveCart(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !active.Total.Equal(decimal.RequireFromString("7.50")) {
		t.Fatalf("expected persisted total 7.50, got %s", active.Total)
	}
}

func TestServiceAddItemValidation(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(newMemorySnapshotStore(), nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		client string
		seller Seller
		input  ItemInput
	}{
		{"missing client", "", padaria, ItemInput{ProductID: "a", Name: "A", Quantity: 1}},
		{"missing seller slug", "c1", Seller{}, ItemInput{ProductID: "a", Name: "A", Quantity: 1}},
		{"missing product", "c1", padaria, ItemInput{Name: "A", Quantity: 1}},
		{"missing name", "c1", padaria, ItemInput{ProductID: "a", Quantity: 1}},
		{"negative price", "c1", padaria, ItemInput{ProductID: "a", Name: "A", UnitPrice: decimal.NewFromInt(-1), Quantity: 1}},
	}
	for _, tc := range cases {
		_, err := svc.AddItem(ctx, tc.client, tc.seller, tc.input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestServiceActiveCartNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(newMemorySnapshotStore(), nil)
	_, err := svc.ActiveCart(context.Background(), "client-1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceSetActiveRequiresExistingCart(t *testing.T) {
	t.Parallel()

	store := newMemorySnapshotStore()
	svc, _ := NewService(store, nil)
	ctx := context.Background()

	if err := svc.SetActive(ctx, "client-1", "padaria-central"); err == nil {
		t.Fatal("expected not found for unknown cart")
	}

	svc.AddItem(ctx, "client-1", padaria, ItemInput{ProductID: "pao", Name: "Pão", UnitPrice: decimal.RequireFromString("0.75"), Quantity: 1})
	svc.AddItem(ctx, "client-1", acougue, ItemInput{ProductID: "picanha", Name: "Picanha", UnitPrice: decimal.RequireFromString("79.90"), Quantity: 1})

	if err := svc.SetActive(ctx, "client-1", padaria.Slug); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	active, err := svc.ActiveCart(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active.Seller.Slug != padaria.Slug {
		t.Fatalf("expected active padaria cart, got %s", active.Seller.Slug)
	}
}

func TestServiceClearRemovesCart(t *testing.T) {
	t.Parallel()

	store := newMemorySnapshotStore()
	svc, _ := NewService(store, nil)
	ctx := context.Background()

	svc.AddItem(ctx, "client-1", padaria, ItemInput{ProductID: "pao", Name: "Pão", UnitPrice: decimal.RequireFromString("0.75"), Quantity: 1})
	if err := svc.Clear(ctx, "client-1", padaria.Slug); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap, err := svc.Carts(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snap.IsEmpty() {
		t.Fatalf("expected empty registry, got %+v", snap)
	}
}
