package checkout

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feiroulabs/feirou-backend/internal/cart"
	"github.com/feiroulabs/feirou-backend/internal/catalog"
	"github.com/feiroulabs/feirou-backend/internal/orders"
	"github.com/feiroulabs/feirou-backend/pkg/config"
	"github.com/feiroulabs/feirou-backend/pkg/db/models"
	"github.com/feiroulabs/feirou-backend/pkg/enums"
	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
)

type memorySessionStore struct {
	sessions map[string]*Session
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]*Session)}
}

func (m *memorySessionStore) Load(_ context.Context, clientID string) (*Session, error) {
	s, ok := m.sessions[clientID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout session")
	}
	copied := *s
	return &copied, nil
}

func (m *memorySessionStore) Save(_ context.Context, session *Session) error {
	copied := *session
	m.sessions[session.ClientID] = &copied
	return nil
}

func (m *memorySessionStore) Delete(_ context.Context, clientID string) error {
	delete(m.sessions, clientID)
	return nil
}

type stubCartService struct {
	active  cart.CartSnapshot
	hasCart bool
	cleared []string
}

func (s *stubCartService) Carts(context.Context, string) (cart.RegistrySnapshot, error) {
	return cart.RegistrySnapshot{}, nil
}

func (s *stubCartService) ActiveCart(context.Context, string) (cart.CartSnapshot, error) {
	if !s.hasCart {
		return cart.CartSnapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "no active cart")
	}
	return s.active, nil
}

func (s *stubCartService) AddItem(context.Context, string, cart.Seller, cart.ItemInput) (cart.AddOutcome, error) {
	return cart.AddOutcome{}, nil
}

func (s *stubCartService) RemoveItem(context.Context, string, string, uuid.UUID) (cart.CartSnapshot, error) {
	return cart.CartSnapshot{}, nil
}

func (s *stubCartService) UpdateQuantity(context.Context, string, string, uuid.UUID, int) (cart.CartSnapshot, error) {
	return cart.CartSnapshot{}, nil
}

func (s *stubCartService) UpdateObservation(context.Context, string, string, uuid.UUID, string) (cart.CartSnapshot, error) {
	return cart.CartSnapshot{}, nil
}

func (s *stubCartService) Clear(_ context.Context, clientID, sellerSlug string) error {
	s.cleared = append(s.cleared, clientID+"/"+sellerSlug)
	return nil
}

func (s *stubCartService) SetActive(context.Context, string, string) error {
	return nil
}

type realOrderStub struct {
	archived []orders.Document
	messages []string
}

func (s *realOrderStub) Archive(_ context.Context, doc orders.Document, message string) error {
	s.archived = append(s.archived, doc)
	s.messages = append(s.messages, message)
	return nil
}

func (s *realOrderStub) List(context.Context, string, int) ([]models.OrderRecord, error) {
	return nil, nil
}

func (s *realOrderStub) Get(context.Context, uuid.UUID) (models.OrderRecord, error) {
	return models.OrderRecord{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func checkoutConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		Steps:          []string{"orderSummary", "personalInfo", "payment", "confirmation"},
		MinNameLength:  3,
		MinPhoneDigits: 8,
	}
}

func testCatalog(fee, minimum string, neighborhoods ...string) catalog.Provider {
	return catalog.NewStaticProvider(nil, catalog.DeliveryConfig{
		Fee:           decimal.RequireFromString(fee),
		MinimumOrder:  decimal.RequireFromString(minimum),
		Neighborhoods: neighborhoods,
	})
}

func activeSnapshot(items ...cart.LineItem) cart.CartSnapshot {
	return cart.CartSnapshot{
		Seller: cart.Seller{ID: "1", Slug: "padaria-central", Name: "Padaria Central", Phone: "5511912345678"},
		Items:  items,
	}
}

func newTestService(t *testing.T, carts *stubCartService, archive orders.Service, provider catalog.Provider) (Service, *memorySessionStore) {
	t.Helper()
	store := newMemorySessionStore()
	svc, err := NewService(store, carts, provider, archive, checkoutConfig(), config.WhatsAppConfig{DefaultCountryCode: "55"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc, store
}

func fillValidSession(t *testing.T, svc Service, ctx context.Context, clientID string) {
	t.Helper()
	if _, err := svc.UpdatePersonalInfo(ctx, clientID, PersonalInfo{FullName: "Maria Silva", Phone: "11998887777"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.UpdateAddress(ctx, clientID, orders.Address{Street: "Rua das Flores", Number: "123", Neighborhood: "Centro", City: "São Paulo"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.UpdatePayment(ctx, clientID, Payment{Method: enums.PaymentMethodPix}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBeginSnapshotsActiveCart(t *testing.T) {
	t.Parallel()

	carts := &stubCartService{hasCart: true, active: activeSnapshot(lineItem("Pão", "0.75", 10))}
	archive := &realOrderStub{}
	svc, _ := newTestService(t, carts, archive, testCatalog("8.00", "0"))

	ctx := context.Background()
	session, err := svc.Begin(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.CurrentStep() != "orderSummary" {
		t.Fatalf("expected the first step, got %q", session.CurrentStep())
	}
	if !session.DeliveryFee.Equal(decimal.RequireFromString("8.00")) {
		t.Fatalf("expected catalog fee, got %s", session.DeliveryFee)
	}
	if len(session.Items) != 1 {
		t.Fatalf("expected the cart items copied, got %d", len(session.Items))
	}
}

func TestBeginWithoutActiveCart(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &stubCartService{}, &realOrderStub{}, testCatalog("8.00", "0"))
	_, err := svc.Begin(context.Background(), "client-1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBeginWithEmptyCart(t *testing.T) {
	t.Parallel()

	carts := &stubCartService{hasCart: true, active: activeSnapshot()}
	svc, _ := newTestService(t, carts, &realOrderStub{}, testCatalog("8.00", "0"))
	_, err := svc.Begin(context.Background(), "client-1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestSessionIsImmuneToLaterCartEdits(t *testing.T) {
	t.Parallel()

	carts := &stubCartService{hasCart: true, active: activeSnapshot(lineItem("Pão", "0.75", 10))}
	svc, _ := newTestService(t, carts, &realOrderStub{}, testCatalog("8.00", "0"))

	ctx := context.Background()
	if _, err := svc.Begin(ctx, "client-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	carts.active = activeSnapshot(lineItem("Bolo", "18.00", 3))

	session, err := svc.Get(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Items[0].Name != "Pão" {
		t.Fatalf("session must keep its snapshot, got %q", session.Items[0].Name)
	}
}

func TestFinalizeHappyPath(t *testing.T) {
	t.Parallel()

	carts := &stubCartService{hasCart: true, active: activeSnapshot(lineItem("Pão", "0.75", 10))}
	archive := &realOrderStub{}
	svc, store := newTestService(t, carts, archive, testCatalog("8.00", "0"))

	ctx := context.Background()
	if _, err := svc.Begin(ctx, "client-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fillValidSession(t, svc, ctx, "client-1")

	handoff, err := svc.Finalize(ctx, "client-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if handoff.Destination != "5511912345678" {
		t.Fatalf("expected the seller phone, got %q", handoff.Destination)
	}
	if !strings.Contains(handoff.Message, "*Novo Pedido - Padaria Central*") {
		t.Fatalf("expected the serialized message, got %q", handoff.Message)
	}
	if !strings.HasPrefix(handoff.Link, "https://wa.me/5511912345678?text=") {
		t.Fatalf("expected a wa.me deep link, got %q", handoff.Link)
	}
	if len(archive.archived) != 1 {
		t.Fatalf("expected the order archived, got %d", len(archive.archived))
	}
	if len(carts.cleared) != 1 || carts.cleared[0] != "client-1/padaria-central" {
		t.Fatalf("expected the cart cleared, got %v", carts.cleared)
	}
	if _, ok := store.sessions["client-1"]; ok {
		t.Fatal("session should be deleted after finalize")
	}
}

func TestFinalizeReportsFailingSections(t *testing.T) {
	t.Parallel()

	carts := &stubCartService{hasCart: true, active: activeSnapshot(lineItem("Pão", "0.75", 10))}
	svc, _ := newTestService(t, carts, &realOrderStub{}, testCatalog("8.00", "0"))

	ctx := context.Background()
	if _, err := svc.Begin(ctx, "client-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Finalize(ctx, "client-1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestFinalizeEnforcesMinimumOrder(t *testing.T) {
	t.Parallel()

	carts := &stubCartService{hasCart: true, active: activeSnapshot(lineItem("Pão", "0.75", 10))}
	svc, _ := newTestService(t, carts, &realOrderStub{}, testCatalog("8.00", "20.00"))

	ctx := context.Background()
	if _, err := svc.Begin(ctx, "client-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fillValidSession(t, svc, ctx, "client-1")

	_, err := svc.Finalize(ctx, "client-1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	if _, err := svc.SetDeliveryMethod(ctx, "client-1", enums.DeliveryMethodPickup); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Finalize(ctx, "client-1"); err != nil {
		t.Fatalf("pickup skips the delivery minimum, got %v", err)
	}
}

func TestUpdatePaymentDropsStaleChangeFor(t *testing.T) {
	t.Parallel()

	carts := &stubCartService{hasCart: true, active: activeSnapshot(lineItem("Pão", "0.75", 10))}
	svc, _ := newTestService(t, carts, &realOrderStub{}, testCatalog("8.00", "0"))

	ctx := context.Background()
	if _, err := svc.Begin(ctx, "client-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	changeFor := decimal.RequireFromString("100.00")
	if _, err := svc.UpdatePayment(ctx, "client-1", Payment{Method: enums.PaymentMethodCash, ChangeFor: &changeFor}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	session, err := svc.UpdatePayment(ctx, "client-1", Payment{Method: enums.PaymentMethodPix, ChangeFor: &changeFor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.Payment.ChangeFor != nil {
		t.Fatal("changeFor must be dropped for non-cash methods")
	}
}
