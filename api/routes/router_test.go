package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/feiroulabs/feirou-backend/internal/cart"
	checkoutsvc "github.com/feiroulabs/feirou-backend/internal/checkout"
	"github.com/feiroulabs/feirou-backend/internal/orders"
	"github.com/feiroulabs/feirou-backend/pkg/config"
	"github.com/feiroulabs/feirou-backend/pkg/db/models"
	"github.com/feiroulabs/feirou-backend/pkg/enums"
	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
)

type cartStub struct{}

func (cartStub) Carts(context.Context, string) (cart.RegistrySnapshot, error) {
	return cart.RegistrySnapshot{}, nil
}

func (cartStub) ActiveCart(context.Context, string) (cart.CartSnapshot, error) {
	return cart.CartSnapshot{Seller: cart.Seller{Slug: "padaria-central"}}, nil
}

func (cartStub) AddItem(context.Context, string, cart.Seller, cart.ItemInput) (cart.AddOutcome, error) {
	return cart.AddOutcome{}, nil
}

func (cartStub) RemoveItem(context.Context, string, string, uuid.UUID) (cart.CartSnapshot, error) {
	return cart.CartSnapshot{}, nil
}

func (cartStub) UpdateQuantity(context.Context, string, string, uuid.UUID, int) (cart.CartSnapshot, error) {
	return cart.CartSnapshot{}, nil
}

func (cartStub) UpdateObservation(context.Context, string, string, uuid.UUID, string) (cart.CartSnapshot, error) {
	return cart.CartSnapshot{}, nil
}

func (cartStub) Clear(context.Context, string, string) error { return nil }

func (cartStub) SetActive(context.Context, string, string) error { return nil }

type checkoutStub struct{}

func (checkoutStub) Begin(context.Context, string) (*checkoutsvc.Session, error) {
	return &checkoutsvc.Session{Steps: []string{"orderSummary"}}, nil
}

func (checkoutStub) Get(context.Context, string) (*checkoutsvc.Session, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout session")
}

func (checkoutStub) SetDeliveryMethod(context.Context, string, enums.DeliveryMethod) (*checkoutsvc.Session, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout session")
}

func (checkoutStub) UpdatePersonalInfo(context.Context, string, checkoutsvc.PersonalInfo) (*checkoutsvc.Session, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout session")
}

func (checkoutStub) UpdateAddress(context.Context, string, orders.Address) (*checkoutsvc.Session, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout session")
}

func (checkoutStub) UpdatePayment(context.Context, string, checkoutsvc.Payment) (*checkoutsvc.Session, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout session")
}

func (checkoutStub) Advance(context.Context, string) (*checkoutsvc.Session, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout session")
}

func (checkoutStub) Rewind(context.Context, string) (*checkoutsvc.Session, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout session")
}

func (checkoutStub) GoToStep(context.Context, string, string) (*checkoutsvc.Session, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout session")
}

func (checkoutStub) Cancel(context.Context, string) error { return nil }

func (checkoutStub) Finalize(context.Context, string) (orders.Handoff, error) {
	return orders.Handoff{}, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout session")
}

type orderStub struct{}

func (orderStub) Archive(context.Context, orders.Document, string) error { return nil }

func (orderStub) List(context.Context, string, int) ([]models.OrderRecord, error) {
	return nil, nil
}

func (orderStub) Get(context.Context, uuid.UUID) (models.OrderRecord, error) {
	return models.OrderRecord{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func testRouter() http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "dev"
	cfg.Checkout.MinNameLength = 3
	cfg.Checkout.MinPhoneDigits = 8
	return NewRouter(cfg, nil, nil, nil, prometheus.NewRegistry(), cartStub{}, checkoutStub{}, orderStub{})
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsEndpointMounted(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAPIRequiresClientID(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without X-Client-Id, got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if envelope.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error code, got %q", envelope.Error.Code)
	}
}

func TestActiveCartRouteServes(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Client-Id", "device-123")
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
}

func TestCheckoutFetchWithoutSession(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checkout", nil)
	req.Header.Set("X-Client-Id", "device-123")
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a session, got %d", rec.Code)
	}
}
