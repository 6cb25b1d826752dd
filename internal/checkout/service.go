package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/feiroulabs/feirou-backend/internal/cart"
	"github.com/feiroulabs/feirou-backend/internal/catalog"
	"github.com/feiroulabs/feirou-backend/internal/orders"
	"github.com/feiroulabs/feirou-backend/pkg/config"
	"github.com/feiroulabs/feirou-backend/pkg/enums"
	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
	"github.com/feiroulabs/feirou-backend/pkg/metrics"
	"github.com/feiroulabs/feirou-backend/pkg/money"
	"github.com/feiroulabs/feirou-backend/pkg/whatsapp"
)

// Service drives the checkout flow from the active cart up to the WhatsApp
// hand-off. State mutations load the session, change it, and save it back.
type Service interface {
	Begin(ctx context.Context, clientID string) (*Session, error)
	Get(ctx context.Context, clientID string) (*Session, error)
	SetDeliveryMethod(ctx context.Context, clientID string, method enums.DeliveryMethod) (*Session, error)
	UpdatePersonalInfo(ctx context.Context, clientID string, info PersonalInfo) (*Session, error)
	UpdateAddress(ctx context.Context, clientID string, addr orders.Address) (*Session, error)
	UpdatePayment(ctx context.Context, clientID string, payment Payment) (*Session, error)
	Advance(ctx context.Context, clientID string) (*Session, error)
	Rewind(ctx context.Context, clientID string) (*Session, error)
	GoToStep(ctx context.Context, clientID, step string) (*Session, error)
	Cancel(ctx context.Context, clientID string) error
	Finalize(ctx context.Context, clientID string) (orders.Handoff, error)
}

type service struct {
	sessions SessionStore
	carts    cart.Service
	catalog  catalog.Provider
	archive  orders.Service
	cfg      config.CheckoutConfig
	whats    config.WhatsAppConfig
	metrics  *metrics.EngineMetrics
}

// NewService wires the checkout flow dependencies.
func NewService(
	sessions SessionStore,
	carts cart.Service,
	catalogProvider catalog.Provider,
	archive orders.Service,
	cfg config.CheckoutConfig,
	whats config.WhatsAppConfig,
	engineMetrics *metrics.EngineMetrics,
) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if catalogProvider == nil {
		return nil, fmt.Errorf("catalog provider required")
	}
	if archive == nil {
		return nil, fmt.Errorf("order service required")
	}
	return &service{
		sessions: sessions,
		carts:    carts,
		catalog:  catalogProvider,
		archive:  archive,
		cfg:      cfg,
		whats:    whats,
		metrics:  engineMetrics,
	}, nil
}

// Begin opens a session from a value copy of the active cart. An existing
// session for the client is replaced.
func (s *service) Begin(ctx context.Context, clientID string) (*Session, error) {
	active, err := s.carts.ActiveCart(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(active.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	delivery, err := s.catalog.DeliveryConfig(ctx, active.Seller.Slug)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ClientID:       clientID,
		Seller:         active.Seller,
		Items:          cart.CloneItems(active.Items),
		DeliveryMethod: enums.DeliveryMethodDelivery,
		DeliveryFee:    delivery.Fee,
		MinimumOrder:   delivery.MinimumOrder,
		Neighborhoods:  delivery.Neighborhoods,
		Steps:          append([]string(nil), s.cfg.Steps...),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *service) Get(ctx context.Context, clientID string) (*Session, error) {
	return s.sessions.Load(ctx, clientID)
}

func (s *service) SetDeliveryMethod(ctx context.Context, clientID string, method enums.DeliveryMethod) (*Session, error) {
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery method")
	}
	return s.mutate(ctx, clientID, func(session *Session) error {
		session.SetDeliveryMethod(method)
		return nil
	})
}

func (s *service) UpdatePersonalInfo(ctx context.Context, clientID string, info PersonalInfo) (*Session, error) {
	return s.mutate(ctx, clientID, func(session *Session) error {
		session.Personal = info
		return nil
	})
}

func (s *service) UpdateAddress(ctx context.Context, clientID string, addr orders.Address) (*Session, error) {
	return s.mutate(ctx, clientID, func(session *Session) error {
		session.Address = addr
		return nil
	})
}

func (s *service) UpdatePayment(ctx context.Context, clientID string, payment Payment) (*Session, error) {
	if !payment.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if payment.Method != enums.PaymentMethodCash {
		payment.ChangeFor = nil
	}
	return s.mutate(ctx, clientID, func(session *Session) error {
		session.Payment = payment
		return nil
	})
}

func (s *service) Advance(ctx context.Context, clientID string) (*Session, error) {
	return s.mutate(ctx, clientID, func(session *Session) error {
		session.NextStep()
		return nil
	})
}

func (s *service) Rewind(ctx context.Context, clientID string) (*Session, error) {
	return s.mutate(ctx, clientID, func(session *Session) error {
		session.PrevStep()
		return nil
	})
}

func (s *service) GoToStep(ctx context.Context, clientID, step string) (*Session, error) {
	return s.mutate(ctx, clientID, func(session *Session) error {
		if !session.GoToStep(step) {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown checkout step")
		}
		return nil
	})
}

func (s *service) Cancel(ctx context.Context, clientID string) error {
	return s.sessions.Delete(ctx, clientID)
}

// Finalize re-validates the whole session, archives the order, and returns
// the hand-off. The client's cart for the seller is cleared and the session
// deleted only after the order is archived.
func (s *service) Finalize(ctx context.Context, clientID string) (orders.Handoff, error) {
	session, err := s.sessions.Load(ctx, clientID)
	if err != nil {
		return orders.Handoff{}, err
	}

	if err := ValidateForFinalize(session, s.rules()); err != nil {
		return orders.Handoff{}, err
	}
	if err := s.checkMinimumOrder(session); err != nil {
		return orders.Handoff{}, err
	}

	doc := documentFromSession(session)
	message := orders.ComposeMessage(doc)

	link, err := whatsapp.Link(session.Seller.Phone, s.whats.DefaultCountryCode, message)
	if err != nil {
		return orders.Handoff{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build whatsapp link")
	}

	if err := s.archive.Archive(ctx, doc, message); err != nil {
		return orders.Handoff{}, err
	}

	total, _ := doc.Total().Float64()
	s.metrics.IncOrderFinalized(session.DeliveryMethod.String(), total)

	if err := s.carts.Clear(ctx, clientID, session.Seller.Slug); err != nil {
		return orders.Handoff{}, err
	}
	if err := s.sessions.Delete(ctx, clientID); err != nil {
		return orders.Handoff{}, err
	}

	return orders.Handoff{
		OrderID:     doc.ID,
		Destination: session.Seller.Phone,
		Message:     message,
		Link:        link,
	}, nil
}

func (s *service) mutate(ctx context.Context, clientID string, fn func(*Session) error) (*Session, error) {
	session, err := s.sessions.Load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *service) rules() Rules {
	return Rules{
		MinNameLength:  s.cfg.MinNameLength,
		MinPhoneDigits: s.cfg.MinPhoneDigits,
	}
}

func (s *service) checkMinimumOrder(session *Session) error {
	if !session.IsDelivery() || session.MinimumOrder.IsZero() {
		return nil
	}
	subtotal := session.Subtotal()
	if subtotal.Cmp(session.MinimumOrder) >= 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, "order below the delivery minimum").
		WithDetails(map[string]string{
			"minimum_order": money.Format(session.MinimumOrder),
			"subtotal":      money.Format(subtotal),
		})
}

func documentFromSession(session *Session) orders.Document {
	doc := orders.Document{
		ID:             uuid.New(),
		Seller:         session.Seller,
		PlacedAt:       time.Now(),
		DeliveryMethod: session.DeliveryMethod,
		CustomerName:   session.Personal.FullName,
		CustomerPhone:  session.Personal.Phone,
		Items:          cart.CloneItems(session.Items),
		PaymentMethod:  session.Payment.Method,
	}
	if session.IsDelivery() {
		addr := session.Address
		doc.Address = &addr
		doc.DeliveryFee = session.DeliveryFee
	}
	if session.Payment.ChangeFor != nil {
		changeFor := *session.Payment.ChangeFor
		doc.ChangeFor = &changeFor
	}
	return doc
}
