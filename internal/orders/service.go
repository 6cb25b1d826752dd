package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/feiroulabs/feirou-backend/internal/cart"
	"github.com/feiroulabs/feirou-backend/pkg/db/models"
	"github.com/feiroulabs/feirou-backend/pkg/enums"
	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
	"github.com/feiroulabs/feirou-backend/pkg/money"
)

// Service archives finalized orders and serves the customer history screen.
type Service interface {
	Archive(ctx context.Context, doc Document, message string) error
	List(ctx context.Context, customerPhone string, limit int) ([]models.OrderRecord, error)
	Get(ctx context.Context, id uuid.UUID) (models.OrderRecord, error)
}

type service struct {
	repo Repo
}

// NewService builds the order archive service.
func NewService(repo Repo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repo required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Archive(ctx context.Context, doc Document, message string) error {
	record, err := recordFromDocument(doc, message)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, record)
}

func (s *service) List(ctx context.Context, customerPhone string, limit int) ([]models.OrderRecord, error) {
	if strings.TrimSpace(customerPhone) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer phone is required")
	}
	return s.repo.ListByCustomerPhone(ctx, customerPhone, limit)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (models.OrderRecord, error) {
	if id == uuid.Nil {
		return models.OrderRecord{}, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	return s.repo.FindByID(ctx, id)
}

func recordFromDocument(doc Document, message string) (*models.OrderRecord, error) {
	id := doc.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	record := &models.OrderRecord{
		ID:             id,
		SellerID:       doc.Seller.ID,
		SellerSlug:     doc.Seller.Slug,
		SellerName:     doc.Seller.Name,
		CustomerName:   doc.CustomerName,
		CustomerPhone:  doc.CustomerPhone,
		DeliveryMethod: doc.DeliveryMethod,
		PaymentMethod:  doc.PaymentMethod,
		SubtotalCents:  money.Cents(doc.Subtotal()),
		TotalCents:     money.Cents(doc.Total()),
		Message:        message,
		Status:         enums.OrderStatusConfirmed,
	}
	if doc.DeliveryMethod == enums.DeliveryMethodDelivery {
		record.DeliveryFeeCents = money.Cents(doc.DeliveryFee)
	}
	if doc.ChangeFor != nil {
		cents := money.Cents(*doc.ChangeFor)
		record.ChangeForCents = &cents
	}
	if doc.Address != nil {
		record.Street = optional(doc.Address.Street)
		record.Number = optional(doc.Address.Number)
		record.Complement = optional(doc.Address.Complement)
		record.Neighborhood = optional(doc.Address.Neighborhood)
		record.City = optional(doc.Address.City)
		record.Reference = optional(doc.Address.Reference)
	}

	for _, item := range doc.Items {
		row, err := itemRecord(id, item)
		if err != nil {
			return nil, err
		}
		record.Items = append(record.Items, row)
	}
	return record, nil
}

func itemRecord(orderID uuid.UUID, item cart.LineItem) (models.OrderItemRecord, error) {
	row := models.OrderItemRecord{
		ID:             uuid.New(),
		OrderID:        orderID,
		ProductID:      item.ProductID,
		ParentItemID:   item.ParentItemID,
		Kind:           item.EffectiveKind(),
		Name:           item.Name,
		Quantity:       item.Quantity,
		UnitPriceCents: money.Cents(item.UnitPrice),
		TotalCents:     money.Cents(item.Total()),
		Observation:    optional(item.Observation),
	}
	if item.Variation != nil {
		row.VariationLabel = optional(item.Variation.Label)
	}
	if len(item.Steps) > 0 {
		payload, err := json.Marshal(item.Steps)
		if err != nil {
			return models.OrderItemRecord{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode item steps")
		}
		row.StepsJSON = optional(string(payload))
	}
	return row, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
