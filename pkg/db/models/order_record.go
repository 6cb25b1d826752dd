package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/feiroulabs/feirou-backend/pkg/enums"
)

// OrderRecord archives a finalized order for the customer's history screen.
// Every monetary column is stored in centavos; the rendered message is kept
// verbatim so the history can re-open exactly what was sent.
type OrderRecord struct {
	ID               uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	SellerID         string               `gorm:"column:seller_id;not null"`
	SellerSlug       string               `gorm:"column:seller_slug;not null;index"`
	SellerName       string               `gorm:"column:seller_name;not null"`
	CustomerName     string               `gorm:"column:customer_name;not null"`
	CustomerPhone    string               `gorm:"column:customer_phone;not null;index"`
	DeliveryMethod   enums.DeliveryMethod `gorm:"column:delivery_method;type:text;not null"`
	PaymentMethod    enums.PaymentMethod  `gorm:"column:payment_method;type:text;not null"`
	ChangeForCents   *int64               `gorm:"column:change_for_cents"`
	SubtotalCents    int64                `gorm:"column:subtotal_cents;not null"`
	DeliveryFeeCents int64                `gorm:"column:delivery_fee_cents;not null;default:0"`
	TotalCents       int64                `gorm:"column:total_cents;not null"`
	Street           *string              `gorm:"column:street"`
	Number           *string              `gorm:"column:number"`
	Complement       *string              `gorm:"column:complement"`
	Neighborhood     *string              `gorm:"column:neighborhood"`
	City             *string              `gorm:"column:city"`
	Reference        *string              `gorm:"column:reference"`
	Message          string               `gorm:"column:message;type:text;not null"`
	Status           enums.OrderStatus    `gorm:"column:status;type:text;not null;default:'confirmed'"`
	Items            []OrderItemRecord    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
