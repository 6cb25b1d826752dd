package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/feiroulabs/feirou-backend/pkg/enums"
)

// OrderItemRecord captures the snapshot of each line within an archived
// order. Customization steps and the parent link survive as plain columns so
// the history screen can rebuild the item tree.
type OrderItemRecord struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	OrderID        uuid.UUID          `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID      string             `gorm:"column:product_id;not null"`
	ParentItemID   *uuid.UUID         `gorm:"column:parent_item_id;type:uuid"`
	Kind           enums.LineItemKind `gorm:"column:kind;type:text;not null"`
	Name           string             `gorm:"column:name;not null"`
	VariationLabel *string            `gorm:"column:variation_label"`
	Quantity       int                `gorm:"column:quantity;not null"`
	UnitPriceCents int64              `gorm:"column:unit_price_cents;not null"`
	TotalCents     int64              `gorm:"column:total_cents;not null"`
	Observation    *string            `gorm:"column:observation"`
	StepsJSON      *string            `gorm:"column:steps_json;type:text"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
}
