package cart

import (
	"github.com/feiroulabs/feirou-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variation identifies a product variation choice (size, flavor, ...).
type Variation struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CustomSelection is one picked sub-item inside a customization step.
type CustomSelection struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CustomStep is one named stage of a composed product ("Tamanho", "Sabor").
type CustomStep struct {
	Name       string            `json:"name"`
	Selections []CustomSelection `json:"selections"`
}

// LineItem is a single cart line. Kind is the explicit discriminant set at
// construction; EffectiveKind falls back to the legacy field-presence
// encoding for snapshots persisted before the discriminant existed.
type LineItem struct {
	ID           uuid.UUID          `json:"id"`
	ProductID    string             `json:"product_id"`
	Name         string             `json:"name"`
	UnitPrice    decimal.Decimal    `json:"unit_price"`
	Quantity     int                `json:"quantity"`
	Observation  string             `json:"observation,omitempty"`
	Variation    *Variation         `json:"variation,omitempty"`
	ParentItemID *uuid.UUID         `json:"parent_item_id,omitempty"`
	Kind         enums.LineItemKind `json:"kind,omitempty"`
	Steps        []CustomStep       `json:"steps,omitempty"`
}

// Total is the line total: unit price times quantity.
func (li LineItem) Total() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// EffectiveKind resolves the discriminant, inferring it from field presence
// when the item predates the explicit Kind column.
func (li LineItem) EffectiveKind() enums.LineItemKind {
	if li.Kind.IsValid() {
		return li.Kind
	}
	if li.ParentItemID != nil {
		return enums.LineItemKindAddon
	}
	if len(li.Steps) > 0 {
		return enums.LineItemKindCustom
	}
	return enums.LineItemKindMain
}

// Clone deep-copies the line item so snapshots never share backing slices.
func (li LineItem) Clone() LineItem {
	out := li
	if li.Variation != nil {
		v := *li.Variation
		out.Variation = &v
	}
	if li.ParentItemID != nil {
		p := *li.ParentItemID
		out.ParentItemID = &p
	}
	if len(li.Steps) > 0 {
		steps := make([]CustomStep, len(li.Steps))
		for i, step := range li.Steps {
			copied := step
			copied.Selections = append([]CustomSelection(nil), step.Selections...)
			steps[i] = copied
		}
		out.Steps = steps
	}
	return out
}

// CloneItems deep-copies a slice of line items.
func CloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

func clampQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}
