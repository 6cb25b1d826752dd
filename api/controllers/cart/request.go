package cart

import (
	"github.com/google/uuid"

	cartsvc "github.com/feiroulabs/feirou-backend/internal/cart"
	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
	"github.com/feiroulabs/feirou-backend/pkg/money"
)

type sellerPayload struct {
	ID    string `json:"id" validate:"required"`
	Slug  string `json:"slug" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	City  string `json:"city"`
}

type variationPayload struct {
	ID    string `json:"id"`
	Label string `json:"label" validate:"required"`
}

type selectionPayload struct {
	Name  string `json:"name" validate:"required"`
	Price string `json:"price"`
}

type stepPayload struct {
	Name       string             `json:"name" validate:"required"`
	Selections []selectionPayload `json:"selections"`
}

// AddItemRequest carries a seller plus one line item to add.
type AddItemRequest struct {
	Seller sellerPayload `json:"seller" validate:"required"`
	Item   struct {
		ProductID    string            `json:"product_id" validate:"required"`
		Name         string            `json:"name" validate:"required"`
		UnitPrice    string            `json:"unit_price" validate:"required"`
		Quantity     int               `json:"quantity" validate:"min=0"`
		Observation  string            `json:"observation"`
		Variation    *variationPayload `json:"variation"`
		ParentItemID string            `json:"parent_item_id"`
		Steps        []stepPayload     `json:"steps"`
	} `json:"item" validate:"required"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type UpdateObservationRequest struct {
	Observation string `json:"observation"`
}

type SetActiveRequest struct {
	SellerSlug string `json:"seller_slug" validate:"required"`
}

func (p sellerPayload) toSeller() cartsvc.Seller {
	return cartsvc.Seller{
		ID:    p.ID,
		Slug:  p.Slug,
		Name:  p.Name,
		Phone: p.Phone,
		City:  p.City,
	}
}

func (r AddItemRequest) toItemInput() (cartsvc.ItemInput, error) {
	unitPrice, err := money.Parse(r.Item.UnitPrice)
	if err != nil {
		return cartsvc.ItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit price")
	}

	input := cartsvc.ItemInput{
		ProductID:   r.Item.ProductID,
		Name:        r.Item.Name,
		UnitPrice:   unitPrice,
		Quantity:    r.Item.Quantity,
		Observation: r.Item.Observation,
	}

	if r.Item.Variation != nil {
		input.Variation = &cartsvc.Variation{ID: r.Item.Variation.ID, Label: r.Item.Variation.Label}
	}
	if r.Item.ParentItemID != "" {
		parentID, err := uuid.Parse(r.Item.ParentItemID)
		if err != nil {
			return cartsvc.ItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid parent item id")
		}
		input.ParentItemID = &parentID
	}
	for _, step := range r.Item.Steps {
		converted := cartsvc.CustomStep{Name: step.Name}
		for _, sel := range step.Selections {
			price := money.Zero()
			if sel.Price != "" {
				parsed, err := money.Parse(sel.Price)
				if err != nil {
					return cartsvc.ItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid selection price")
				}
				price = parsed
			}
			converted.Selections = append(converted.Selections, cartsvc.CustomSelection{Name: sel.Name, Price: price})
		}
		input.Steps = append(input.Steps, converted)
	}
	return input, nil
}
