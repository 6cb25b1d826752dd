package cart

import (
	cartsvc "github.com/feiroulabs/feirou-backend/internal/cart"
	"github.com/feiroulabs/feirou-backend/pkg/money"
)

type itemView struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"product_id"`
	Kind         string  `json:"kind"`
	Name         string  `json:"name"`
	Variation    *string `json:"variation,omitempty"`
	UnitPrice    string  `json:"unit_price"`
	Quantity     int     `json:"quantity"`
	Total        string  `json:"total"`
	Observation  string  `json:"observation,omitempty"`
	ParentItemID *string `json:"parent_item_id,omitempty"`
}

type cartView struct {
	Seller   cartsvc.Seller `json:"seller"`
	Items    []itemView     `json:"items"`
	Subtotal string         `json:"subtotal"`
	Total    string         `json:"total"`
}

type registryView struct {
	Active string     `json:"active,omitempty"`
	Carts  []cartView `json:"carts"`
}

type addItemView struct {
	Merged         bool     `json:"merged"`
	Replaced       bool     `json:"replaced"`
	DiscardedItems int      `json:"discarded_items"`
	Item           itemView `json:"item"`
	Cart           cartView `json:"cart"`
}

func newItemView(item cartsvc.LineItem) itemView {
	view := itemView{
		ID:          item.ID.String(),
		ProductID:   item.ProductID,
		Kind:        item.EffectiveKind().String(),
		Name:        item.Name,
		UnitPrice:   money.Format(item.UnitPrice),
		Quantity:    item.Quantity,
		Total:       money.Format(item.Total()),
		Observation: item.Observation,
	}
	if item.Variation != nil {
		label := item.Variation.Label
		view.Variation = &label
	}
	if item.ParentItemID != nil {
		parent := item.ParentItemID.String()
		view.ParentItemID = &parent
	}
	return view
}

func newCartView(snap cartsvc.CartSnapshot) cartView {
	view := cartView{
		Seller:   snap.Seller,
		Items:    make([]itemView, 0, len(snap.Items)),
		Subtotal: money.Format(snap.Subtotal),
		Total:    money.Format(snap.Total),
	}
	for _, item := range snap.Items {
		view.Items = append(view.Items, newItemView(item))
	}
	return view
}

func newRegistryView(snap cartsvc.RegistrySnapshot) registryView {
	view := registryView{Active: snap.Active, Carts: make([]cartView, 0, len(snap.Carts))}
	for _, c := range snap.Carts {
		view.Carts = append(view.Carts, newCartView(c))
	}
	return view
}

func newAddItemView(outcome cartsvc.AddOutcome) addItemView {
	return addItemView{
		Merged:         outcome.Result.Merged,
		Replaced:       outcome.Result.Replaced,
		DiscardedItems: outcome.Result.DiscardedItems,
		Item:           newItemView(outcome.Result.Item),
		Cart:           newCartView(outcome.Cart),
	}
}
