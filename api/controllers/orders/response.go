package orders

import (
	"time"

	"github.com/feiroulabs/feirou-backend/pkg/db/models"
	"github.com/feiroulabs/feirou-backend/pkg/money"
)

type orderSummaryView struct {
	ID             string    `json:"id"`
	SellerSlug     string    `json:"seller_slug"`
	SellerName     string    `json:"seller_name"`
	DeliveryMethod string    `json:"delivery_method"`
	PaymentMethod  string    `json:"payment_method"`
	Total          string    `json:"total"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type orderItemView struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
	Observation string `json:"observation,omitempty"`
}

type orderDetailView struct {
	orderSummaryView
	CustomerName string          `json:"customer_name"`
	Subtotal     string          `json:"subtotal"`
	DeliveryFee  string          `json:"delivery_fee"`
	Items        []orderItemView `json:"items"`
	Message      string          `json:"message"`
}

func newOrderSummaryView(record models.OrderRecord) orderSummaryView {
	return orderSummaryView{
		ID:             record.ID.String(),
		SellerSlug:     record.SellerSlug,
		SellerName:     record.SellerName,
		DeliveryMethod: record.DeliveryMethod.String(),
		PaymentMethod:  record.PaymentMethod.String(),
		Total:          money.Format(money.FromCents(record.TotalCents)),
		Status:         record.Status.String(),
		CreatedAt:      record.CreatedAt,
	}
}

func newOrderDetailView(record models.OrderRecord) orderDetailView {
	view := orderDetailView{
		orderSummaryView: newOrderSummaryView(record),
		CustomerName:     record.CustomerName,
		Subtotal:         money.Format(money.FromCents(record.SubtotalCents)),
		DeliveryFee:      money.Format(money.FromCents(record.DeliveryFeeCents)),
		Message:          record.Message,
	}
	for _, item := range record.Items {
		row := orderItemView{
			Name:      item.Name,
			Kind:      item.Kind.String(),
			Quantity:  item.Quantity,
			UnitPrice: money.Format(money.FromCents(item.UnitPriceCents)),
			Total:     money.Format(money.FromCents(item.TotalCents)),
		}
		if item.Observation != nil {
			row.Observation = *item.Observation
		}
		view.Items = append(view.Items, row)
	}
	return view
}
