package orders

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/feiroulabs/feirou-backend/api/responses"
	"github.com/feiroulabs/feirou-backend/api/validators"
	ordersvc "github.com/feiroulabs/feirou-backend/internal/orders"
	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
	"github.com/feiroulabs/feirou-backend/pkg/logger"
)

// List returns the customer's archived orders, newest first.
func List(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := validators.SanitizeString(r.URL.Query().Get("phone"), 20)
		if phone == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "phone query parameter is required"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.List(r.Context(), phone, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views := make([]orderSummaryView, 0, len(records))
		for _, record := range records {
			views = append(views, newOrderSummaryView(record))
		}
		responses.WriteSuccess(w, views)
	}
}

// Detail returns one archived order with its line items and message.
func Detail(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		record, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderDetailView(record))
	}
}
