package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/feiroulabs/feirou-backend/api/middleware"
	"github.com/feiroulabs/feirou-backend/api/responses"
	"github.com/feiroulabs/feirou-backend/api/validators"
	cartsvc "github.com/feiroulabs/feirou-backend/internal/cart"
	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
	"github.com/feiroulabs/feirou-backend/pkg/logger"
)

// List returns every open cart for the client, one per seller.
func List(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := clientIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.Carts(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newRegistryView(snap))
	}
}

// Active returns the cart the client is currently shopping in.
func Active(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := clientIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.ActiveCart(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(snap))
	}
}

// AddItem adds one line item, reporting merges and cross-seller replaces.
func AddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := clientIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toItemInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outcome, err := svc.AddItem(r.Context(), clientID, payload.Seller.toSeller(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAddItemView(outcome))
	}
}

// UpdateQuantity changes a line quantity. The engine clamps to at least 1.
func UpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, sellerSlug, itemID, err := cartItemParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.UpdateQuantity(r.Context(), clientID, sellerSlug, itemID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(snap))
	}
}

// UpdateObservation replaces the free-text note on a line item.
func UpdateObservation(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, sellerSlug, itemID, err := cartItemParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpdateObservationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.UpdateObservation(r.Context(), clientID, sellerSlug, itemID, validators.SanitizeString(payload.Observation, 500))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(snap))
	}
}

// RemoveItem drops a line item and any add-ons hanging off it.
func RemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, sellerSlug, itemID, err := cartItemParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.RemoveItem(r.Context(), clientID, sellerSlug, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(snap))
	}
}

// Clear empties the seller's cart.
func Clear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := clientIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sellerSlug := chi.URLParam(r, "sellerSlug")

		if err := svc.Clear(r.Context(), clientID, sellerSlug); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

// SetActive switches which seller's cart the client is shopping in.
func SetActive(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := clientIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload SetActiveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetActive(r.Context(), clientID, payload.SellerSlug); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"active": payload.SellerSlug})
	}
}

func clientIDFromContext(r *http.Request) (string, error) {
	clientID := middleware.ClientIDFromContext(r.Context())
	if clientID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "client context missing")
	}
	return clientID, nil
}

func cartItemParams(r *http.Request) (clientID, sellerSlug string, itemID uuid.UUID, err error) {
	clientID, err = clientIDFromContext(r)
	if err != nil {
		return "", "", uuid.Nil, err
	}
	sellerSlug = chi.URLParam(r, "sellerSlug")
	itemID, parseErr := uuid.Parse(chi.URLParam(r, "itemId"))
	if parseErr != nil {
		return "", "", uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid item id")
	}
	return clientID, sellerSlug, itemID, nil
}
