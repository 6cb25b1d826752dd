package checkout

import (
	"net/http"

	"github.com/feiroulabs/feirou-backend/api/middleware"
	"github.com/feiroulabs/feirou-backend/api/responses"
	"github.com/feiroulabs/feirou-backend/api/validators"
	checkoutsvc "github.com/feiroulabs/feirou-backend/internal/checkout"
	"github.com/feiroulabs/feirou-backend/pkg/config"
	"github.com/feiroulabs/feirou-backend/pkg/enums"
	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
	"github.com/feiroulabs/feirou-backend/pkg/logger"
)

func rulesFrom(cfg config.CheckoutConfig) checkoutsvc.Rules {
	return checkoutsvc.Rules{MinNameLength: cfg.MinNameLength, MinPhoneDigits: cfg.MinPhoneDigits}
}

// Begin opens a checkout session from the client's active cart.
func Begin(svc checkoutsvc.Service, cfg config.CheckoutConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := clientIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Begin(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newSessionView(session, rulesFrom(cfg)))
	}
}

// Fetch returns the current checkout session.
func Fetch(svc checkoutsvc.Service, cfg config.CheckoutConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := clientIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Get(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionView(session, rulesFrom(cfg)))
	}
}

// SetDeliveryMethod flips between delivery and pickup.
func SetDeliveryMethod(svc checkoutsvc.Service, cfg config.CheckoutConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := clientIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload DeliveryMethodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		method, err := enums.ParseDeliveryMethod(payload.Method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery method"))
			return
		}

		session, err := svc.SetDeliveryMethod(r.Context(), clientID, method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionView(session, rulesFrom(cfg)))
	}
}

// UpdatePersonalInfo stores the customer name and phone.
func UpdatePersonalInfo(svc checkoutsvc.Service, cfg config.CheckoutConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := clientIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload PersonalInfoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.UpdatePersonalInfo(r.Context(), clientID, checkoutsvc.PersonalInfo{
			FullName: validators.SanitizeString(payload.FullName, 120),
			Phone:    validators.SanitizeString(payload.Phone, 20),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionView(session, rulesFrom(cfg)))
	}
}

// UpdateAddress stores the delivery address.
func UpdateAddress(svc checkoutsvc.Service, cfg config.CheckoutConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := clientIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddressRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.UpdateAddress(r.Context(), clientID, payload.toAddress())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionView(session, rulesFrom(cfg)))
	}
}

// UpdatePayment stores the payment choice.
func UpdatePayment(svc checkoutsvc.Service, cfg config.CheckoutConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := clientIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload PaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payment, err := payload.toPayment()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.UpdatePayment(r.Context(), clientID, payment)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionView(session, rulesFrom(cfg)))
	}
}

// Advance moves the session one step forward.
func Advance(svc checkoutsvc.Service, cfg config.CheckoutConfig, logg *logger.Logger) http.HandlerFunc {
	return stepHandler(cfg, logg, func(r *http.Request, clientID string) (*checkoutsvc.Session, error) {
		return svc.Advance(r.Context(), clientID)
	})
}

// Rewind moves the session one step back.
func Rewind(svc checkoutsvc.Service, cfg config.CheckoutConfig, logg *logger.Logger) http.HandlerFunc {
	return stepHandler(cfg, logg, func(r *http.Request, clientID string) (*checkoutsvc.Session, error) {
		return svc.Rewind(r.Context(), clientID)
	})
}

// GoToStep jumps to a named step.
func GoToStep(svc checkoutsvc.Service, cfg config.CheckoutConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := clientIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload GoToStepRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.GoToStep(r.Context(), clientID, payload.Step)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionView(session, rulesFrom(cfg)))
	}
}

// Cancel abandons the session.
func Cancel(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := clientIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Cancel(r.Context(), clientID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}

// Finalize validates the whole session and returns the WhatsApp hand-off.
func Finalize(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := clientIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		handoff, err := svc.Finalize(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, handoff)
	}
}

func stepHandler(cfg config.CheckoutConfig, logg *logger.Logger, move func(*http.Request, string) (*checkoutsvc.Session, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID, err := clientIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := move(r, clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionView(session, rulesFrom(cfg)))
	}
}

func clientIDFromContext(r *http.Request) (string, error) {
	clientID := middleware.ClientIDFromContext(r.Context())
	if clientID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "client context missing")
	}
	return clientID, nil
}
