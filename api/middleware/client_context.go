package middleware

import (
	"net/http"
	"strings"

	"github.com/feiroulabs/feirou-backend/api/responses"
	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
	"github.com/feiroulabs/feirou-backend/pkg/logger"
)

const clientIDHeader = "X-Client-Id"

// ClientContext requires the anonymous device identifier the mobile app
// sends with every request and threads it through the context. Carts and
// checkout sessions are keyed by it.
func ClientContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := strings.TrimSpace(r.Header.Get(clientIDHeader))
			if clientID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Client-Id header is required"))
				return
			}

			ctx := WithClientID(r.Context(), clientID)
			if logg != nil {
				ctx = logg.WithClientID(ctx, clientID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
