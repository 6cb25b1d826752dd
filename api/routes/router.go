package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/feiroulabs/feirou-backend/api/controllers"
	cartcontrollers "github.com/feiroulabs/feirou-backend/api/controllers/cart"
	checkoutcontrollers "github.com/feiroulabs/feirou-backend/api/controllers/checkout"
	ordercontrollers "github.com/feiroulabs/feirou-backend/api/controllers/orders"
	"github.com/feiroulabs/feirou-backend/api/middleware"
	"github.com/feiroulabs/feirou-backend/internal/cart"
	checkoutsvc "github.com/feiroulabs/feirou-backend/internal/checkout"
	"github.com/feiroulabs/feirou-backend/internal/orders"
	"github.com/feiroulabs/feirou-backend/pkg/config"
	"github.com/feiroulabs/feirou-backend/pkg/db"
	"github.com/feiroulabs/feirou-backend/pkg/logger"
	"github.com/feiroulabs/feirou-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	registry prometheus.Gatherer,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ClientContext(logg))

		r.Route("/carts", func(r chi.Router) {
			r.Get("/", cartcontrollers.List(cartService, logg))
			r.Post("/active", cartcontrollers.SetActive(cartService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.Active(cartService, logg))
			r.Post("/items", cartcontrollers.AddItem(cartService, logg))
			r.Route("/{sellerSlug}", func(r chi.Router) {
				r.Delete("/", cartcontrollers.Clear(cartService, logg))
				r.Route("/items/{itemId}", func(r chi.Router) {
					r.Delete("/", cartcontrollers.RemoveItem(cartService, logg))
					r.Patch("/quantity", cartcontrollers.UpdateQuantity(cartService, logg))
					r.Patch("/observation", cartcontrollers.UpdateObservation(cartService, logg))
				})
			})
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutcontrollers.Begin(checkoutService, cfg.Checkout, logg))
			r.Get("/", checkoutcontrollers.Fetch(checkoutService, cfg.Checkout, logg))
			r.Delete("/", checkoutcontrollers.Cancel(checkoutService, logg))
			r.Patch("/delivery-method", checkoutcontrollers.SetDeliveryMethod(checkoutService, cfg.Checkout, logg))
			r.Patch("/personal-info", checkoutcontrollers.UpdatePersonalInfo(checkoutService, cfg.Checkout, logg))
			r.Patch("/address", checkoutcontrollers.UpdateAddress(checkoutService, cfg.Checkout, logg))
			r.Patch("/payment", checkoutcontrollers.UpdatePayment(checkoutService, cfg.Checkout, logg))
			r.Route("/steps", func(r chi.Router) {
				r.Post("/next", checkoutcontrollers.Advance(checkoutService, cfg.Checkout, logg))
				r.Post("/prev", checkoutcontrollers.Rewind(checkoutService, cfg.Checkout, logg))
				r.Post("/goto", checkoutcontrollers.GoToStep(checkoutService, cfg.Checkout, logg))
			})
			r.Post("/finalize", checkoutcontrollers.Finalize(checkoutService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordercontrollers.List(ordersService, logg))
			r.Get("/{orderId}", ordercontrollers.Detail(ordersService, logg))
		})
	})

	return r
}
