package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mateohuerta/sneakpeak-backend/api/controllers"
	"github.com/mateohuerta/sneakpeak-backend/api/middleware"
	cartsvc "github.com/mateohuerta/sneakpeak-backend/internal/cart"
	catalogsvc "github.com/mateohuerta/sneakpeak-backend/internal/catalog"
	checkoutsvc "github.com/mateohuerta/sneakpeak-backend/internal/checkout"
	inventorysvc "github.com/mateohuerta/sneakpeak-backend/internal/inventory"
	ordersvc "github.com/mateohuerta/sneakpeak-backend/internal/orders"
	"github.com/mateohuerta/sneakpeak-backend/pkg/config"
	"github.com/mateohuerta/sneakpeak-backend/pkg/logger"
	"github.com/mateohuerta/sneakpeak-backend/pkg/metrics"
	pkgredis "github.com/mateohuerta/sneakpeak-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *pkgredis.Client,
	registry *prometheus.Registry,
	checkoutMetrics *metrics.CheckoutMetrics,
	checkoutService checkoutsvc.Service,
	cartService cartsvc.Service,
	ordersService ordersvc.Service,
	catalogService catalogsvc.Service,
	inventoryService inventorysvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	checkoutRateLimit := middleware.NewRateLimitPolicy(
		"checkout",
		cfg.RateLimit.CheckoutWindow,
		cfg.RateLimit.CheckoutIPLimit,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(redisClient, logg))

		r.With(middleware.RateLimit(checkoutRateLimit, redisClient, logg)).
			Post("/checkout", controllers.Checkout(checkoutService, checkoutMetrics, logg))

		r.Get("/cart", controllers.CartList(cartService, logg))
		r.Put("/cart", controllers.CartUpsert(cartService, logg))
		r.Delete("/cart", controllers.CartRemove(cartService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(ordersService, logg))
			r.Get("/{orderID}", controllers.GetOrder(ordersService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(catalogService, logg))
				r.Post("/", controllers.AdminCreateProduct(catalogService, logg))
				r.Get("/{productID}", controllers.AdminGetProduct(catalogService, logg))
				r.Put("/{productID}", controllers.AdminUpdateProduct(catalogService, logg))
			})
			r.Put("/orders/{orderID}/status", controllers.AdminUpdateOrderStatus(ordersService, logg))
			r.Get("/inventory/{productID}/history", controllers.AdminInventoryHistory(inventoryService, logg))
		})
	})

	return r
}
