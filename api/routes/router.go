package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitrinalabs/vitrina-backend/api/controllers"
	"github.com/vitrinalabs/vitrina-backend/api/middleware"
	cartsvc "github.com/vitrinalabs/vitrina-backend/internal/cart"
	combosvc "github.com/vitrinalabs/vitrina-backend/internal/combos"
	couponsvc "github.com/vitrinalabs/vitrina-backend/internal/coupons"
	productsvc "github.com/vitrinalabs/vitrina-backend/internal/products"
	shippingsvc "github.com/vitrinalabs/vitrina-backend/internal/shipping"
	"github.com/vitrinalabs/vitrina-backend/pkg/config"
	"github.com/vitrinalabs/vitrina-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	db controllers.Pinger,
	cache controllers.Pinger,
	productService productsvc.Service,
	comboService combosvc.Service,
	couponService couponsvc.Service,
	shippingService shippingsvc.Service,
	cartService cartsvc.Service,
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, db, cache))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Get("/{id}", controllers.GetProduct(productService, logg))
			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Put("/{id}", controllers.UpdateProduct(productService, logg))
			r.Delete("/{id}", controllers.DeleteProduct(productService, logg))
		})

		r.Route("/combos", func(r chi.Router) {
			r.Get("/", controllers.ListCombos(comboService, logg))
			r.Get("/{slug}", controllers.GetCombo(comboService, logg))
		})

		r.Get("/shipping/options", controllers.ListShippingOptions(shippingService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Session(logg))
			r.Post("/quote", controllers.CartQuote(cartService, logg))
			r.Post("/coupon", controllers.ApplyCoupon(cartService, logg))
			r.Delete("/coupon", controllers.RemoveCoupon(couponService, logg))
		})
	})

	return r
}
