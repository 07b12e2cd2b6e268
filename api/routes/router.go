package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	cartcontrollers "github.com/angelmondragon/storefront-backend/api/controllers/cart"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/auth"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	checkoutsvc "github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/internal/tags"
	"github.com/angelmondragon/storefront-backend/internal/tips"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	productService products.Service,
	tagService tags.Service,
	tipService tips.Service,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	// A nil *redis.Client must not reach the middlewares as a non-nil interface.
	var (
		redisPinger      controllers.Pinger
		idempotencyStore redis.IdempotencyStore
		loginLimiter     = middleware.AuthRateLimit(middleware.AuthRateLimitPolicy{}, nil, logg)
	)
	if redisClient != nil {
		redisPinger = redisClient
		loginLimiter = middleware.AuthRateLimit(
			middleware.NewAuthRateLimitPolicy("admin_login", cfg.Admin.LoginWindow, cfg.Admin.LoginIPLimit),
			redisClient,
			logg,
		)
		if cfg.FeatureFlags.Idempotency {
			idempotencyStore = redisClient
		}
	}
	idempotency := middleware.Idempotency(idempotencyStore, cfg.FeatureFlags.IdempotencyTTL, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", controllers.Health(dbP, logg))
		r.Get("/health/ready", controllers.HealthReady(dbP, redisPinger, logg))

		r.Get("/products", controllers.PublicListProducts(productService, logg))
		r.Get("/products/{id}", controllers.PublicGetProduct(productService, logg))
		r.Get("/tags", controllers.PublicListTags(tagService, logg))
		r.Get("/tips", controllers.PublicListTips(tipService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Post("/", cartcontrollers.CartCreate(cartService, logg))
			r.Get("/{token}", cartcontrollers.CartFetch(cartService, logg))
			r.Post("/{token}/items", cartcontrollers.CartAddItem(cartService, logg))
			r.Put("/{token}/items/{itemID}", cartcontrollers.CartUpdateItem(cartService, logg))
			r.Delete("/{token}/items/{itemID}", cartcontrollers.CartRemoveItem(cartService, logg))
		})

		r.With(idempotency).Post("/orders", controllers.Checkout(checkoutService, logg))
		r.Get("/orders/{id}", controllers.GetOrder(ordersService, logg))

		r.Route("/admin", func(r chi.Router) {
			r.With(loginLimiter).Post("/login", controllers.AdminLogin(authService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(cfg.JWT, logg))
				r.Get("/verify", controllers.AdminVerify())
				mountAdminProducts(r, productService, logg)
				mountAdminTags(r, tagService, logg)
				mountAdminTips(r, tipService, logg)
				mountAdminOrders(r, ordersService, logg)
			})
		})
	})

	return r
}

func mountAdminProducts(r chi.Router, svc products.Service, logg *logger.Logger) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.AdminListProducts(svc, logg))
		r.Post("/", controllers.AdminCreateProduct(svc, logg))
		r.Patch("/reorder", controllers.AdminReorderProducts(svc, logg))
		r.Get("/{id}", controllers.AdminGetProduct(svc, logg))
		r.Put("/{id}", controllers.AdminUpdateProduct(svc, logg))
		r.Delete("/{id}", controllers.AdminDeleteProduct(svc, logg))
		r.Post("/{id}/clone", controllers.AdminCloneProduct(svc, logg))
		r.Post("/{id}/translations", controllers.AdminUpsertProductTranslation(svc, logg))
		r.Delete("/{id}/translations/{language}", controllers.AdminDeleteProductTranslation(svc, logg))
		r.Post("/{id}/variations", controllers.AdminCreateVariation(svc, logg))
		r.Patch("/{id}/variations/reorder", controllers.AdminReorderVariations(svc, logg))
		r.Put("/{id}/variations/{vid}", controllers.AdminUpdateVariation(svc, logg))
		r.Delete("/{id}/variations/{vid}", controllers.AdminDeleteVariation(svc, logg))
		r.Post("/{id}/variations/{vid}/translations", controllers.AdminUpsertVariationTranslation(svc, logg))
		r.Delete("/{id}/variations/{vid}/translations/{language}", controllers.AdminDeleteVariationTranslation(svc, logg))
	})
}

func mountAdminTags(r chi.Router, svc tags.Service, logg *logger.Logger) {
	r.Route("/tags", func(r chi.Router) {
		r.Get("/", controllers.AdminListTags(svc, logg))
		r.Post("/", controllers.AdminCreateTag(svc, logg))
		r.Patch("/reorder", controllers.AdminReorderTags(svc, logg))
		r.Get("/{id}", controllers.AdminGetTag(svc, logg))
		r.Put("/{id}", controllers.AdminUpdateTag(svc, logg))
		r.Delete("/{id}", controllers.AdminDeleteTag(svc, logg))
		r.Post("/{id}/translations", controllers.AdminUpsertTagTranslation(svc, logg))
		r.Delete("/{id}/translations/{language}", controllers.AdminDeleteTagTranslation(svc, logg))

		r.Get("/products/{id}", controllers.AdminEntityTags(svc, enums.EntityKindProduct, logg))
		r.Post("/products/{id}", controllers.AdminAssignTag(svc, enums.EntityKindProduct, logg))
		r.Delete("/products/{id}/tags/{tagID}", controllers.AdminUnassignTag(svc, enums.EntityKindProduct, logg))
		r.Get("/tips/{id}", controllers.AdminEntityTags(svc, enums.EntityKindTip, logg))
		r.Post("/tips/{id}", controllers.AdminAssignTag(svc, enums.EntityKindTip, logg))
		r.Delete("/tips/{id}/tags/{tagID}", controllers.AdminUnassignTag(svc, enums.EntityKindTip, logg))
	})
}

func mountAdminTips(r chi.Router, svc tips.Service, logg *logger.Logger) {
	r.Route("/tips", func(r chi.Router) {
		r.Get("/", controllers.AdminListTips(svc, logg))
		r.Post("/", controllers.AdminCreateTip(svc, logg))
		r.Patch("/reorder", controllers.AdminReorderTips(svc, logg))
		r.Get("/{id}", controllers.AdminGetTip(svc, logg))
		r.Put("/{id}", controllers.AdminUpdateTip(svc, logg))
		r.Delete("/{id}", controllers.AdminDeleteTip(svc, logg))
		r.Post("/{id}/translations", controllers.AdminUpsertTipTranslation(svc, logg))
		r.Delete("/{id}/translations/{language}", controllers.AdminDeleteTipTranslation(svc, logg))
	})
}

func mountAdminOrders(r chi.Router, svc orders.Service, logg *logger.Logger) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", controllers.AdminListOrders(svc, logg))
		r.Get("/{id}", controllers.AdminGetOrder(svc, logg))
		r.Patch("/{id}/status", controllers.AdminUpdateOrderStatus(svc, logg))
		r.Patch("/{id}", controllers.AdminUpdateOrder(svc, logg))
	})
}
