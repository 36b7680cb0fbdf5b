package router

import (
	"net/http"

	"github.com/RoyceAzure/lab/kitchen/internal/api"
	m "github.com/RoyceAzure/lab/kitchen/internal/api/middleware"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RateLimits 三種路由分類各自的限制
type RateLimits struct {
	Public        ratelimit.LimiterConfig
	Auth          ratelimit.LimiterConfig
	Authenticated ratelimit.LimiterConfig
}

// SetupRouter limiter 為nil時不限流
func SetupRouter(server *api.Server, tokenMaker token.Maker, limiter m.Limiter, limits RateLimits, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(middleware.RealIP)
	r.Use(m.RequestIdMiddleware)
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware)

	limit := func(class string, cfg ratelimit.LimiterConfig) func(http.Handler) http.Handler {
		if limiter == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return m.NewRateLimitMiddleware(limiter, class, cfg)
	}
	publicLimit := limit(m.RateLimitPublic, limits.Public)
	authLimit := limit(m.RateLimitAuth, limits.Auth)
	userLimit := limit(m.RateLimitAuthenticated, limits.Authenticated)

	r.Get("/health", server.HealthHandler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		//Auth相關路由
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimit)
			r.Post("/register", server.AuthHandler.Register)
			r.Post("/verify-email", server.AuthHandler.VerifyEmail)
			r.Post("/login", server.AuthHandler.Login)
			r.Post("/admin/register", server.AuthHandler.AdminRegister)
			r.Post("/admin/login", server.AuthHandler.AdminLogin)
			r.Post("/resend-otp", server.AuthHandler.ResendOTP)
			r.Post("/forgot-password", server.AuthHandler.ForgotPassword)
			r.Post("/reset-password", server.AuthHandler.ResetPassword)
			r.Post("/refresh-token", server.AuthHandler.RefreshToken)
			r.With(m.AuthMiddleware).Post("/logout", server.AuthHandler.Logout)
		})

		// 公開的菜單
		r.Group(func(r chi.Router) {
			r.Use(publicLimit)
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", server.CatalogHandler.ListCategories)
				r.Get("/{idOrSlug}", server.CatalogHandler.GetCategory)
				r.Get("/{idOrSlug}/food-items", server.CatalogHandler.ListFoodItemsByCategory)
			})
			r.Route("/food-items", func(r chi.Router) {
				r.Get("/", server.CatalogHandler.ListFoodItems)
				r.Get("/{idOrSlug}", server.CatalogHandler.GetFoodItem)
			})
		})

		// 需登入
		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Use(userLimit)

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", server.UserHandler.GetProfile)
				r.Patch("/", server.UserHandler.UpdateProfile)
				r.Post("/change-password", server.UserHandler.ChangePassword)
				r.Get("/referral", server.UserHandler.GetReferralInfo)
				r.Route("/addresses", func(r chi.Router) {
					r.Get("/", server.UserHandler.ListAddresses)
					r.Post("/", server.UserHandler.CreateAddress)
					r.Get("/{addressID}", server.UserHandler.GetAddress)
					r.Patch("/{addressID}", server.UserHandler.UpdateAddress)
					r.Delete("/{addressID}", server.UserHandler.DeleteAddress)
					r.Patch("/{addressID}/default", server.UserHandler.SetDefaultAddress)
				})
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", server.CartHandler.GetCart)
				r.Delete("/", server.CartHandler.Clear)
				r.Get("/count", server.CartHandler.Count)
				r.Post("/items", server.CartHandler.AddItem)
				r.Patch("/items/{itemID}", server.CartHandler.UpdateItem)
				r.Delete("/items/{itemID}", server.CartHandler.RemoveItem)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", server.OrderHandler.CreateOrder)
				r.Get("/", server.OrderHandler.ListMyOrders)
				r.Get("/number/{orderNumber}", server.OrderHandler.GetMyOrderByNumber)
				r.Get("/{orderID}", server.OrderHandler.GetMyOrder)
				r.Post("/{orderID}/cancel", server.OrderHandler.CancelMyOrder)
			})

			// 管理者
			r.Route("/admin", func(r chi.Router) {
				r.Use(m.AdminMiddleware)

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", server.CatalogHandler.AdminListCategories)
					r.Post("/", server.CatalogHandler.CreateCategory)
					r.Patch("/{id}", server.CatalogHandler.UpdateCategory)
					r.Delete("/{id}", server.CatalogHandler.DeleteCategory)
					r.Patch("/{id}/toggle-active", server.CatalogHandler.ToggleCategoryActive)
				})

				r.Route("/food-items", func(r chi.Router) {
					r.Get("/", server.CatalogHandler.AdminListFoodItems)
					r.Post("/", server.CatalogHandler.CreateFoodItem)
					r.Patch("/{id}", server.CatalogHandler.UpdateFoodItem)
					r.Delete("/{id}", server.CatalogHandler.DeleteFoodItem)
					r.Patch("/{id}/toggle-availability", server.CatalogHandler.ToggleFoodItemAvailability)
					r.Patch("/{id}/toggle-featured", server.CatalogHandler.ToggleFoodItemFeatured)
				})

				r.Route("/orders", func(r chi.Router) {
					r.Get("/", server.OrderHandler.ListAllOrders)
					r.Get("/statistics", server.OrderHandler.GetStatistics)
					r.Get("/{orderID}", server.OrderHandler.GetOrder)
					r.Patch("/{orderID}/status", server.OrderHandler.UpdateOrderStatus)
				})

				r.Route("/promo-codes", func(r chi.Router) {
					r.Get("/", server.PromoHandler.List)
					r.Post("/", server.PromoHandler.Create)
					r.Get("/{code}", server.PromoHandler.Get)
					r.Patch("/{code}", server.PromoHandler.Update)
					r.Patch("/{code}/deactivate", server.PromoHandler.Deactivate)
				})
			})
		})
	})

	// 設置完所有路由後印出路由樹
	_ = chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		log.Debug().Str("method", method).Str("route", route).Msg("route registered")
		return nil
	})
	return r
}
