package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Categories     *handlers.CategoryHandler
	Products       *handlers.ProductHandler
	Orders         *handlers.OrderHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)

	signedIn := authGroup.Group("", cfg.AuthMiddleware.RequireSignIn)
	signedIn.Get("/user-auth", cfg.Auth.UserAuth)
	signedIn.Put("/profile", cfg.Auth.UpdateProfile)
	signedIn.Get("/orders", cfg.Orders.MyOrders)

	admin := authGroup.Group("", cfg.AuthMiddleware.RequireSignIn, cfg.AuthMiddleware.IsAdmin)
	admin.Get("/admin-auth", cfg.Auth.AdminAuth)
	admin.Get("/all-orders", cfg.Orders.AllOrders)
	admin.Put("/orders/:orderId", cfg.Orders.UpdateStatus)

	categories := api.Group("/categories")
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:slug", cfg.Categories.Get)
	categories.Post("/", cfg.AuthMiddleware.RequireSignIn, cfg.AuthMiddleware.IsAdmin, cfg.Categories.Create)
	categories.Put("/:id", cfg.AuthMiddleware.RequireSignIn, cfg.AuthMiddleware.IsAdmin, cfg.Categories.Update)
	categories.Delete("/:id", cfg.AuthMiddleware.RequireSignIn, cfg.AuthMiddleware.IsAdmin, cfg.Categories.Delete)

	products := api.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Get("/count", cfg.Products.Count)
	products.Get("/:slug", cfg.Products.Get)
	products.Get("/:slug/related", cfg.Products.Related)
	products.Post("/", cfg.AuthMiddleware.RequireSignIn, cfg.AuthMiddleware.IsAdmin, cfg.Products.Create)
	products.Put("/:id", cfg.AuthMiddleware.RequireSignIn, cfg.AuthMiddleware.IsAdmin, cfg.Products.Update)
	products.Delete("/:id", cfg.AuthMiddleware.RequireSignIn, cfg.AuthMiddleware.IsAdmin, cfg.Products.Delete)

	cart := api.Group("/cart", cfg.AuthMiddleware.RequireSignIn)
	cart.Get("/", cfg.Orders.GetCart)
	cart.Put("/", cfg.Orders.PutCart)
	cart.Delete("/", cfg.Orders.ClearCart)

	orders := api.Group("/orders", cfg.AuthMiddleware.RequireSignIn)
	orders.Post("/checkout", cfg.Orders.Checkout)
}
