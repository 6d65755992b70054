// Package router defines how HTTP routes are registered for the API
// and for guarded browser navigation.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/muhammadafan/fresh-harvest-connect/internal/config"
	"github.com/muhammadafan/fresh-harvest-connect/internal/handler"
	"github.com/muhammadafan/fresh-harvest-connect/internal/middleware"
	"github.com/muhammadafan/fresh-harvest-connect/internal/model"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Products *handler.ProductHandler
	Profiles *handler.ProfileHandler
	Category *handler.CategoryHandler
	Upload   *handler.UploadHandler
}

// Register mounts all routes. Three kinds of surface:
//
//   - public API: health, metrics, signup/login, category and
//     marketplace listings (the listings sit behind the response cache);
//   - session API: everything else, behind the Session middleware and,
//     where a role is required, RequireRole on the token claim —
//     handlers then re-verify role and ownership against the store;
//   - browser pages: behind the Guard redirect policy instead of 401s.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, h Handlers) {
	e.Use(middleware.Metrics())

	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Credential exchange, rate limited to slow brute forcing.
	auth := e.Group("/auth", middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	auth.POST("/signup", h.Auth.Signup)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/logout", h.Auth.Logout)

	// Public browse endpoints, cached.
	cache := middleware.CacheGET(config.LoadCacheConfig(), rdb)
	e.GET("/categories", h.Category.List, cache)
	e.GET("/v1/products", h.Products.Browse, cache)

	session := middleware.Session(cfg.JWTSecret)

	e.POST("/categories", h.Category.Create, session,
		middleware.RequireRole(model.RoleAdmin))
	e.GET("/v1/me", h.Auth.Me, session)
	e.POST("/upload", h.Upload.Relay, session)

	// Farmer resource API. RequireRole gates on the token snapshot;
	// every handler re-resolves the stored user before mutating.
	farmer := e.Group("/farmer", session)
	farmerOnly := middleware.RequireRole(model.RoleFarmer)
	farmer.GET("/products", h.Products.ListMine, farmerOnly)
	farmer.POST("/products", h.Products.Create, farmerOnly)
	farmer.GET("/products/:id", h.Products.Get,
		middleware.RequireRole(model.RoleFarmer, model.RoleAdmin))
	farmer.PUT("/products/:id", h.Products.Update, farmerOnly)
	farmer.DELETE("/products/:id", h.Products.Delete, farmerOnly)
	farmer.GET("/profile", h.Profiles.Get)
	farmer.POST("/profile", h.Profiles.Save, farmerOnly)

	// Browser navigation behind the route guard's redirect policy.
	// Farmer page paths that double as API endpoints above are gated by
	// the API middleware instead; Decide covers the whole /farmer
	// prefix either way.
	pages := e.Group("", middleware.Guard(cfg.JWTSecret))
	pages.GET("/login", handler.Page("login"))
	pages.GET("/signup", handler.Page("signup"))
	pages.GET("/register", handler.Page("register"))
	pages.GET("/dashboard", handler.Page("dashboard"))
	pages.GET("/farmer", handler.Page("farmer"))
	pages.GET("/farmer/products/new", handler.Page("new product"))
}
