package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/nsbizsole/green-arcadian-system-new/internal/config"
	"github.com/nsbizsole/green-arcadian-system-new/internal/handler"    // import the handlers that implement business logic
	"github.com/nsbizsole/green-arcadian-system-new/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes and the authenticated /me
// endpoint.  Register and login live under /api/auth without middleware;
// /api/auth/me runs behind the full guard so it reflects the live account
// state, not the token's snapshot.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, guard echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	g.GET("/me", a.Me, guard)
}

// RegisterPublic registers the unauthenticated storefront endpoints.  The
// read endpoints sit behind the Redis response cache; everything public sits
// behind the token bucket limiter.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e.GET("/api/products", p.Products, limiter, cache)
	e.GET("/api/products/:id", p.Product, limiter, cache)
	e.GET("/api/categories", p.Categories, limiter, cache)

	e.POST("/api/inquiries", p.CreateInquiry, limiter)
	e.POST("/api/orders/public", p.PlaceOrder, limiter)
}
