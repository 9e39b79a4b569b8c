// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/dfquintero/autoferia/internal/config"
	"github.com/dfquintero/autoferia/internal/handler"
	"github.com/dfquintero/autoferia/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and their
// middleware. Unauthenticated operations live under /v1/auth; register and
// login additionally reject callers that already carry a valid session.
// Protected account endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, p *handler.ProfileHandler, cfg config.Config, rdb *redis.Client) {
	g := e.Group("/v1/auth")
	if rdb != nil {
		g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}

	// Register and login are meaningless for a caller that is already
	// signed in; a valid bearer token on these routes yields 409.
	reject := middleware.RejectAuthenticated(cfg.JWTSecret)
	g.POST("/register", a.Register, reject)
	g.POST("/login", a.Login, reject)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(cfg.JWTSecret))
	auth.GET("/me", p.Me)
	auth.PUT("/me", p.UpdateMe)
}

// RegisterPublic registers unauthenticated browse endpoints. These routes
// apply no JWT middleware and are intended for guest visitors.
func RegisterPublic(e *echo.Echo, p *handler.PublicVehicleHandler) {
	// Listing search with optional ?brand= and ?city= filters.
	e.GET("/v1/vehicles", p.SearchVehicles)
	// Full detail for a single listing, including seller contact info.
	e.GET("/v1/vehicles/:id", p.GetVehicle)
}

// RegisterSeller registers endpoints for publishing and reviewing one's own
// listings. All of them require a valid access token.
func RegisterSeller(e *echo.Echo, s *handler.SellerHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("/vehicles", s.Publish)
	g.GET("/my/vehicles", s.ListMine)
}
