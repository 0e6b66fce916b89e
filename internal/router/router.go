package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/abhinavmaity/ParkIt/internal/config"
	"github.com/abhinavmaity/ParkIt/internal/handler"
	"github.com/abhinavmaity/ParkIt/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check
// for load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth, while the profile
// endpoint lives under /v1 behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the presented token is revoked
	// and a fresh pair is returned.
	g.POST("/refresh", a.Refresh)
	// Logout only needs the refresh token in the body, not a JWT, so a
	// client with an expired access token can still end its session.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the guest-facing browse endpoints: the spot
// catalogue and the availability view.  GET responses are cached in
// Redis so that burst traffic around popular windows does not hammer
// the database.
func RegisterPublic(e *echo.Echo, s *handler.SpotHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := middleware.ResponseCache(cacheCfg, rdb)
	e.GET("/v1/spots", s.List, cached)
	e.GET("/v1/spots/availability", s.Availability, cached)
}
