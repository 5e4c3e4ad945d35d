package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/college-event-ticketing/internal/config"
	"github.com/iliyamo/college-event-ticketing/internal/handler"
	"github.com/iliyamo/college-event-ticketing/internal/middleware"
)

// Deps carries everything route registration needs.
type Deps struct {
	Cfg      config.Config
	RateCfg  config.RateLimitConfig
	CacheCfg config.CacheConfig
	Redis    *redis.Client // nil disables rate limiting and caching
	Auth     *handler.AuthHandler
	Events   *handler.EventHandler
	Bookings *handler.BookingHandler
}

// RegisterRoutes wires every endpoint onto the Echo instance.
//
// Layout:
//
//	GET  /healthz                  liveness probe, no middleware
//	POST /v1/auth/register         account creation
//	POST /v1/auth/login            credential exchange
//	POST /v1/auth/refresh          refresh-token rotation
//	POST /v1/auth/logout           refresh-token revocation
//	GET  /v1/events                public catalog (cached)
//	GET  /v1/events/:id            event + booked seats (cached)
//	GET  /v1/events/:id/seats      seat grid view (cached)
//	GET  /v1/me                    authenticated profile
//	POST /v1/bookings              atomic seat booking
//	GET  /v1/bookings/:id          one booking, owner only
//	GET  /v1/my-bookings           caller's booking history
func RegisterRoutes(e *echo.Echo, d Deps) {
	// Global token-bucket rate limit.  The middleware is a pass-through
	// when Redis is unavailable.
	e.Use(middleware.NewTokenBucket(d.RateCfg, d.Redis))

	// Health check stays outside /v1 so probes never hit auth or cache.
	e.GET("/healthz", handler.Health)

	// Unauthenticated session operations.
	a := e.Group("/v1/auth")
	a.POST("/register", d.Auth.Register)
	a.POST("/login", d.Auth.Login)
	a.POST("/refresh", d.Auth.Refresh)
	a.POST("/logout", d.Auth.Logout)

	// Public catalog.  Read-only and safe to cache; booked-seat data is
	// kept fresh by the short cache TTL.
	pub := e.Group("/v1")
	pub.Use(middleware.NewRedisCache(d.CacheCfg, d.Redis))
	pub.GET("/events", d.Events.ListEvents)
	pub.GET("/events/:id", d.Events.GetEvent)
	pub.GET("/events/:id/seats", d.Events.GetEventSeats)

	// Everything below requires a valid access token.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(d.Cfg.JWTSecret))
	auth.GET("/me", d.Auth.Me)
	auth.POST("/bookings", d.Bookings.CreateBooking)
	auth.GET("/bookings/:id", d.Bookings.GetBooking)
	auth.GET("/my-bookings", d.Bookings.MyBookings)
}
