// Package router wires handlers to URL paths and attaches the
// middleware each group needs.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
)

// RegisterRoutes registers routes that carry no authentication at all.
// Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Register,
// login, refresh and logout live under /v1/auth without a session;
// /v1/me requires a valid access token.  The optional rate limiter
// guards the credential endpoints against brute forcing.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rate echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if rate != nil {
		g.Use(rate)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout works with either a bearer token or a refresh token in
	// the body, so it is registered outside the JWT middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints: hotels,
// rooms and the availability probe.  Guests use these to shop for a
// room before registering.  Typical middleware here is the rate
// limiter and the Redis response cache.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mws ...echo.MiddlewareFunc) {
	g := e.Group("/v1")
	for _, mw := range mws {
		if mw != nil {
			g.Use(mw)
		}
	}
	g.GET("/hotels", p.GetHotels)
	g.GET("/hotels/:id", p.GetHotel)
	g.GET("/hotels/:id/rooms", p.GetHotelRooms)
	g.GET("/rooms/:id", p.GetRoom)
	g.GET("/rooms/:id/availability", p.CheckAvailability)
}
