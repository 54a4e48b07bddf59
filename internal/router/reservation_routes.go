package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RegisterReservations registers the booking endpoints under /v1.
// Every authenticated role may create and read; visibility scoping and
// the staff-only status transition are enforced in the handlers.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string, rate echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleEmployer, model.RoleCustomer),
	)
	if rate != nil {
		g.Use(rate)
	}

	g.POST("/reservations", r.Create)
	g.GET("/reservations", r.List)
	g.GET("/reservations/:id", r.Get)
	g.PATCH("/reservations/:id/status", r.UpdateStatus)
	g.DELETE("/reservations/:id", r.Delete)
}

// RegisterCustomers registers guest profile endpoints under /v1.
func RegisterCustomers(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	me := g.Group("/customers/me", middleware.RequireRole(model.RoleCustomer))
	me.GET("", h.MyProfile)
	me.PUT("/preferences", h.UpdateMyPreferences)

	admin := g.Group("/customers", middleware.RequireRole(model.RoleAdmin))
	admin.GET("", h.ListCustomers)
	admin.GET("/:id", h.GetCustomer)
	admin.DELETE("/:id", h.DeleteCustomer)
}
