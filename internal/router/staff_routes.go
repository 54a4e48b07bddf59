package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RegisterStaff registers hotel-management endpoints under /v1.  All
// routes require a valid JWT and the ADMIN or EMPLOYER role; per-hotel
// ownership checks happen in the handlers.  Read endpoints for hotels
// and rooms live on the public router.
func RegisterStaff(e *echo.Echo, s *handler.StaffHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleEmployer),
	)

	// ---- Hotels ----
	g.POST("/hotels", s.CreateHotel)
	g.PUT("/hotels/:id", s.UpdateHotel)
	g.PATCH("/hotels/:id", s.UpdateHotel)
	g.DELETE("/hotels/:id", s.DeleteHotel)

	// ---- Rooms ----
	g.POST("/hotels/:id/rooms", s.CreateRoom)
	g.PUT("/rooms/:id", s.UpdateRoom)
	g.PATCH("/rooms/:id", s.UpdateRoom)
	g.DELETE("/rooms/:id", s.DeleteRoom)

	// ---- Employers ----
	g.POST("/hotels/:id/employers", s.CreateEmployer)
	g.GET("/hotels/:id/employers", s.ListEmployers)
	g.PUT("/employers/:id", s.UpdateEmployer)
	g.PATCH("/employers/:id", s.UpdateEmployer)
	g.DELETE("/employers/:id", s.DeleteEmployer)
}
