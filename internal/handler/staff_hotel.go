package handler

import (
	"net/http"
	"strings"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/labstack/echo/v4"
)

type hotelReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateHotel handles POST /v1/hotels.  Only ADMIN may create hotels;
// employers are always scoped to an existing one.
func (h *StaffHandler) CreateHotel(c echo.Context) error {
	if getRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "admin only"})
	}
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	hotel := &model.Hotel{Name: name, Email: req.Email, Phone: req.Phone, Address: req.Address}
	if err := h.Hotels.Create(c.Request().Context(), hotel); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hotel already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create hotel"})
	}
	return c.JSON(http.StatusCreated, hotel)
}

// UpdateHotel handles PUT /v1/hotels/:id.
func (h *StaffHandler) UpdateHotel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	ok, err := h.canManageHotel(ctx, c, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req hotelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	hotel := &model.Hotel{ID: id, Name: name, Email: req.Email, Phone: req.Phone, Address: req.Address}
	if err := h.Hotels.Update(ctx, hotel); err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, _ := h.Hotels.GetByID(ctx, id)
	return c.JSON(http.StatusOK, updated)
}

// DeleteHotel handles DELETE /v1/hotels/:id.  Admin only; hotels with
// reserved rooms are protected by the FK constraint.
func (h *StaffHandler) DeleteHotel(c echo.Context) error {
	if getRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "admin only"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Hotels.Delete(c.Request().Context(), id); err != nil {
		switch err {
		case repository.ErrHotelNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "hotel has dependent records"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
