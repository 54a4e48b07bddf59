package handler

import (
	"net/http"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/labstack/echo/v4"
)

type employerReq struct {
	UserID       uint64 `json:"user_id"`
	JobTitle     string `json:"job_title"`
	IsAdminStaff bool   `json:"is_admin_staff"`
}

// CreateEmployer handles POST /v1/hotels/:id/employers, linking a user
// account to a hotel as staff.  Admin only.
func (h *StaffHandler) CreateEmployer(c echo.Context) error {
	if getRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "admin only"})
	}
	hotelID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req employerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}
	emp := &model.Employer{
		UserID:       req.UserID,
		HotelID:      hotelID,
		JobTitle:     req.JobTitle,
		IsAdminStaff: req.IsAdminStaff,
	}
	if err := h.Employers.Create(c.Request().Context(), emp); err != nil {
		if err == repository.ErrHotelNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel or user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create employer"})
	}
	return c.JSON(http.StatusCreated, emp)
}

// ListEmployers handles GET /v1/hotels/:id/employers.
func (h *StaffHandler) ListEmployers(c echo.Context) error {
	hotelID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	ok, err := h.canManageHotel(ctx, c, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	items, err := h.Employers.ListByHotel(ctx, hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateEmployer handles PUT /v1/employers/:id.
func (h *StaffHandler) UpdateEmployer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	emp, err := h.Employers.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrEmployerNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "employer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	ok, err := h.canManageHotel(ctx, c, emp.HotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req employerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	emp.JobTitle = req.JobTitle
	emp.IsAdminStaff = req.IsAdminStaff
	if err := h.Employers.Update(ctx, emp); err != nil {
		if err == repository.ErrEmployerNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "employer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, emp)
}

// DeleteEmployer handles DELETE /v1/employers/:id.  Admin only.
func (h *StaffHandler) DeleteEmployer(c echo.Context) error {
	if getRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "admin only"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Employers.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrEmployerNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "employer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
