package handler

import (
	"context"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/labstack/echo/v4"
)

// StaffHandler bundles the repositories behind the hotel-management
// endpoints.  Routes using it are gated to ADMIN and EMPLOYER roles by
// middleware; per-hotel ownership is enforced here.
type StaffHandler struct {
	Hotels    *repository.HotelRepo
	Rooms     *repository.RoomRepo
	Employers *repository.EmployerRepo
	Customers *repository.CustomerRepo
}

func NewStaffHandler(hotels *repository.HotelRepo, rooms *repository.RoomRepo, employers *repository.EmployerRepo, customers *repository.CustomerRepo) *StaffHandler {
	if hotels == nil || rooms == nil || employers == nil || customers == nil {
		panic("nil repository passed to NewStaffHandler")
	}
	return &StaffHandler{Hotels: hotels, Rooms: rooms, Employers: employers, Customers: customers}
}

// canManageHotel reports whether the calling user may modify resources
// of the given hotel.  ADMIN may modify anything; an EMPLOYER must be
// admin staff of that hotel.
func (h *StaffHandler) canManageHotel(ctx context.Context, c echo.Context, hotelID uint64) (bool, error) {
	if getRole(c) == model.RoleAdmin {
		return true, nil
	}
	uid, err := getUserID(c)
	if err != nil {
		return false, nil
	}
	emp, err := h.Employers.GetByUserID(ctx, uid)
	if err != nil {
		if err == repository.ErrEmployerNotFound {
			return false, nil
		}
		return false, err
	}
	return emp.IsAdminStaff && emp.HotelID == hotelID, nil
}
