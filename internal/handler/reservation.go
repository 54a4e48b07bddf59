package handler

import (
	"errors"
	"net/http"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/labstack/echo/v4"
)

// ReservationHandler wires the booking engine and the reservation
// repository into the HTTP surface.  Creation goes through the engine
// exclusively; the handler never evaluates availability itself.
//
// Visibility is role-scoped: ADMIN sees every reservation, a CUSTOMER
// sees their own, an EMPLOYER sees those of their hotel.
type ReservationHandler struct {
	Engine       *booking.Engine
	Reservations *repository.ReservationRepo
	Rooms        *repository.RoomRepo
	Customers    *repository.CustomerRepo
	Employers    *repository.EmployerRepo
}

func NewReservationHandler(engine *booking.Engine, reservations *repository.ReservationRepo, rooms *repository.RoomRepo, customers *repository.CustomerRepo, employers *repository.EmployerRepo) *ReservationHandler {
	if engine == nil || reservations == nil || rooms == nil || customers == nil || employers == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Engine:       engine,
		Reservations: reservations,
		Rooms:        rooms,
		Customers:    customers,
		Employers:    employers,
	}
}

type createReservationReq struct {
	RoomID     uint64     `json:"room_id"`
	CustomerID uint64     `json:"customer_id"`
	CheckIn    model.Date `json:"check_in"`
	CheckOut   model.Date `json:"check_out"`
	Status     string     `json:"booking_status"`
}

type statusReq struct {
	Status string `json:"booking_status"`
}

// Create handles POST /v1/reservations.  A CUSTOMER always books for
// their own profile; staff may pass customer_id to book on behalf of a
// guest.
func (h *ReservationHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	if req.Status != "" && !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking_status"})
	}

	ctx := c.Request().Context()
	if getRole(c) == model.RoleCustomer {
		cust, err := h.Customers.GetByUserID(ctx, uid)
		if err != nil {
			if err == repository.ErrCustomerNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "customer profile not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		req.CustomerID = cust.ID
	}
	if req.CustomerID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id is required"})
	}

	res, err := h.Engine.CreateReservation(ctx, booking.CreateRequest{
		RoomID:     req.RoomID,
		CustomerID: req.CustomerID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Status:     req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidDateRange):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
		case errors.Is(err, booking.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, booking.ErrCustomerNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		case errors.Is(err, booking.ErrRoomUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room is not available for the requested dates"})
		case errors.Is(err, booking.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking_status"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create reservation"})
	}
	return c.JSON(http.StatusCreated, res)
}

// List handles GET /v1/reservations with role-scoped visibility.
func (h *ReservationHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	var items []*repository.Detail
	switch getRole(c) {
	case model.RoleAdmin:
		items, err = h.Reservations.ListAll(ctx)
	case model.RoleCustomer:
		cust, cerr := h.Customers.GetByUserID(ctx, uid)
		if cerr != nil {
			if cerr == repository.ErrCustomerNotFound {
				return c.JSON(http.StatusOK, echo.Map{"items": []*repository.Detail{}})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		items, err = h.Reservations.ListByCustomer(ctx, cust.ID)
	case model.RoleEmployer:
		emp, eerr := h.Employers.GetByUserID(ctx, uid)
		if eerr != nil {
			if eerr == repository.ErrEmployerNotFound {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "no hotel assignment"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		items, err = h.Reservations.ListByHotel(ctx, emp.HotelID)
	default:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/reservations/:id, subject to the same scoping as
// List.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	d, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	ok, err := h.canSee(c, d)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, d)
}

// UpdateStatus handles PATCH /v1/reservations/:id/status.  Staff only.
// The transition itself runs through the commit engine, which holds
// the room lock, checks legality against the booking state machine and
// re-runs the overlap check when the target status is Confirmed.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil || !model.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking_status"})
	}

	ctx := c.Request().Context()
	d, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	ok, err := h.staffOverHotel(c, d.HotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	err = h.Engine.ChangeStatus(ctx, booking.StatusChange{
		ReservationID: id,
		RoomID:        d.RoomID,
		CheckIn:       d.CheckIn,
		CheckOut:      d.CheckOut,
		NewStatus:     req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, booking.ErrIllegalTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": "illegal status transition"})
		case errors.Is(err, booking.ErrRoomUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room is not available for the requested dates"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	d.Status = req.Status
	return c.JSON(http.StatusOK, d)
}

// Delete handles DELETE /v1/reservations/:id.  The reservation row and
// the room's advisory flag change in the same atomic unit, so the room
// is advertised as available again the moment the stay is gone.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	d, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	ok, err := h.canSee(c, d)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	roomID, err := h.Reservations.GetRoomForDeleteTx(ctx, tx, id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Reservations.DeleteTx(ctx, tx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if err := h.Rooms.SetAvailabilityTx(ctx, tx, roomID, true); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true
	return c.NoContent(http.StatusNoContent)
}

// canSee reports whether the caller may read (or cancel) a
// reservation: ADMIN always, the owning customer, or an employer of
// the hotel.
func (h *ReservationHandler) canSee(c echo.Context, d *repository.Detail) (bool, error) {
	role := getRole(c)
	if role == model.RoleAdmin {
		return true, nil
	}
	uid, err := getUserID(c)
	if err != nil {
		return false, nil
	}
	ctx := c.Request().Context()
	switch role {
	case model.RoleCustomer:
		cust, err := h.Customers.GetByUserID(ctx, uid)
		if err != nil {
			if err == repository.ErrCustomerNotFound {
				return false, nil
			}
			return false, err
		}
		return cust.ID == d.CustomerID, nil
	case model.RoleEmployer:
		emp, err := h.Employers.GetByUserID(ctx, uid)
		if err != nil {
			if err == repository.ErrEmployerNotFound {
				return false, nil
			}
			return false, err
		}
		return emp.HotelID == d.HotelID, nil
	}
	return false, nil
}

// staffOverHotel reports whether the caller is ADMIN or an employer of
// the given hotel.
func (h *ReservationHandler) staffOverHotel(c echo.Context, hotelID uint64) (bool, error) {
	role := getRole(c)
	if role == model.RoleAdmin {
		return true, nil
	}
	if role != model.RoleEmployer {
		return false, nil
	}
	uid, err := getUserID(c)
	if err != nil {
		return false, nil
	}
	emp, err := h.Employers.GetByUserID(c.Request().Context(), uid)
	if err != nil {
		if err == repository.ErrEmployerNotFound {
			return false, nil
		}
		return false, err
	}
	return emp.HotelID == hotelID, nil
}
