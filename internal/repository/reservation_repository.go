package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ErrReservationNotFound is returned when a reservation cannot be found.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepo provides access to the reservations table.  The
// admission-relevant methods come in two flavours: plain reads against
// the pool, and Tx variants that run inside the atomic unit created by
// the booking store and observe its row locks.
type ReservationRepo struct {
	db *sql.DB
}

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// overlapWhere is the half-open interval admission predicate.  Touching
// stays (existing.check_out == new.check_in or vice versa) do not match.
const overlapWhere = `room_id = ? AND booking_status = 'Confirmed' AND check_in < ? AND check_out > ?`

// IsOverlapping reports whether any Confirmed reservation for the room
// intersects [checkIn, checkOut).  Pure read; no locks taken.
func (r *ReservationRepo) IsOverlapping(ctx context.Context, roomID uint64, checkIn, checkOut model.Date) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM reservations WHERE "+overlapWhere+")",
		roomID, checkOut, checkIn).Scan(&exists)
	return exists, err
}

// HasOverlapTx evaluates the admission predicate inside a transaction,
// locking the candidate conflicting rows so a concurrent unit cannot
// confirm them away underneath us.
func (r *ReservationRepo) HasOverlapTx(ctx context.Context, tx *sql.Tx, roomID uint64, checkIn, checkOut model.Date) (bool, error) {
	var id uint64
	err := tx.QueryRowContext(ctx,
		"SELECT id FROM reservations WHERE "+overlapWhere+" LIMIT 1 FOR UPDATE",
		roomID, checkOut, checkIn).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateTx inserts a reservation within the scope of an existing
// transaction, populating ID and timestamps on the provided record.
// A duplicate reservation code surfaces as booking.ErrCodeExists so
// the engine can regenerate and retry.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (reservation_code, customer_id, room_id, check_in, check_out, booking_status)
         VALUES (?, ?, ?, ?, ?, ?)`,
		res.Code, res.CustomerID, res.RoomID, res.CheckIn, res.CheckOut, res.Status)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return booking.ErrCodeExists
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM reservations WHERE id = ?", res.ID).
		Scan(&res.CreatedAt, &res.UpdatedAt)
}

// Detail is a reservation joined with customer, room and hotel
// information for list and retrieve responses.
type Detail struct {
	ID           uint64     `json:"id"`
	Code         string     `json:"reservation_code"`
	CustomerID   uint64     `json:"customer_id"`
	CustomerName string     `json:"customer_name"`
	RoomID       uint64     `json:"room_id"`
	RoomNumber   int        `json:"room_number"`
	HotelID      uint64     `json:"hotel_id"`
	HotelName    string     `json:"hotel_name"`
	CheckIn      model.Date `json:"check_in"`
	CheckOut     model.Date `json:"check_out"`
	Status       string     `json:"booking_status"`
}

const detailSelect = `SELECT r.id, r.reservation_code, r.customer_id, u.name, r.room_id, rm.number,
                             h.id, h.name, r.check_in, r.check_out, r.booking_status
                      FROM reservations r
                      JOIN customers c ON c.id = r.customer_id
                      JOIN users u ON u.id = c.user_id
                      JOIN rooms rm ON rm.id = r.room_id
                      JOIN hotels h ON h.id = rm.hotel_id`

func scanDetail(rows *sql.Rows) (*Detail, error) {
	var d Detail
	if err := rows.Scan(&d.ID, &d.Code, &d.CustomerID, &d.CustomerName, &d.RoomID, &d.RoomNumber,
		&d.HotelID, &d.HotelName, &d.CheckIn, &d.CheckOut, &d.Status); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ReservationRepo) queryDetails(ctx context.Context, q string, args ...interface{}) ([]*Detail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*Detail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListAll returns every reservation, newest check-in first.  Reserved
// for admin callers.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]*Detail, error) {
	return r.queryDetails(ctx, detailSelect+" ORDER BY r.check_in DESC")
}

// ListByCustomer returns the reservations of one customer.
func (r *ReservationRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]*Detail, error) {
	return r.queryDetails(ctx, detailSelect+" WHERE r.customer_id = ? ORDER BY r.check_in DESC", customerID)
}

// ListByHotel returns the reservations of all rooms of one hotel, for
// employer callers.
func (r *ReservationRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]*Detail, error) {
	return r.queryDetails(ctx, detailSelect+" WHERE rm.hotel_id = ? ORDER BY r.check_in DESC", hotelID)
}

// GetByID fetches a single reservation with joined details.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*Detail, error) {
	rows, err := r.db.QueryContext(ctx, detailSelect+" WHERE r.id = ?", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrReservationNotFound
	}
	return scanDetail(rows)
}

// StatusForUpdateTx loads the current booking status of a reservation
// inside a transaction, locking its row.
func (r *ReservationRepo) StatusForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (string, error) {
	var status string
	err := tx.QueryRowContext(ctx,
		"SELECT booking_status FROM reservations WHERE id = ? FOR UPDATE", id).
		Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrReservationNotFound
	}
	return status, err
}

// UpdateStatusTx changes the booking status within a transaction, so a
// transition to Confirmed can share the atomic unit with the room lock
// and the overlap re-check.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE reservations SET booking_status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// GetRoomForDeleteTx loads the room ID of a reservation inside a
// transaction, locking the reservation row.
func (r *ReservationRepo) GetRoomForDeleteTx(ctx context.Context, tx *sql.Tx, id uint64) (uint64, error) {
	var roomID uint64
	err := tx.QueryRowContext(ctx,
		"SELECT room_id FROM reservations WHERE id = ? FOR UPDATE", id).Scan(&roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrReservationNotFound
	}
	return roomID, err
}

// DeleteTx removes a reservation within a transaction.  The caller is
// expected to flip the room's advisory flag back to available in the
// same unit.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM reservations WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}
