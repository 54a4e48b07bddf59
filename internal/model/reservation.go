package model

import "time"

// Booking status values stored in reservations.booking_status.  Only
// Confirmed reservations participate in the overlap constraint; a room
// may accumulate any number of Pending or Cancelled holds.  Cancelled
// is terminal.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
)

// ValidStatus reports whether s is a member of the booking status
// enumeration.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

// CanTransition reports whether an administrative status change from
// one state to another is legal.  Pending may move to Confirmed or
// Cancelled; Confirmed may only be cancelled; Cancelled is terminal.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled
	}
	return false
}

// Reservation records one booking of one room for one customer over a
// half-open date interval [CheckIn, CheckOut).  The reservation code is
// assigned exactly once at creation (10 random bytes, hex-encoded) and
// never regenerated on subsequent saves.
//
// Invariants:
//  - CheckOut is strictly after CheckIn.
//  - For a given room, Confirmed reservations are pairwise
//    non-overlapping on [CheckIn, CheckOut).  Two stays that merely
//    touch (one ends the day the other begins) do not overlap.
//
// Fields:
//  ID         – primary key identifier.
//  Code       – externally-facing unique reservation code (20 hex chars).
//  CustomerID – customer who booked.
//  RoomID     – room being booked.
//  CheckIn    – first night of the stay.
//  CheckOut   – day of departure (exclusive).
//  Status     – one of Pending, Confirmed, Cancelled.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Reservation struct {
	ID         uint64    `json:"id"`               // reservations.id
	Code       string    `json:"reservation_code"` // reservations.reservation_code
	CustomerID uint64    `json:"customer_id"`      // reservations.customer_id
	RoomID     uint64    `json:"room_id"`          // reservations.room_id
	CheckIn    Date      `json:"check_in"`         // reservations.check_in
	CheckOut   Date      `json:"check_out"`        // reservations.check_out
	Status     string    `json:"booking_status"`   // reservations.booking_status
	CreatedAt  time.Time `json:"created_at"`       // reservations.created_at
	UpdatedAt  time.Time `json:"updated_at"`       // reservations.updated_at
}

// Overlaps reports whether the stay [CheckIn, CheckOut) intersects the
// half-open interval [in, out).
func (r Reservation) Overlaps(in, out Date) bool {
	return r.CheckIn.Before(out) && in.Before(r.CheckOut)
}

// Nights returns the length of the stay in nights.
func (r Reservation) Nights() int {
	return r.CheckIn.DaysUntil(r.CheckOut)
}
