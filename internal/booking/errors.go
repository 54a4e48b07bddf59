// Package booking implements the reservation admission core: deciding
// whether a requested stay can be confirmed given existing bookings,
// and committing it safely under concurrent requests for the same
// room.  Handlers translate the sentinel errors below into HTTP
// responses; every failure leaves the store untouched.
package booking

import "errors"

// ErrInvalidDateRange is returned when check-out is not strictly after
// check-in.  Rejected before any lookup; nothing is persisted.
var ErrInvalidDateRange = errors.New("check-out must be after check-in")

// ErrInvalidStatus is returned when a request carries a status outside
// the booking status enumeration.
var ErrInvalidStatus = errors.New("invalid booking status")

// ErrRoomNotFound is returned when the referenced room does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrReservationNotFound is returned when a status change references a
// reservation that does not exist.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrCustomerNotFound is returned when the referenced customer does not
// exist.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrRoomUnavailable is returned when the admission check finds a
// conflicting Confirmed reservation inside the atomic unit.  The unit
// is rolled back entirely; no row is inserted.
var ErrRoomUnavailable = errors.New("room is not available for the requested dates")

// ErrIllegalTransition is returned when a status change is not
// permitted by the booking state machine.
var ErrIllegalTransition = errors.New("illegal status transition")

// ErrCodeExists is returned by stores when an insert collides with an
// existing reservation code.  The engine treats it as retry-with-
// regeneration, never as a fatal error.
var ErrCodeExists = errors.New("reservation code already exists")
