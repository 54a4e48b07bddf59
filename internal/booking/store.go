package booking

import (
	"context"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/queue"
)

// Store is the persistence contract consumed by the Engine.  The SQL
// implementation lives in internal/repository; an in-memory
// implementation in internal/storage/memory backs the tests.
type Store interface {
	// RoomByID returns the room or ErrRoomNotFound.
	RoomByID(ctx context.Context, id uint64) (model.Room, error)
	// HotelByID returns the hotel owning a room; used for notification
	// content after commit.
	HotelByID(ctx context.Context, id uint64) (model.Hotel, error)
	// CustomerByID returns the customer (with joined contact details)
	// or ErrCustomerNotFound.
	CustomerByID(ctx context.Context, id uint64) (model.Customer, error)

	// IsOverlapping reports whether any Confirmed reservation for the
	// room intersects [checkIn, checkOut).  Pure read, no locks; used
	// for quick feedback outside the commit path.
	IsOverlapping(ctx context.Context, roomID uint64, checkIn, checkOut model.Date) (bool, error)

	// WithRoomLock runs fn inside a single atomic unit holding an
	// exclusive lock on the room row.  The unit commits when fn
	// returns nil and rolls back entirely otherwise.  Two concurrent
	// calls for the same room are serialized; calls for different
	// rooms are independent.
	WithRoomLock(ctx context.Context, roomID uint64, fn func(tx Tx) error) error
}

// Tx is the view of the store available inside WithRoomLock.  All
// reads observe the locked snapshot and all writes belong to the same
// atomic unit.
type Tx interface {
	// HasOverlap evaluates the admission predicate against the locked
	// snapshot: any Confirmed reservation for the room with
	// existing.check_in < checkOut AND existing.check_out > checkIn.
	HasOverlap(ctx context.Context, roomID uint64, checkIn, checkOut model.Date) (bool, error)
	// InsertReservation persists the reservation and fills in its ID.
	// Returns ErrCodeExists when the code collides with an existing
	// row.
	InsertReservation(ctx context.Context, res *model.Reservation) error
	// ReservationStatus returns the current booking status of a
	// reservation, locking its row, or ErrReservationNotFound.
	ReservationStatus(ctx context.Context, id uint64) (string, error)
	// UpdateReservationStatus changes the booking status of a
	// reservation within the atomic unit.
	UpdateReservationStatus(ctx context.Context, id uint64, status string) error
	// SetRoomAvailability refreshes the room's advisory flag.
	SetRoomAvailability(ctx context.Context, roomID uint64, available bool) error
}

// Enqueuer hands notification jobs to an asynchronous delivery
// collaborator after the atomic unit has committed.  Implementations
// must be safe for concurrent use.  Delivery is at-least-once with
// bounded retries on the consumer side; enqueue failures are logged by
// the engine and never propagate back to the creation call path.
type Enqueuer interface {
	Enqueue(ctx context.Context, job queue.NotificationJob) error
}
