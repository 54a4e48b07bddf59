package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// codeBytes is the amount of randomness behind a reservation code.
// Hex-encoded it yields 20 characters.  At this width collisions are
// not expected in practice; when the database reports one anyway the
// insert is retried with a fresh code.
const codeBytes = 10

// maxCodeRetries bounds the regenerate-on-collision loop inside one
// atomic unit.
const maxCodeRetries = 5

// CreateRequest carries the inputs of a booking request.  Status is
// optional; when empty the reservation is created as Pending.  The
// caller must already hold an authorization decision permitting the
// booking; the engine does not evaluate permissions.
type CreateRequest struct {
	RoomID     uint64
	CustomerID uint64
	CheckIn    model.Date
	CheckOut   model.Date
	Status     string
}

// Engine is the reservation commit engine.  It re-validates the
// availability predicate under an exclusive room lock, persists the
// reservation atomically and hands a notification job to the enqueuer
// after commit.
type Engine struct {
	store Store
	enq   Enqueuer
}

// NewEngine constructs an Engine.  The enqueuer may be nil, in which
// case no notifications are dispatched (useful for administrative
// tooling).
func NewEngine(store Store, enq Enqueuer) *Engine {
	if store == nil {
		panic("nil store passed to NewEngine")
	}
	return &Engine{store: store, enq: enq}
}

// IsOverlapping reports whether any Confirmed reservation for the room
// intersects the half-open range [checkIn, checkOut).  Touching
// intervals do not overlap.  Pure read; callers must have validated
// checkIn < checkOut and are responsible for room existence.
func (e *Engine) IsOverlapping(ctx context.Context, roomID uint64, checkIn, checkOut model.Date) (bool, error) {
	return e.store.IsOverlapping(ctx, roomID, checkIn, checkOut)
}

// CreateReservation admits and persists a booking request.
//
// The order of operations is the crux of correctness: the room row is
// locked first, the overlap predicate is evaluated against the locked
// snapshot, and the insert happens before the lock is released.  Two
// concurrent requests for overlapping ranges on the same room are
// serialized by the lock; at most one observes "available".
//
// On success the created reservation is returned and a notification
// job is enqueued.  Enqueue failures are logged and never surfaced:
// the reservation has already committed and must not be reported as
// failed.
func (e *Engine) CreateReservation(ctx context.Context, req CreateRequest) (*model.Reservation, error) {
	if req.CheckIn.IsZero() || req.CheckOut.IsZero() || !req.CheckOut.After(req.CheckIn) {
		return nil, ErrInvalidDateRange
	}
	status := req.Status
	if status == "" {
		status = model.StatusPending
	}
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	room, err := e.store.RoomByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	customer, err := e.store.CustomerByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	res := &model.Reservation{
		CustomerID: customer.ID,
		RoomID:     room.ID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Status:     status,
	}

	err = e.store.WithRoomLock(ctx, room.ID, func(tx Tx) error {
		conflict, err := tx.HasOverlap(ctx, room.ID, req.CheckIn, req.CheckOut)
		if err != nil {
			return err
		}
		if conflict {
			return ErrRoomUnavailable
		}
		for attempt := 0; ; attempt++ {
			res.Code, err = newReservationCode()
			if err != nil {
				return err
			}
			err = tx.InsertReservation(ctx, res)
			if err == nil {
				break
			}
			if !errors.Is(err, ErrCodeExists) || attempt+1 >= maxCodeRetries {
				return err
			}
		}
		if status == model.StatusConfirmed {
			return tx.SetRoomAvailability(ctx, room.ID, false)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit only.  A rolled-back unit never reaches this point.
	if e.enq != nil {
		job := buildNotification(ctx, e.store, res, room, customer)
		if err := e.enq.Enqueue(ctx, job); err != nil {
			log.Printf("booking: enqueue notification for reservation %s failed: %v", res.Code, err)
		}
	}
	return res, nil
}

// StatusChange carries an administrative status transition.  Room and
// dates come from the reservation row the caller has already loaded;
// the engine re-reads the current status under the room lock before
// acting on it.
type StatusChange struct {
	ReservationID uint64
	RoomID        uint64
	CheckIn       model.Date
	CheckOut      model.Date
	NewStatus     string
}

// ChangeStatus applies an administrative status transition inside the
// same locked atomic unit used for creation.  Transition legality
// follows the booking state machine, and a move to Confirmed re-runs
// the overlap predicate under the room lock, so every path that can
// produce a Confirmed row enforces the non-overlap invariant.  The
// room's advisory flag follows the new status.
func (e *Engine) ChangeStatus(ctx context.Context, req StatusChange) error {
	if !model.ValidStatus(req.NewStatus) {
		return ErrInvalidStatus
	}
	return e.store.WithRoomLock(ctx, req.RoomID, func(tx Tx) error {
		current, err := tx.ReservationStatus(ctx, req.ReservationID)
		if err != nil {
			return err
		}
		if !model.CanTransition(current, req.NewStatus) {
			return ErrIllegalTransition
		}
		if req.NewStatus == model.StatusConfirmed {
			conflict, err := tx.HasOverlap(ctx, req.RoomID, req.CheckIn, req.CheckOut)
			if err != nil {
				return err
			}
			if conflict {
				return ErrRoomUnavailable
			}
		}
		if err := tx.UpdateReservationStatus(ctx, req.ReservationID, req.NewStatus); err != nil {
			return err
		}
		return tx.SetRoomAvailability(ctx, req.RoomID, req.NewStatus != model.StatusConfirmed)
	})
}

// newReservationCode returns codeBytes of cryptographically strong
// randomness, hex-encoded.
func newReservationCode() (string, error) {
	b := make([]byte, codeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
