package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// BookingStore adapts the SQL repositories to the booking.Store
// contract.  WithRoomLock opens one transaction, takes the exclusive
// room row lock and hands the engine a Tx view whose reads observe the
// locked snapshot; the unit commits only when the callback succeeds.
type BookingStore struct {
	db           *sql.DB
	hotels       *HotelRepo
	rooms        *RoomRepo
	customers    *CustomerRepo
	reservations *ReservationRepo
}

// NewBookingStore wires the repositories behind a booking.Store.
func NewBookingStore(db *sql.DB, hotels *HotelRepo, rooms *RoomRepo, customers *CustomerRepo, reservations *ReservationRepo) *BookingStore {
	if db == nil || hotels == nil || rooms == nil || customers == nil || reservations == nil {
		panic("nil dependency passed to NewBookingStore")
	}
	return &BookingStore{db: db, hotels: hotels, rooms: rooms, customers: customers, reservations: reservations}
}

// RoomByID implements booking.Store.
func (s *BookingStore) RoomByID(ctx context.Context, id uint64) (model.Room, error) {
	rm, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return model.Room{}, booking.ErrRoomNotFound
		}
		return model.Room{}, err
	}
	return *rm, nil
}

// HotelByID implements booking.Store.
func (s *BookingStore) HotelByID(ctx context.Context, id uint64) (model.Hotel, error) {
	h, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return model.Hotel{}, err
	}
	return *h, nil
}

// CustomerByID implements booking.Store.
func (s *BookingStore) CustomerByID(ctx context.Context, id uint64) (model.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return model.Customer{}, booking.ErrCustomerNotFound
		}
		return model.Customer{}, err
	}
	return *c, nil
}

// IsOverlapping implements booking.Store.
func (s *BookingStore) IsOverlapping(ctx context.Context, roomID uint64, checkIn, checkOut model.Date) (bool, error) {
	return s.reservations.IsOverlapping(ctx, roomID, checkIn, checkOut)
}

// WithRoomLock implements booking.Store.
func (s *BookingStore) WithRoomLock(ctx context.Context, roomID uint64, fn func(tx booking.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.rooms.LockTx(ctx, tx, roomID); err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return booking.ErrRoomNotFound
		}
		return err
	}
	if err := fn(&sqlTx{store: s, tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// sqlTx is the booking.Tx view over one open transaction.
type sqlTx struct {
	store *BookingStore
	tx    *sql.Tx
}

func (t *sqlTx) HasOverlap(ctx context.Context, roomID uint64, checkIn, checkOut model.Date) (bool, error) {
	return t.store.reservations.HasOverlapTx(ctx, t.tx, roomID, checkIn, checkOut)
}

func (t *sqlTx) InsertReservation(ctx context.Context, res *model.Reservation) error {
	return t.store.reservations.CreateTx(ctx, t.tx, res)
}

func (t *sqlTx) ReservationStatus(ctx context.Context, id uint64) (string, error) {
	status, err := t.store.reservations.StatusForUpdateTx(ctx, t.tx, id)
	if errors.Is(err, ErrReservationNotFound) {
		return "", booking.ErrReservationNotFound
	}
	return status, err
}

func (t *sqlTx) UpdateReservationStatus(ctx context.Context, id uint64, status string) error {
	err := t.store.reservations.UpdateStatusTx(ctx, t.tx, id, status)
	if errors.Is(err, ErrReservationNotFound) {
		return booking.ErrReservationNotFound
	}
	return err
}

func (t *sqlTx) SetRoomAvailability(ctx context.Context, roomID uint64, available bool) error {
	return t.store.rooms.SetAvailabilityTx(ctx, t.tx, roomID, available)
}
