// Package memory provides an in-memory implementation of the booking
// store.  It backs the engine tests and local development without a
// MySQL instance.  Per-room mutexes give the same serialization
// guarantee the SQL store gets from SELECT ... FOR UPDATE: concurrent
// atomic units for one room run one at a time, units for different
// rooms run independently.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

var errHotelNotFound = errors.New("hotel not found")

// Store keeps all entities in maps guarded by a store-wide mutex.
// Room locks are separate so that holding one does not block readers
// of unrelated rooms.
type Store struct {
	mu           sync.Mutex
	hotels       map[uint64]model.Hotel
	rooms        map[uint64]model.Room
	customers    map[uint64]model.Customer
	reservations map[uint64]model.Reservation
	codes        map[string]struct{}
	nextID       uint64

	roomMu sync.Mutex
	locks  map[uint64]*sync.Mutex
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		hotels:       make(map[uint64]model.Hotel),
		rooms:        make(map[uint64]model.Room),
		customers:    make(map[uint64]model.Customer),
		reservations: make(map[uint64]model.Reservation),
		codes:        make(map[string]struct{}),
		locks:        make(map[uint64]*sync.Mutex),
	}
}

// AddHotel stores a hotel, assigning an ID when missing.
func (s *Store) AddHotel(h model.Hotel) model.Hotel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.ID == 0 {
		s.nextID++
		h.ID = s.nextID
	}
	s.hotels[h.ID] = h
	return h
}

// AddRoom stores a room, assigning an ID when missing.
func (s *Store) AddRoom(r model.Room) model.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		s.nextID++
		r.ID = s.nextID
	}
	s.rooms[r.ID] = r
	return r
}

// AddCustomer stores a customer, assigning an ID when missing.
func (s *Store) AddCustomer(c model.Customer) model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		s.nextID++
		c.ID = s.nextID
	}
	s.customers[c.ID] = c
	return c
}

// Reservations returns a snapshot of all stored reservations.
func (s *Store) Reservations() []model.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		out = append(out, r)
	}
	return out
}

// RoomByID implements booking.Store.
func (s *Store) RoomByID(_ context.Context, id uint64) (model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return model.Room{}, booking.ErrRoomNotFound
	}
	return r, nil
}

// HotelByID implements booking.Store.
func (s *Store) HotelByID(_ context.Context, id uint64) (model.Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hotels[id]
	if !ok {
		return model.Hotel{}, errHotelNotFound
	}
	return h, nil
}

// CustomerByID implements booking.Store.
func (s *Store) CustomerByID(_ context.Context, id uint64) (model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return model.Customer{}, booking.ErrCustomerNotFound
	}
	return c, nil
}

// IsOverlapping implements booking.Store.
func (s *Store) IsOverlapping(_ context.Context, roomID uint64, checkIn, checkOut model.Date) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasOverlapLocked(roomID, checkIn, checkOut), nil
}

func (s *Store) hasOverlapLocked(roomID uint64, checkIn, checkOut model.Date) bool {
	for _, r := range s.reservations {
		if r.RoomID == roomID && r.Status == model.StatusConfirmed && r.Overlaps(checkIn, checkOut) {
			return true
		}
	}
	return false
}

// roomLock returns the mutex serializing atomic units for one room,
// creating it on first use.
func (s *Store) roomLock(roomID uint64) *sync.Mutex {
	s.roomMu.Lock()
	defer s.roomMu.Unlock()
	l, ok := s.locks[roomID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[roomID] = l
	}
	return l
}

// WithRoomLock implements booking.Store.  Writes made through the Tx
// are buffered and applied only when fn returns nil, mirroring
// commit/rollback semantics.
func (s *Store) WithRoomLock(ctx context.Context, roomID uint64, fn func(tx booking.Tx) error) error {
	l := s.roomLock(roomID)
	l.Lock()
	defer l.Unlock()

	tx := &memTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range tx.inserted {
		res := tx.inserted[i]
		s.nextID++
		res.ID = s.nextID
		s.reservations[res.ID] = res
		s.codes[res.Code] = struct{}{}
		if tx.insertTargets[i] != nil {
			tx.insertTargets[i].ID = res.ID
		}
	}
	for id, status := range tx.statusChanges {
		if r, ok := s.reservations[id]; ok {
			r.Status = status
			s.reservations[id] = r
		}
	}
	for roomID, avail := range tx.roomFlags {
		if r, ok := s.rooms[roomID]; ok {
			r.IsAvailable = avail
			s.rooms[roomID] = r
		}
	}
	return nil
}

// memTx buffers writes until the surrounding unit commits.
type memTx struct {
	store         *Store
	inserted      []model.Reservation
	insertTargets []*model.Reservation
	statusChanges map[uint64]string
	roomFlags     map[uint64]bool
}

func (t *memTx) HasOverlap(_ context.Context, roomID uint64, checkIn, checkOut model.Date) (bool, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.store.hasOverlapLocked(roomID, checkIn, checkOut) {
		return true, nil
	}
	// Include rows inserted earlier in this unit.
	for _, r := range t.inserted {
		if r.RoomID == roomID && r.Status == model.StatusConfirmed && r.Overlaps(checkIn, checkOut) {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) InsertReservation(_ context.Context, res *model.Reservation) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, exists := t.store.codes[res.Code]; exists {
		return booking.ErrCodeExists
	}
	for _, r := range t.inserted {
		if r.Code == res.Code {
			return booking.ErrCodeExists
		}
	}
	t.inserted = append(t.inserted, *res)
	t.insertTargets = append(t.insertTargets, res)
	return nil
}

func (t *memTx) ReservationStatus(_ context.Context, id uint64) (string, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	r, ok := t.store.reservations[id]
	if !ok {
		return "", booking.ErrReservationNotFound
	}
	return r.Status, nil
}

func (t *memTx) UpdateReservationStatus(_ context.Context, id uint64, status string) error {
	t.store.mu.Lock()
	_, ok := t.store.reservations[id]
	t.store.mu.Unlock()
	if !ok {
		return booking.ErrReservationNotFound
	}
	if t.statusChanges == nil {
		t.statusChanges = make(map[uint64]string)
	}
	t.statusChanges[id] = status
	return nil
}

func (t *memTx) SetRoomAvailability(_ context.Context, roomID uint64, available bool) error {
	if t.roomFlags == nil {
		t.roomFlags = make(map[uint64]bool)
	}
	t.roomFlags[roomID] = available
	return nil
}
