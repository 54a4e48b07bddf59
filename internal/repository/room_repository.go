package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ErrRoomNotFound is returned when a room cannot be found.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo encapsulates database queries for rooms.
type RoomRepo struct {
	db *sql.DB
}

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// Create inserts a room and populates its ID and timestamps.  New
// rooms start with the advisory flag set to available.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO rooms (hotel_id, number, complement, is_available) VALUES (?, ?, ?, TRUE)",
		rm.HotelID, rm.Number, rm.Complement)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1452") {
			return ErrHotelNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	rm.IsAvailable = true
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM rooms WHERE id = ?", rm.ID).
		Scan(&rm.CreatedAt, &rm.UpdatedAt)
}

// GetByID fetches a room by its ID.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = "SELECT id, hotel_id, number, complement, is_available, created_at, updated_at FROM rooms WHERE id = ?"
	var rm model.Room
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rm.ID, &rm.HotelID, &rm.Number, &rm.Complement, &rm.IsAvailable, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// ListByHotel returns all rooms of a hotel ordered by number.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]*model.Room, error) {
	const q = `SELECT id, hotel_id, number, complement, is_available, created_at, updated_at
               FROM rooms WHERE hotel_id = ? ORDER BY number`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Room, 0)
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.HotelID, &rm.Number, &rm.Complement, &rm.IsAvailable, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &rm)
	}
	return out, rows.Err()
}

// Update modifies number, complement and advisory flag of a room.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE rooms SET number = ?, complement = ?, is_available = ? WHERE id = ?",
		rm.Number, rm.Complement, rm.IsAvailable, rm.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// Delete removes a room.  Rooms with reservations cannot be deleted.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM rooms WHERE id = ?", id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1451") {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// LockTx acquires an exclusive lock on the room row inside the given
// transaction.  The lock is held until the transaction commits or
// rolls back, serializing concurrent admission checks for the room.
func (r *RoomRepo) LockTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	var locked uint64
	err := tx.QueryRowContext(ctx, "SELECT id FROM rooms WHERE id = ? FOR UPDATE", id).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoomNotFound
	}
	return err
}

// SetAvailabilityTx refreshes the advisory is_available flag within a
// transaction.
func (r *RoomRepo) SetAvailabilityTx(ctx context.Context, tx *sql.Tx, id uint64, available bool) error {
	_, err := tx.ExecContext(ctx, "UPDATE rooms SET is_available = ? WHERE id = ?", available, id)
	return err
}
