package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ErrHotelNotFound is returned when a hotel cannot be found.
var ErrHotelNotFound = errors.New("hotel not found")

// HotelRepo encapsulates database queries for hotels.
type HotelRepo struct {
	db *sql.DB
}

func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// Create inserts a hotel and populates its ID and timestamps.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	h.Email = strings.ToLower(strings.TrimSpace(h.Email))
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO hotels (name, email, phone, address) VALUES (?, ?, ?, ?)",
		h.Name, h.Email, h.Phone, h.Address)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM hotels WHERE id = ?", h.ID).
		Scan(&h.CreatedAt, &h.UpdatedAt)
}

// GetByID fetches a hotel by its ID.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = "SELECT id, name, email, phone, address, created_at, updated_at FROM hotels WHERE id = ?"
	var h model.Hotel
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&h.ID, &h.Name, &h.Email, &h.Phone, &h.Address, &h.CreatedAt, &h.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &h, nil
}

// List returns all hotels ordered by id.
func (r *HotelRepo) List(ctx context.Context) ([]*model.Hotel, error) {
	const q = "SELECT id, name, email, phone, address, created_at, updated_at FROM hotels ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	hotels := make([]*model.Hotel, 0)
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Email, &h.Phone, &h.Address, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		hotels = append(hotels, &h)
	}
	return hotels, rows.Err()
}

// Update modifies an existing hotel.  Returns ErrHotelNotFound when no
// row matched.
func (r *HotelRepo) Update(ctx context.Context, h *model.Hotel) error {
	h.Email = strings.ToLower(strings.TrimSpace(h.Email))
	res, err := r.db.ExecContext(ctx,
		"UPDATE hotels SET name = ?, email = ?, phone = ?, address = ? WHERE id = ?",
		h.Name, h.Email, h.Phone, h.Address, h.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrHotelNotFound
	}
	return nil
}

// Delete removes a hotel.  Deleting a hotel with rooms that still have
// reservations fails with ErrConflict via the FK constraint.
func (r *HotelRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM hotels WHERE id = ?", id)
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
		return ErrHotelNotFound
	}
	return nil
}
