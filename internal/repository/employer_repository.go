package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ErrEmployerNotFound is returned when an employer cannot be found.
var ErrEmployerNotFound = errors.New("employer not found")

// EmployerRepo encapsulates database queries for hotel staff records.
type EmployerRepo struct {
	db *sql.DB
}

func NewEmployerRepo(db *sql.DB) *EmployerRepo { return &EmployerRepo{db: db} }

// Create links a user account to a hotel as staff.
func (r *EmployerRepo) Create(ctx context.Context, e *model.Employer) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO employers (user_id, hotel_id, job_title, is_admin_staff) VALUES (?, ?, ?, ?)",
		e.UserID, e.HotelID, e.JobTitle, e.IsAdminStaff)
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
	e.ID = uint64(id)
	return nil
}

const employerSelect = `SELECT id, user_id, hotel_id, job_title, is_admin_staff, created_at, updated_at
                        FROM employers`

// GetByID fetches an employer by id.
func (r *EmployerRepo) GetByID(ctx context.Context, id uint64) (*model.Employer, error) {
	return r.getOne(ctx, employerSelect+" WHERE id = ?", id)
}

// GetByUserID fetches the employer record owned by a user account.
func (r *EmployerRepo) GetByUserID(ctx context.Context, userID uint64) (*model.Employer, error) {
	return r.getOne(ctx, employerSelect+" WHERE user_id = ? LIMIT 1", userID)
}

func (r *EmployerRepo) getOne(ctx context.Context, q string, arg uint64) (*model.Employer, error) {
	var e model.Employer
	if err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&e.ID, &e.UserID, &e.HotelID, &e.JobTitle, &e.IsAdminStaff, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmployerNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListByHotel returns all employers of a hotel ordered by id.
func (r *EmployerRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]*model.Employer, error) {
	rows, err := r.db.QueryContext(ctx, employerSelect+" WHERE hotel_id = ? ORDER BY id", hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Employer, 0)
	for rows.Next() {
		var e model.Employer
		if err := rows.Scan(&e.ID, &e.UserID, &e.HotelID, &e.JobTitle, &e.IsAdminStaff, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Update modifies job title and admin flag of an employer.
func (r *EmployerRepo) Update(ctx context.Context, e *model.Employer) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE employers SET job_title = ?, is_admin_staff = ? WHERE id = ?",
		e.JobTitle, e.IsAdminStaff, e.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEmployerNotFound
	}
	return nil
}

// Delete removes an employer record.
func (r *EmployerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM employers WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEmployerNotFound
	}
	return nil
}
