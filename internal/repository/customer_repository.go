package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ErrCustomerNotFound is returned when a customer cannot be found.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepo encapsulates database queries for customer profiles.
// Contact details (name, email) live on the joined user row and are
// denormalized into query results.
type CustomerRepo struct {
	db *sql.DB
}

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// Create inserts a customer profile for a user.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO customers (user_id, preferences) VALUES (?, ?)",
		c.UserID, nullableJSON(c.Preferences))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

const customerSelect = `SELECT c.id, c.user_id, c.preferences, u.name, u.email, c.created_at, c.updated_at
                        FROM customers c JOIN users u ON u.id = c.user_id`

// GetByID fetches a customer with joined contact details.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	return r.getOne(ctx, customerSelect+" WHERE c.id = ?", id)
}

// GetByUserID fetches the customer profile owned by a user account.
func (r *CustomerRepo) GetByUserID(ctx context.Context, userID uint64) (*model.Customer, error) {
	return r.getOne(ctx, customerSelect+" WHERE c.user_id = ?", userID)
}

func (r *CustomerRepo) getOne(ctx context.Context, q string, arg uint64) (*model.Customer, error) {
	var (
		c     model.Customer
		prefs sql.NullString
	)
	if err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&c.ID, &c.UserID, &prefs, &c.Name, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if prefs.Valid {
		c.Preferences = []byte(prefs.String)
	}
	return &c, nil
}

// List returns all customers ordered by id.
func (r *CustomerRepo) List(ctx context.Context) ([]*model.Customer, error) {
	rows, err := r.db.QueryContext(ctx, customerSelect+" ORDER BY c.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Customer, 0)
	for rows.Next() {
		var (
			c     model.Customer
			prefs sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.UserID, &prefs, &c.Name, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if prefs.Valid {
			c.Preferences = []byte(prefs.String)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// UpdatePreferences replaces the preferences blob of a customer.
func (r *CustomerRepo) UpdatePreferences(ctx context.Context, id uint64, prefs []byte) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE customers SET preferences = ? WHERE id = ?", nullableJSON(prefs), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// Delete removes a customer profile.  Profiles with reservations are
// protected by the FK constraint.
func (r *CustomerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM customers WHERE id = ?", id)
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
		return ErrCustomerNotFound
	}
	return nil
}

// nullableJSON maps an empty blob to SQL NULL.
func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
