package model

import (
	"encoding/json"
	"time"
)

// Customer links a user account to a guest profile, one row in the
// `customers` table.  Contact details live on the user record; the
// Name and Email fields are denormalized into query results by the
// repository for notification content.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owning user account.
//  Preferences – optional free-form JSON blob of guest preferences.
//  Name        – display name copied from the joined user row.
//  Email       – contact email copied from the joined user row.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Customer struct {
	ID          uint64          `json:"id"`                    // customers.id
	UserID      uint64          `json:"user_id"`               // customers.user_id
	Preferences json.RawMessage `json:"preferences,omitempty"` // customers.preferences (nullable JSON)
	Name        string          `json:"name"`                  // users.name (joined)
	Email       string          `json:"email"`                 // users.email (joined)
	CreatedAt   time.Time       `json:"created_at"`            // customers.created_at
	UpdatedAt   time.Time       `json:"updated_at"`            // customers.updated_at
}
