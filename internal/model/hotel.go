package model

import "time"

// Hotel represents a property that owns rooms and employs staff.  This
// struct corresponds to a row in the `hotels` table.  The hotel email
// is used as the sender address for reservation notifications.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – hotel display name.
//  Email     – unique contact/sender email address.
//  Phone     – contact phone number.
//  Address   – postal address.
//  CreatedAt – timestamp when the hotel was created.
//  UpdatedAt – timestamp of last update.
type Hotel struct {
	ID        uint64    `json:"id"`         // hotels.id
	Name      string    `json:"name"`       // hotels.name
	Email     string    `json:"email"`      // hotels.email
	Phone     string    `json:"phone"`      // hotels.phone
	Address   string    `json:"address"`    // hotels.address
	CreatedAt time.Time `json:"created_at"` // hotels.created_at
	UpdatedAt time.Time `json:"updated_at"` // hotels.updated_at
}
