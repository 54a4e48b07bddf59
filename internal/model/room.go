package model

import (
	"fmt"
	"time"
)

// Room represents a bookable room inside a hotel, one row in the
// `rooms` table.
//
// The IsAvailable flag is a denormalized cache only.  Real availability
// for a date range is always recomputed from the set of Confirmed
// reservations; the flag is refreshed on confirm/destroy but is never
// the source of truth for admission decisions.
//
// Fields:
//  ID          – primary key identifier.
//  HotelID     – hotel to which this room belongs.
//  Number      – room number within the hotel.
//  Complement  – optional free-text qualifier ("sea view", "annex B").
//  IsAvailable – advisory availability flag.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Room struct {
	ID          uint64    `json:"id"`           // rooms.id
	HotelID     uint64    `json:"hotel_id"`     // rooms.hotel_id
	Number      int       `json:"number"`       // rooms.number
	Complement  string    `json:"complement"`   // rooms.complement
	IsAvailable bool      `json:"is_available"` // rooms.is_available
	CreatedAt   time.Time `json:"created_at"`   // rooms.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // rooms.updated_at
}

// Alias returns a human-readable room reference of the form used in
// notification bodies, e.g. "Room 101 sea view".
func (r Room) Alias() string {
	if r.Complement == "" {
		return fmt.Sprintf("Room %d", r.Number)
	}
	return fmt.Sprintf("Room %d %s", r.Number, r.Complement)
}
