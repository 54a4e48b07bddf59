package model

import "time"

// Employer links a user account to the hotel where they work, one row
// in the `employers` table.  Employers see reservations for their
// hotel only; IsAdminStaff additionally grants write access to hotel
// and room records.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – owning user account.
//  HotelID      – hotel where this employer works.
//  JobTitle     – optional free-text role description.
//  IsAdminStaff – whether the employer may manage hotel resources.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Employer struct {
	ID           uint64    `json:"id"`             // employers.id
	UserID       uint64    `json:"user_id"`        // employers.user_id
	HotelID      uint64    `json:"hotel_id"`       // employers.hotel_id
	JobTitle     string    `json:"job_title"`      // employers.job_title
	IsAdminStaff bool      `json:"is_admin_staff"` // employers.is_admin_staff
	CreatedAt    time.Time `json:"created_at"`     // employers.created_at
	UpdatedAt    time.Time `json:"updated_at"`     // employers.updated_at
}
