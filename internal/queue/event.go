// Package queue defines message payloads exchanged over the message broker.
package queue

// NotificationJob is published after a reservation commits and carries
// everything the delivery worker needs to send the email without
// querying the primary database.  The sender address is the hotel's
// contact email; recipients are the customer addresses.
type NotificationJob struct {
	ReservationID   uint64   `json:"reservation_id"`
	ReservationCode string   `json:"reservation_code"`
	Subject         string   `json:"subject"`
	Body            string   `json:"body"`
	From            string   `json:"from"`
	Recipients      []string `json:"recipients"`
	EnqueuedAt      string   `json:"enqueued_at"`
}
