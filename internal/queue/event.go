// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking commits. It carries
// enough information for downstream consumers (notifications, analytics)
// without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   uint   `json:"booking_id"`
	UserID      uint   `json:"user_id"`
	UserEmail   string `json:"user_email"`
	EventID     uint   `json:"event_id"`
	EventName   string `json:"event_name"`
	SeatsBooked int    `json:"seats_booked"`
	BookedAt    string `json:"booked_at"`
}
