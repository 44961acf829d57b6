package model

import "time"

// Seat count bounds enforced by the booking ledger.
const (
	MinSeatsPerBooking = 1
	MaxSeatsPerBooking = 4
)

// Booking records a user reserving seats at one event. UserEmail and
// EventName are write-once snapshots captured at commit time for fast
// lookup and reporting; they are never re-synced from the live rows.
// The composite unique index closes the duplicate-booking race at the
// store level in addition to the in-transaction pre-check.
type Booking struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_booking_user_event"`
	EventID     uint      `json:"event_id" gorm:"not null;uniqueIndex:idx_booking_user_event"`
	UserEmail   string    `json:"user_email" gorm:"size:255;not null;index"`
	EventName   string    `json:"event_name" gorm:"size:255;not null;index"`
	SeatsBooked int       `json:"seats_booked" gorm:"not null"`
	BookedAt    time.Time `json:"booked_at" gorm:"autoCreateTime"`

	// Relations
	User  User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Event Event `json:"event" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}
