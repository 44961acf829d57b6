package model

import "time"

// DateLayout is the wire and storage format for event dates. Dates are
// kept as plain YYYY-MM-DD strings so that "is this event in the past"
// is a lexical comparison against today, with no time zone involved.
const DateLayout = "2006-01-02"

// Event represents a bookable event listing. TotalBooked is a running
// counter maintained exclusively by the booking transaction; the admin
// update path never writes it.
type Event struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	EventName     string    `json:"event_name" gorm:"uniqueIndex;size:255;not null"`
	Location      string    `json:"location" gorm:"size:255;not null"`
	Date          string    `json:"date" gorm:"type:varchar(10);not null;index"`
	Time          string    `json:"time" gorm:"type:varchar(8);not null"`
	Description   string    `json:"description,omitempty" gorm:"type:text"`
	TotalCapacity int       `json:"total_capacity" gorm:"not null"`
	TotalBooked   int       `json:"total_booked" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Bookings []Booking `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// SeatsLeft returns the number of seats still available.
func (e *Event) SeatsLeft() int {
	return e.TotalCapacity - e.TotalBooked
}
