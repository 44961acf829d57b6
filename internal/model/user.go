package model

import "time"

// Role values stored on User records and carried in JWT claims.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. Admins and regular users share
// the same table and login flow; the role column tells them apart.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FullName     string    `json:"full_name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;not null;default:'user';index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Bookings []Booking `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
