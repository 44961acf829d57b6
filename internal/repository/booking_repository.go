package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eventbuddy/internal/model"
)

// BookingRepository defines persistence operations for the booking ledger.
// The ForUpdate/Create/IncrementBooked trio is only meaningful inside
// WithTransaction: the row lock taken by FindEventByNameForUpdate is what
// serializes concurrent bookings against the same event.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*model.Booking, error)
	FindEventByNameForUpdate(ctx context.Context, name string) (*model.Event, error)
	IncrementBooked(ctx context.Context, eventID uint, seats int) error
	ListByUser(ctx context.Context, userID uint) ([]model.Booking, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BookingRepository) error) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository builds a GORM-backed repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindEventByNameForUpdate fetches the event row under an exclusive
// row-level lock (SELECT ... FOR UPDATE). Concurrent transactions
// locking the same event block until this one commits or rolls back;
// bookings against different events do not contend.
func (r *bookingRepository) FindEventByNameForUpdate(ctx context.Context, name string) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_name = ?", name).
		First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// IncrementBooked bumps the running counter in place. Called only from
// the booking transaction while the event row lock is held.
func (r *bookingRepository) IncrementBooked(ctx context.Context, eventID uint, seats int) error {
	return r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ?", eventID).
		Update("total_booked", gorm.Expr("total_booked + ?", seats)).Error
}

// ListByUser returns the user's bookings with their event snapshots,
// newest first.
func (r *bookingRepository) ListByUser(ctx context.Context, userID uint) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("booked_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// WithTransaction executes a function within a database transaction.
// A rolled-back transaction leaves no partial writes behind.
func (r *bookingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BookingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &bookingRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
