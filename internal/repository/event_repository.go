package repository

import (
	"context"

	"gorm.io/gorm"

	"eventbuddy/internal/model"
)

// EventRepository defines persistence operations for event listings.
// Nothing here touches total_booked: that column belongs to the booking
// transaction alone.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	UpdateDetails(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id uint) (int64, error)
	FindByID(ctx context.Context, id uint) (*model.Event, error)
	FindByName(ctx context.Context, name string) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	ListUpcoming(ctx context.Context, today string) ([]model.Event, error)
	ListPast(ctx context.Context, today string) ([]model.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository builds a GORM-backed repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// UpdateDetails persists administrative edits. The column list is
// explicit so this path can never write total_booked.
func (r *eventRepository) UpdateDetails(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ?", event.ID).
		Select("event_name", "location", "date", "time", "description", "total_capacity").
		Updates(event).Error
}

// Delete removes an event and, through the FK constraint, its bookings.
func (r *eventRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Event{}, id)
	return res.RowsAffected, res.Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByName(ctx context.Context, name string) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).Where("event_name = ?", name).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := r.db.WithContext(ctx).Order("date ASC, time ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListUpcoming returns events dated after today, soonest first.
func (r *eventRepository) ListUpcoming(ctx context.Context, today string) ([]model.Event, error) {
	var events []model.Event
	if err := r.db.WithContext(ctx).
		Where("date > ?", today).
		Order("date ASC, time ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListPast returns events dated before today, most recent first.
func (r *eventRepository) ListPast(ctx context.Context, today string) ([]model.Event, error) {
	var events []model.Event
	if err := r.db.WithContext(ctx).
		Where("date < ?", today).
		Order("date DESC, time DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
