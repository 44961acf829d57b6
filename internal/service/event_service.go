package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"eventbuddy/internal/cache"
	"eventbuddy/internal/errors"
	"eventbuddy/internal/model"
	"eventbuddy/internal/repository"
)

const eventCacheTTL = 1 * time.Minute

const (
	eventsUpcomingKey = "events:upcoming"
	eventsPastKey     = "events:past"
	eventsAllKey      = "events:all"
)

func eventCacheKey(name string) string {
	return fmt.Sprintf("event:%s", name)
}

// UpdateEventInput carries administrative edits. Nil fields are left
// unchanged. There is deliberately no booked-counter field here: only
// the booking transaction writes it.
type UpdateEventInput struct {
	EventName     *string
	Location      *string
	Date          *string
	Time          *string
	Description   *string
	TotalCapacity *int
}

// EventService handles catalog operations.
type EventService interface {
	CreateEvent(ctx context.Context, event *model.Event) (*model.Event, error)
	UpdateEvent(ctx context.Context, id uint, input UpdateEventInput) (*model.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	GetAllEvents(ctx context.Context) ([]model.Event, error)
	GetUpcomingEvents(ctx context.Context) ([]model.Event, error)
	GetPastEvents(ctx context.Context) ([]model.Event, error)
	GetEventByName(ctx context.Context, name string) (*model.Event, error)
}

type eventService struct {
	repo  repository.EventRepository
	cache *cache.Client
	now   func() time.Time
}

// NewEventService creates a new event service.
func NewEventService(repo repository.EventRepository, cache *cache.Client) EventService {
	return &eventService{repo: repo, cache: cache, now: time.Now}
}

// CreateEvent validates the date format, enforces name uniqueness and
// persists the listing with a zero booked counter.
func (s *eventService) CreateEvent(ctx context.Context, event *model.Event) (*model.Event, error) {
	if _, err := time.Parse(model.DateLayout, event.Date); err != nil {
		return nil, fmt.Errorf("invalid event date %q: %w", event.Date, err)
	}

	if _, err := s.repo.FindByName(ctx, event.EventName); err == nil {
		return nil, errors.ErrEventNameTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	event.TotalBooked = 0
	if err := s.repo.Create(ctx, event); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, errors.ErrEventNameTaken
		}
		return nil, err
	}

	s.invalidateListings(ctx, event.EventName)
	return event, nil
}

// UpdateEvent applies administrative edits to an existing event. The
// booked counter is untouched whatever the input contains.
func (s *eventService) UpdateEvent(ctx context.Context, id uint, input UpdateEventInput) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrEventNotFound
		}
		return nil, err
	}

	oldName := event.EventName
	if input.EventName != nil {
		event.EventName = *input.EventName
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.Date != nil {
		if _, err := time.Parse(model.DateLayout, *input.Date); err != nil {
			return nil, fmt.Errorf("invalid event date %q: %w", *input.Date, err)
		}
		event.Date = *input.Date
	}
	if input.Time != nil {
		event.Time = *input.Time
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.TotalCapacity != nil {
		if *input.TotalCapacity < event.TotalBooked {
			return nil, errors.ErrCapacityBelowBooked
		}
		event.TotalCapacity = *input.TotalCapacity
	}

	if err := s.repo.UpdateDetails(ctx, event); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, errors.ErrEventNameTaken
		}
		return nil, err
	}

	s.invalidateListings(ctx, oldName, event.EventName)
	return event, nil
}

// DeleteEvent removes an event; its bookings go with it via the FK cascade.
func (s *eventService) DeleteEvent(ctx context.Context, id uint) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrEventNotFound
		}
		return err
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrEventNotFound
	}

	s.invalidateListings(ctx, event.EventName)
	return nil
}

func (s *eventService) GetAllEvents(ctx context.Context) ([]model.Event, error) {
	return s.listCached(ctx, eventsAllKey, func(ctx context.Context) ([]model.Event, error) {
		return s.repo.List(ctx)
	})
}

func (s *eventService) GetUpcomingEvents(ctx context.Context) ([]model.Event, error) {
	today := s.now().Format(model.DateLayout)
	return s.listCached(ctx, eventsUpcomingKey, func(ctx context.Context) ([]model.Event, error) {
		return s.repo.ListUpcoming(ctx, today)
	})
}

func (s *eventService) GetPastEvents(ctx context.Context) ([]model.Event, error) {
	today := s.now().Format(model.DateLayout)
	return s.listCached(ctx, eventsPastKey, func(ctx context.Context) ([]model.Event, error) {
		return s.repo.ListPast(ctx, today)
	})
}

// GetEventByName retrieves an event by its unique name with caching.
func (s *eventService) GetEventByName(ctx context.Context, name string) (*model.Event, error) {
	key := eventCacheKey(name)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached model.Event
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrEventNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(event); err == nil {
		_ = s.cache.Set(ctx, key, payload, eventCacheTTL)
	}
	return event, nil
}

func (s *eventService) listCached(ctx context.Context, key string, fetch func(ctx context.Context) ([]model.Event, error)) ([]model.Event, error) {
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.Event
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	events, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(events); err == nil {
		_ = s.cache.Set(ctx, key, payload, eventCacheTTL)
	}
	return events, nil
}

func (s *eventService) invalidateListings(ctx context.Context, names ...string) {
	keys := []string{eventsUpcomingKey, eventsPastKey, eventsAllKey}
	for _, n := range names {
		keys = append(keys, eventCacheKey(n))
	}
	_ = s.cache.Delete(ctx, keys...)
}
