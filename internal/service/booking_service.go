package service

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"eventbuddy/internal/cache"
	"eventbuddy/internal/errors"
	"eventbuddy/internal/model"
	"eventbuddy/internal/queue"
	"eventbuddy/internal/repository"
)

// BookingService owns atomic booking creation and capacity/duplicate
// enforcement. Callers are expected to have authenticated the user; the
// email passed in is trusted.
type BookingService interface {
	BookEvent(ctx context.Context, userEmail, eventName string, seatsBooked int) (*model.Booking, error)
	GetUserBookings(ctx context.Context, userEmail string) ([]model.Booking, error)
}

type bookingService struct {
	userRepo    repository.UserRepository
	bookingRepo repository.BookingRepository
	cache       *cache.Client
	publisher   queue.Publisher
	now         func() time.Time
}

// NewBookingService creates a new booking service.
func NewBookingService(
	userRepo repository.UserRepository,
	bookingRepo repository.BookingRepository,
	cache *cache.Client,
	publisher queue.Publisher,
) BookingService {
	return &bookingService{
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
		publisher:   publisher,
		now:         time.Now,
	}
}

// BookEvent validates and records a booking. The event row is locked for
// the duration of the transaction, so the capacity check, the duplicate
// check and the insert+increment commit as one serialized unit per
// event. A failed attempt leaves no writes behind.
func (s *bookingService) BookEvent(ctx context.Context, userEmail, eventName string, seatsBooked int) (*model.Booking, error) {
	if seatsBooked < model.MinSeatsPerBooking || seatsBooked > model.MaxSeatsPerBooking {
		return nil, errors.ErrSeatCountOutOfRange
	}

	user, err := s.userRepo.FindByEmail(ctx, userEmail)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	today := s.now().Format(model.DateLayout)
	var booking *model.Booking

	err = s.bookingRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.BookingRepository) error {
		// Lock the event row. Everything below happens under the lock.
		event, err := txRepo.FindEventByNameForUpdate(ctx, eventName)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrEventNotFound
			}
			return err
		}

		if event.Date < today {
			return errors.ErrEventAlreadyOccurred
		}

		if event.TotalBooked+seatsBooked > event.TotalCapacity {
			return errors.ErrCapacityExceeded
		}

		if _, err := txRepo.FindByUserAndEvent(ctx, user.ID, event.ID); err == nil {
			return errors.ErrDuplicateBooking
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		booking = &model.Booking{
			UserID:      user.ID,
			EventID:     event.ID,
			UserEmail:   user.Email,
			EventName:   event.EventName,
			SeatsBooked: seatsBooked,
		}
		if err := txRepo.Create(ctx, booking); err != nil {
			// The unique (user_id, event_id) index is the backstop for
			// inserts that slipped past the pre-check.
			if repository.IsDuplicateKey(err) {
				return errors.ErrDuplicateBooking
			}
			return err
		}

		if err := txRepo.IncrementBooked(ctx, event.ID, seatsBooked); err != nil {
			return err
		}
		booking.Event = *event
		booking.Event.TotalBooked += seatsBooked
		return nil
	})
	if err != nil {
		if repository.IsTransient(err) {
			return nil, errors.ErrTransientStore
		}
		return nil, err
	}

	// Cached listings now carry a stale counter.
	_ = s.cache.Delete(ctx, eventCacheKey(eventName), eventsUpcomingKey, eventsPastKey, eventsAllKey)

	if s.publisher != nil {
		evt := queue.BookingConfirmedEvent{
			BookingID:   booking.ID,
			UserID:      booking.UserID,
			UserEmail:   booking.UserEmail,
			EventID:     booking.EventID,
			EventName:   booking.EventName,
			SeatsBooked: booking.SeatsBooked,
			BookedAt:    booking.BookedAt.UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.publisher.PublishBookingConfirmed(pubCtx, evt); err != nil {
				log.Printf("publish booking confirmed: %v", err)
			}
		}()
	}

	return booking, nil
}

// GetUserBookings returns all bookings owned by the user, each carrying
// its event snapshot, most recent first.
func (s *bookingService) GetUserBookings(ctx context.Context, userEmail string) ([]model.Booking, error) {
	user, err := s.userRepo.FindByEmail(ctx, userEmail)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return s.bookingRepo.ListByUser(ctx, user.ID)
}
