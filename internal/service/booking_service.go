package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Eursukkul/hbnb-service/internal/availability"
	"github.com/Eursukkul/hbnb-service/internal/models"
	"github.com/Eursukkul/hbnb-service/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventPublisher delivers booking events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey, messageID string, payload any) error
}

type BookingInput struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
	Message  string
}

// PlaceBookings is what a viewer may see of a place's bookings. Owners get
// every booking; everyone else only the confirmed ones.
type PlaceBookings struct {
	Bookings []models.Booking
	IsOwner  bool
}

type BookingService interface {
	RequestBooking(ctx context.Context, placeID, tenantID string, in BookingInput) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, placeID, bookingID, actorID string) (*models.Booking, error)
	RejectBooking(ctx context.Context, placeID, bookingID, actorID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, actorID string, status models.BookingStatus) (*models.Booking, error)
	CheckAvailability(ctx context.Context, placeID string, rng availability.DateRange) (bool, error)
	GetBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error)
	ListPlaceBookings(ctx context.Context, placeID, viewerID string) (*PlaceBookings, error)
	ListTenantBookings(ctx context.Context, tenantID string) ([]models.Booking, error)
	History(ctx context.Context, bookingID, actorID string) ([]models.BookingEvent, error)
	Receipt(ctx context.Context, bookingID, actorID string) ([]byte, error)
	CompleteFinished(ctx context.Context) ([]models.Booking, error)
}

type BookingOption func(*bookingService)

// WithClock replaces time.Now, which decides what "today" is.
func WithClock(now func() time.Time) BookingOption {
	return func(s *bookingService) { s.now = now }
}

type bookingService struct {
	tx          repository.Transactor
	placeRepo   repository.PlaceRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
	eventRepo   repository.BookingEventRepository
	publisher   EventPublisher
	now         func() time.Time
}

func NewBookingService(
	tx repository.Transactor,
	placeRepo repository.PlaceRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	eventRepo repository.BookingEventRepository,
	publisher EventPublisher,
	opts ...BookingOption,
) BookingService {
	s := &bookingService{
		tx:          tx,
		placeRepo:   placeRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		eventRepo:   eventRepo,
		publisher:   publisher,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *bookingService) today() time.Time {
	return availability.Day(s.now())
}

func (s *bookingService) RequestBooking(ctx context.Context, placeID, tenantID string, in BookingInput) (*models.Booking, error) {
	rng, err := availability.NewDateRange(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, ErrCheckOutBeforeCheckIn
	}
	if rng.Start.Before(s.today()) {
		return nil, ErrCheckInPast
	}
	if in.Guests <= 0 {
		return nil, ErrInvalidGuests
	}

	var result *models.Booking

	err = s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		// 1. Lock the place row so booking changes on this place run one at a time
		place, err := s.placeRepo.FindByIDForUpdate(ctx, tx, placeID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrPlaceNotFound
			}
			return fmt.Errorf("lock place: %w", err)
		}

		if place.IsOwnedBy(tenantID) {
			return ErrOwnPlaceBooking
		}
		if place.MaxGuests > 0 && in.Guests > place.MaxGuests {
			return ErrTooManyGuests
		}

		// 2. Any booking that is not cancelled blocks a new request
		existing, err := s.bookingRepo.FindByPlace(ctx, tx, place.ID, models.ActiveStatuses...)
		if err != nil {
			return fmt.Errorf("list bookings: %w", err)
		}
		if availability.Overlaps(existing, rng, "", models.ActiveStatuses...) {
			return ErrDatesUnavailable
		}

		booking := &models.Booking{
			PlaceID:  place.ID,
			TenantID: tenantID,
			CheckIn:  rng.Start,
			CheckOut: rng.End,
			Guests:   in.Guests,
			Message:  in.Message,
			Status:   models.StatusPending,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		booking.Place = place
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[BookingService] booking %s requested for place %s (%s..%s)",
		result.ID, result.PlaceID, rng.Start.Format(availability.DateLayout), rng.End.Format(availability.DateLayout))
	s.publish(ctx, models.EventBookingRequested, result)

	return result, nil
}

// ConfirmBooking confirms a pending booking and cancels every other pending
// booking of the place that shares a night with it, in one transaction.
func (s *bookingService) ConfirmBooking(ctx context.Context, placeID, bookingID, actorID string) (*models.Booking, error) {
	var (
		result    *models.Booking
		cancelled []models.Booking
	)

	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		place, booking, err := s.lockBooking(ctx, tx, placeID, bookingID)
		if err != nil {
			return err
		}

		if !place.IsOwnedBy(actorID) {
			return ErrNotPlaceOwner
		}
		if booking.Status != models.StatusPending {
			return ErrBookingNotPending
		}

		others, err := s.bookingRepo.FindByPlace(ctx, tx, place.ID, models.StatusConfirmed, models.StatusPending)
		if err != nil {
			return fmt.Errorf("list bookings: %w", err)
		}

		rng := availability.Of(booking)
		if availability.Overlaps(others, rng, booking.ID, models.StatusConfirmed) {
			return ErrDatesNoLongerAvailable
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, []string{booking.ID}, models.StatusConfirmed); err != nil {
			return fmt.Errorf("confirm booking: %w", err)
		}
		booking.Status = models.StatusConfirmed

		losers := availability.Conflicting(others, rng, booking.ID, models.StatusPending)
		if len(losers) > 0 {
			ids := make([]string, len(losers))
			for i := range losers {
				ids[i] = losers[i].ID
				losers[i].Status = models.StatusCancelled
			}
			if err := s.bookingRepo.UpdateStatus(ctx, tx, ids, models.StatusCancelled); err != nil {
				return fmt.Errorf("cancel overlapping bookings: %w", err)
			}
		}

		result = booking
		cancelled = losers
		return nil
	})
	if err != nil {
		if repository.IsExclusionViolation(err) {
			return nil, ErrDatesNoLongerAvailable
		}
		return nil, err
	}

	log.Printf("[BookingService] booking %s confirmed for place %s, %d overlapping pending cancelled",
		result.ID, result.PlaceID, len(cancelled))

	s.publish(ctx, models.EventBookingConfirmed, result)
	for i := range cancelled {
		s.publish(ctx, models.EventBookingCancelled, &cancelled[i])
	}

	return result, nil
}

func (s *bookingService) RejectBooking(ctx context.Context, placeID, bookingID, actorID string) (*models.Booking, error) {
	var result *models.Booking

	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		place, booking, err := s.lockBooking(ctx, tx, placeID, bookingID)
		if err != nil {
			return err
		}
		if !place.IsOwnedBy(actorID) {
			return ErrNotPlaceOwner
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, []string{booking.ID}, models.StatusCancelled); err != nil {
			return fmt.Errorf("reject booking: %w", err)
		}
		booking.Status = models.StatusCancelled
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[BookingService] booking %s rejected by owner", result.ID)
	s.publish(ctx, models.EventBookingCancelled, result)

	return result, nil
}

// CancelBooking lets the tenant or the owner cancel a pending or confirmed
// booking up to the day before check-in.
func (s *bookingService) CancelBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	var result *models.Booking

	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		place, booking, err := s.lockBooking(ctx, tx, "", bookingID)
		if err != nil {
			return err
		}
		if booking.TenantID != actorID && !place.IsOwnedBy(actorID) {
			return ErrNotBookingParty
		}
		if !s.cancellable(booking) {
			return ErrBookingNotCancellable
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, []string{booking.ID}, models.StatusCancelled); err != nil {
			return fmt.Errorf("cancel booking: %w", err)
		}
		booking.Status = models.StatusCancelled
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[BookingService] booking %s cancelled by %s", result.ID, actorID)
	s.publish(ctx, models.EventBookingCancelled, result)

	return result, nil
}

func (s *bookingService) cancellable(b *models.Booking) bool {
	if b.Status != models.StatusPending && b.Status != models.StatusConfirmed {
		return false
	}
	return availability.Day(b.CheckIn).After(s.today())
}

func (s *bookingService) UpdateStatus(ctx context.Context, bookingID, actorID string, status models.BookingStatus) (*models.Booking, error) {
	switch status {
	case models.StatusConfirmed:
		return s.ConfirmBooking(ctx, "", bookingID, actorID)
	case models.StatusCancelled:
		return s.RejectBooking(ctx, "", bookingID, actorID)
	default:
		return nil, ErrInvalidStatus
	}
}

// lockBooking locks the booking's place and returns both as seen after the
// lock was granted. placeID, when set, must match the booking's place.
func (s *bookingService) lockBooking(ctx context.Context, tx *gorm.DB, placeID, bookingID string) (*models.Place, *models.Booking, error) {
	booking, err := s.findBooking(ctx, tx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if placeID != "" && booking.PlaceID != placeID {
		return nil, nil, ErrBookingNotFound
	}

	place, err := s.placeRepo.FindByIDForUpdate(ctx, tx, booking.PlaceID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, ErrPlaceNotFound
		}
		return nil, nil, fmt.Errorf("lock place: %w", err)
	}

	// Re-read: a transaction that held the lock before us may have changed the status.
	booking, err = s.findBooking(ctx, tx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	booking.Place = place

	return place, booking, nil
}

func (s *bookingService) findBooking(ctx context.Context, tx *gorm.DB, bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, tx, bookingID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, placeID string, rng availability.DateRange) (bool, error) {
	if _, err := s.placeRepo.FindByID(ctx, placeID); err != nil {
		if repository.IsNotFound(err) {
			return false, ErrPlaceNotFound
		}
		return false, fmt.Errorf("get place: %w", err)
	}

	confirmed, err := s.bookingRepo.FindByPlace(ctx, s.bookingRepo.GetDB(), placeID, models.StatusConfirmed)
	if err != nil {
		return false, fmt.Errorf("list bookings: %w", err)
	}

	return !availability.Overlaps(confirmed, rng, "", models.StatusConfirmed), nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID, actorID string) (*models.Booking, error) {
	booking, err := s.findBooking(ctx, s.bookingRepo.GetDB(), bookingID)
	if err != nil {
		return nil, err
	}
	if !isParty(booking, actorID) {
		return nil, ErrNotBookingParty
	}
	return booking, nil
}

func isParty(b *models.Booking, userID string) bool {
	if b.TenantID == userID {
		return true
	}
	return b.Place != nil && b.Place.IsOwnedBy(userID)
}

func (s *bookingService) ListPlaceBookings(ctx context.Context, placeID, viewerID string) (*PlaceBookings, error) {
	place, err := s.placeRepo.FindByID(ctx, placeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("get place: %w", err)
	}

	if viewerID != "" && place.IsOwnedBy(viewerID) {
		bookings, err := s.bookingRepo.FindByPlace(ctx, s.bookingRepo.GetDB(), placeID)
		if err != nil {
			return nil, fmt.Errorf("list bookings: %w", err)
		}
		return &PlaceBookings{Bookings: bookings, IsOwner: true}, nil
	}

	bookings, err := s.bookingRepo.FindByPlace(ctx, s.bookingRepo.GetDB(), placeID, models.StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return &PlaceBookings{Bookings: bookings}, nil
}

func (s *bookingService) ListTenantBookings(ctx context.Context, tenantID string) ([]models.Booking, error) {
	return s.bookingRepo.FindByTenant(ctx, tenantID)
}

func (s *bookingService) History(ctx context.Context, bookingID, actorID string) ([]models.BookingEvent, error) {
	if _, err := s.GetBooking(ctx, bookingID, actorID); err != nil {
		return nil, err
	}
	return s.eventRepo.FindByBooking(ctx, bookingID)
}

func (s *bookingService) Receipt(ctx context.Context, bookingID, actorID string) ([]byte, error) {
	booking, err := s.GetBooking(ctx, bookingID, actorID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.StatusConfirmed && booking.Status != models.StatusCompleted {
		return nil, ErrReceiptUnavailable
	}

	tenant, err := s.userRepo.FindByID(ctx, booking.TenantID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}

	return RenderReceipt(booking, booking.Place, tenant, s.now())
}

// CompleteFinished marks confirmed stays that have checked out as completed.
func (s *bookingService) CompleteFinished(ctx context.Context) ([]models.Booking, error) {
	done, err := s.bookingRepo.CompleteFinished(ctx, s.today())
	if err != nil {
		return nil, fmt.Errorf("complete finished bookings: %w", err)
	}

	for i := range done {
		s.publish(ctx, models.EventBookingCompleted, &done[i])
	}

	return done, nil
}

func (s *bookingService) publish(ctx context.Context, eventType string, b *models.Booking) {
	if s.publisher == nil {
		return
	}

	ev := models.NewBookingEvent(uuid.NewString(), eventType, b, s.now().UTC())
	if err := s.publisher.Publish(context.WithoutCancel(ctx), models.RoutingKey(eventType), ev.ID, ev); err != nil {
		log.Printf("[BookingService] failed to publish %s for booking %s: %v", eventType, b.ID, err)
	}
}
