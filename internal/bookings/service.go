package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinebook/internal/shared/constants"
	"cinebook/internal/shows"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"
)

// MaxActiveBookingsPerShow caps how many seats one user can hold for a
// single show at the same time.
const MaxActiveBookingsPerShow = 5

const maxRefAttempts = 5

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInvalidSeat        = errors.New("seat number out of range for this show")
	ErrShowStarted        = errors.New("show has already started")
	ErrBookingClosed      = errors.New("booking window has closed")
	ErrAlreadyBooked      = errors.New("user already has an active booking for this show")
	ErrBookingLimit       = errors.New("active booking limit reached for this show")
	ErrSeatTaken          = errors.New("seat is already booked")
	ErrNotBookingOwner    = errors.New("booking belongs to another user")
	ErrAlreadyCancelled   = errors.New("booking is already cancelled")
	ErrBookingExpired     = errors.New("booking has expired")
	ErrShowOccurred       = errors.New("show has already occurred")
	ErrCancellationClosed = errors.New("cancellation window has closed")
)

// ShowService is the slice of the shows package used here.
type ShowService interface {
	GetShow(ctx context.Context, id uuid.UUID) (*shows.Show, error)
	InvalidateAvailability(ctx context.Context, showID uuid.UUID)
}

// CatalogService resolves movie titles for notifications and responses.
type CatalogService interface {
	MovieTitle(ctx context.Context, movieID uuid.UUID) (string, error)
}

// UserService resolves the booking owner's contact details.
type UserService interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (email string, name string, err error)
}

// Notifier publishes booking lifecycle events. Publishing is best
// effort: a broker outage never fails the booking itself.
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, n BookingNotification) error
	NotifyBookingCancelled(ctx context.Context, n BookingNotification) error
}

// BookingNotification carries everything a confirmation or cancellation
// message needs.
type BookingNotification struct {
	BookingRef   string    `json:"booking_ref"`
	UserEmail    string    `json:"user_email"`
	UserName     string    `json:"user_name"`
	MovieTitle   string    `json:"movie_title"`
	ScreenName   string    `json:"screen_name"`
	ShowDateTime time.Time `json:"show_date_time"`
	SeatNumber   int       `json:"seat_number"`
}

// Service interface defines the contract for booking business logic
type Service interface {
	BookSeat(ctx context.Context, userID, showID uuid.UUID, req BookSeatRequest) (*BookingResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error)

	ExpireDue(ctx context.Context, now time.Time) (int64, error)
	CountDue(ctx context.Context, now time.Time) (int64, error)

	SetCacheService(cacheService cache.Service)
	SetShowService(showService ShowService)
	SetCatalogService(catalogService CatalogService)
	SetUserService(userService UserService)
	SetNotifier(notifier Notifier)
}

type service struct {
	repo           Repository
	showService    ShowService
	catalogService CatalogService
	userService    UserService
	notifier       Notifier
	cacheService   cache.Service
	log            *logger.Logger

	// now is the clock for deadline checks, replaceable in tests so the
	// exact cutoff instants can be exercised.
	now func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
		now:  time.Now,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetShowService(showService ShowService) {
	s.showService = showService
}

func (s *service) SetCatalogService(catalogService CatalogService) {
	s.catalogService = catalogService
}

func (s *service) SetUserService(userService UserService) {
	s.userService = userService
}

func (s *service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// BookSeat reserves one seat for the user. Guards run in a fixed order
// so the caller always learns the most specific failure; the partial
// unique index remains the final arbiter when two requests race for
// the same seat.
func (s *service) BookSeat(ctx context.Context, userID, showID uuid.UUID, req BookSeatRequest) (*BookingResponse, error) {
	now := s.now()

	show, err := s.showService.GetShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	if !show.IsValidSeat(req.SeatNumber) {
		return nil, fmt.Errorf("%w: seat %d, show has %d seats", ErrInvalidSeat, req.SeatNumber, show.TotalSeats)
	}

	if show.HasStarted(now) {
		return nil, ErrShowStarted
	}

	// Booking exactly at the deadline still succeeds.
	if now.After(show.BookingDeadline()) {
		return nil, ErrBookingClosed
	}

	existing, err := s.repo.GetActiveBookingForUserAndShow(ctx, userID, showID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing booking: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: seat %d", ErrAlreadyBooked, existing.SeatNumber)
	}

	activeCount, err := s.repo.CountActiveBookingsForUserAndShow(ctx, userID, showID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active bookings: %w", err)
	}
	if activeCount >= MaxActiveBookingsPerShow {
		return nil, ErrBookingLimit
	}

	taken, err := s.repo.IsSeatTaken(ctx, showID, req.SeatNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check seat: %w", err)
	}
	if taken {
		return nil, ErrSeatTaken
	}

	ref, err := s.generateBookingRef(ctx)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		UserID:     userID,
		ShowID:     showID,
		SeatNumber: req.SeatNumber,
		Status:     StatusBooked,
		BookingRef: ref,
		BookedAt:   now,
		ExpiresAt:  show.DateTime,
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		// A concurrent request won the seat between the read above and
		// the insert. The booking_ref was pre-checked, so a duplicate
		// key here is the seat index firing.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSeatTaken
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), showID.String(), userID.String(), req.SeatNumber)

	s.invalidateBookingCaches(ctx, userID, showID)
	s.notify(ctx, booking, show, s.notifyConfirmed)

	response := s.toResponse(ctx, booking, show)
	return &response, nil
}

// CancelBooking releases the seat if the booking is still active and
// the show starts more than two hours from now. Cancelling exactly at
// the deadline still succeeds.
func (s *service) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error) {
	now := s.now()

	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}

	if booking.IsCancelled() {
		return nil, ErrAlreadyCancelled
	}
	if booking.IsExpired() {
		return nil, ErrBookingExpired
	}

	show, err := s.showService.GetShow(ctx, booking.ShowID)
	if err != nil {
		return nil, err
	}

	if show.HasStarted(now) {
		return nil, ErrShowOccurred
	}

	if now.After(show.CancellationDeadline()) {
		return nil, ErrCancellationClosed
	}

	booking.Cancel(now)
	if err := s.repo.UpdateBookingStatus(ctx, booking.ID, StatusCancelled, booking.CancelledAt); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.log.LogBookingCancelled(ctx, booking.ID.String(), booking.ShowID.String(), userID.String())

	s.invalidateBookingCaches(ctx, userID, booking.ShowID)
	s.notify(ctx, booking, show, s.notifyCancelled)

	response := s.toResponse(ctx, booking, show)
	return &response, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error) {
	cacheKey := constants.BuildUserBookingsKey(userID.String())

	if s.cacheService != nil {
		var cached []BookingResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	rows, err := s.repo.GetUserBookings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	responses := make([]BookingResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, BookingResponse{
			ID:             row.ID.String(),
			BookingRef:     row.BookingRef,
			ShowID:         row.ShowID.String(),
			SeatNumber:     row.SeatNumber,
			Status:         row.Status.String(),
			MovieTitle:     row.MovieTitle,
			ScreenName:     row.ScreenName,
			ShowDateTime:   row.ShowDateTime,
			BookedAt:       row.BookedAt,
			ExpiresAt:      row.ExpiresAt,
			CancelledAt:    row.CancelledAt,
			CancelDeadline: row.ShowDateTime.Add(-shows.CancellationCutoff),
		})
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, responses, constants.TTL_USER_BOOKINGS); err != nil {
			s.log.WarnContext(ctx, "failed to cache user bookings", "error", err)
		}
	}

	return responses, nil
}

// ExpireDue sweeps active bookings whose show has started. It is
// idempotent: a second sweep at the same instant affects zero rows.
func (s *service) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	count, err := s.repo.ExpireDueBookings(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire bookings: %w", err)
	}

	if count > 0 {
		s.log.LogBookingsExpired(ctx, count)
		if s.cacheService != nil {
			// Expired rows change both derived show fields and cached
			// per-user booking histories.
			for _, pattern := range []string{constants.PATTERN_INVALIDATE_SHOWS_ALL, constants.PATTERN_INVALIDATE_BOOKINGS_ALL} {
				if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
					s.log.WarnContext(ctx, "failed to invalidate caches after expiry", "pattern", pattern, "error", err)
				}
			}
		}
	}

	return count, nil
}

func (s *service) CountDue(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.CountDueBookings(ctx, now)
}

// generateBookingRef produces a short human-readable reference like
// BK3F9A01CD. The ref is pre-checked for uniqueness so a later
// duplicate-key error can be attributed to the seat index.
func (s *service) generateBookingRef(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxRefAttempts; attempt++ {
		hex := strings.ReplaceAll(uuid.New().String(), "-", "")
		ref := "BK" + strings.ToUpper(hex[:8])

		exists, err := s.repo.BookingRefExists(ctx, ref)
		if err != nil {
			return "", fmt.Errorf("failed to check booking reference: %w", err)
		}
		if !exists {
			return ref, nil
		}
	}
	return "", errors.New("failed to generate unique booking reference")
}

func (s *service) toResponse(ctx context.Context, booking *Booking, show *shows.Show) BookingResponse {
	resp := BookingResponse{
		ID:             booking.ID.String(),
		BookingRef:     booking.BookingRef,
		ShowID:         booking.ShowID.String(),
		SeatNumber:     booking.SeatNumber,
		Status:         booking.Status.String(),
		ScreenName:     show.ScreenName,
		ShowDateTime:   show.DateTime,
		BookedAt:       booking.BookedAt,
		ExpiresAt:      booking.ExpiresAt,
		CancelledAt:    booking.CancelledAt,
		CancelDeadline: show.CancellationDeadline(),
	}

	if s.catalogService != nil {
		if title, err := s.catalogService.MovieTitle(ctx, show.MovieID); err == nil {
			resp.MovieTitle = title
		}
	}

	return resp
}

func (s *service) invalidateBookingCaches(ctx context.Context, userID, showID uuid.UUID) {
	if s.showService != nil {
		s.showService.InvalidateAvailability(ctx, showID)
	}
	if s.cacheService != nil {
		if err := s.cacheService.Delete(ctx, constants.BuildUserBookingsKey(userID.String())); err != nil {
			s.log.WarnContext(ctx, "failed to invalidate user bookings cache", "error", err)
		}
		if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_ANALYTICS); err != nil {
			s.log.WarnContext(ctx, "failed to invalidate analytics cache", "error", err)
		}
	}
}

func (s *service) notify(ctx context.Context, booking *Booking, show *shows.Show, publish func(context.Context, BookingNotification) error) {
	if s.notifier == nil {
		return
	}

	n := BookingNotification{
		BookingRef:   booking.BookingRef,
		ScreenName:   show.ScreenName,
		ShowDateTime: show.DateTime,
		SeatNumber:   booking.SeatNumber,
	}

	if s.userService != nil {
		if email, name, err := s.userService.GetUserByID(ctx, booking.UserID); err == nil {
			n.UserEmail = email
			n.UserName = name
		}
	}
	if s.catalogService != nil {
		if title, err := s.catalogService.MovieTitle(ctx, show.MovieID); err == nil {
			n.MovieTitle = title
		}
	}

	if err := publish(ctx, n); err != nil {
		s.log.WarnContext(ctx, "failed to publish booking notification",
			"booking_ref", booking.BookingRef, "error", err)
	}
}

func (s *service) notifyConfirmed(ctx context.Context, n BookingNotification) error {
	return s.notifier.NotifyBookingConfirmed(ctx, n)
}

func (s *service) notifyCancelled(ctx context.Context, n BookingNotification) error {
	return s.notifier.NotifyBookingCancelled(ctx, n)
}
