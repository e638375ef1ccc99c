package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cinebook/internal/shared/constants"
	"cinebook/internal/shows"
	"cinebook/pkg/cache"
)

type fakeRepository struct {
	bookings map[uuid.UUID]*Booking

	activeForUser *Booking
	activeCount   int64
	seatTaken     bool
	refCollisions int

	created   *Booking
	createErr error

	updatedStatus   Status
	updatedCancelAt *time.Time

	dueCount    int64
	expireCalls int

	userRows []UserBookingRow
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bookings: make(map[uuid.UUID]*Booking)}
}

func (f *fakeRepository) CreateBooking(ctx context.Context, booking *Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	f.created = booking
	f.bookings[booking.ID] = booking
	return nil
}

func (f *fakeRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return booking, nil
}

func (f *fakeRepository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	f.updatedStatus = status
	f.updatedCancelAt = cancelledAt
	if booking, ok := f.bookings[id]; ok {
		booking.Status = status
		booking.CancelledAt = cancelledAt
	}
	return nil
}

func (f *fakeRepository) GetActiveBookingForUserAndShow(ctx context.Context, userID, showID uuid.UUID) (*Booking, error) {
	if f.activeForUser == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.activeForUser, nil
}

func (f *fakeRepository) CountActiveBookingsForUserAndShow(ctx context.Context, userID, showID uuid.UUID) (int64, error) {
	return f.activeCount, nil
}

func (f *fakeRepository) IsSeatTaken(ctx context.Context, showID uuid.UUID, seatNumber int) (bool, error) {
	return f.seatTaken, nil
}

func (f *fakeRepository) BookingRefExists(ctx context.Context, ref string) (bool, error) {
	if f.refCollisions > 0 {
		f.refCollisions--
		return true, nil
	}
	return false, nil
}

func (f *fakeRepository) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]UserBookingRow, error) {
	return f.userRows, nil
}

func (f *fakeRepository) ExpireDueBookings(ctx context.Context, now time.Time) (int64, error) {
	f.expireCalls++
	count := f.dueCount
	f.dueCount = 0
	return count, nil
}

func (f *fakeRepository) CountDueBookings(ctx context.Context, now time.Time) (int64, error) {
	return f.dueCount, nil
}

type fakeShowService struct {
	show              *shows.Show
	err               error
	invalidatedShowID uuid.UUID
}

func (f *fakeShowService) GetShow(ctx context.Context, id uuid.UUID) (*shows.Show, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.show, nil
}

func (f *fakeShowService) InvalidateAvailability(ctx context.Context, showID uuid.UUID) {
	f.invalidatedShowID = showID
}

type fakeCacheService struct {
	deletedPatterns []string
}

func (f *fakeCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	return cache.ErrCacheMiss
}

func (f *fakeCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (f *fakeCacheService) Delete(ctx context.Context, key string) error {
	return nil
}

func (f *fakeCacheService) DeletePattern(ctx context.Context, pattern string) error {
	f.deletedPatterns = append(f.deletedPatterns, pattern)
	return nil
}

func (f *fakeCacheService) Exists(ctx context.Context, key string) bool {
	return false
}

func (f *fakeCacheService) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	_, err := fetcher()
	return err
}

func (f *fakeCacheService) Ping(ctx context.Context) error {
	return nil
}

func upcomingShow(startsIn time.Duration, totalSeats int) *shows.Show {
	return &shows.Show{
		ID:         uuid.New(),
		MovieID:    uuid.New(),
		ScreenName: "Screen 1",
		DateTime:   time.Now().Add(startsIn),
		TotalSeats: totalSeats,
		Price:      350,
	}
}

func newBookingService(repo Repository, showService ShowService) Service {
	service := NewService(repo)
	service.SetShowService(showService)
	return service
}

func TestBookSeat(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("books a free seat", func(t *testing.T) {
		repo := newFakeRepository()
		show := upcomingShow(48*time.Hour, 100)
		showService := &fakeShowService{show: show}
		service := newBookingService(repo, showService)

		resp, err := service.BookSeat(ctx, userID, show.ID, BookSeatRequest{SeatNumber: 42})
		require.NoError(t, err)

		assert.Equal(t, 42, resp.SeatNumber)
		assert.Equal(t, string(StatusBooked), resp.Status)
		assert.True(t, strings.HasPrefix(resp.BookingRef, "BK"))
		assert.Len(t, resp.BookingRef, 10)
		assert.Equal(t, strings.ToUpper(resp.BookingRef), resp.BookingRef)

		require.NotNil(t, repo.created)
		assert.Equal(t, userID, repo.created.UserID)
		assert.Equal(t, show.ID, repo.created.ShowID)
		assert.Equal(t, show.DateTime, repo.created.ExpiresAt)
		assert.Equal(t, show.ID, showService.invalidatedShowID)
	})

	t.Run("show not found", func(t *testing.T) {
		repo := newFakeRepository()
		service := newBookingService(repo, &fakeShowService{err: shows.ErrShowNotFound})

		_, err := service.BookSeat(ctx, userID, uuid.New(), BookSeatRequest{SeatNumber: 1})
		assert.ErrorIs(t, err, shows.ErrShowNotFound)
	})

	t.Run("seat number out of range", func(t *testing.T) {
		repo := newFakeRepository()
		show := upcomingShow(48*time.Hour, 50)
		service := newBookingService(repo, &fakeShowService{show: show})

		for _, seat := range []int{0, -1, 51} {
			_, err := service.BookSeat(ctx, userID, show.ID, BookSeatRequest{SeatNumber: seat})
			assert.ErrorIs(t, err, ErrInvalidSeat, "seat %d", seat)
		}

		_, err := service.BookSeat(ctx, userID, show.ID, BookSeatRequest{SeatNumber: 50})
		assert.NoError(t, err, "last seat is valid")
	})

	t.Run("show already started", func(t *testing.T) {
		repo := newFakeRepository()
		show := upcomingShow(-time.Minute, 100)
		service := newBookingService(repo, &fakeShowService{show: show})

		_, err := service.BookSeat(ctx, userID, show.ID, BookSeatRequest{SeatNumber: 1})
		assert.ErrorIs(t, err, ErrShowStarted)
	})

	t.Run("booking window closed", func(t *testing.T) {
		repo := newFakeRepository()
		show := upcomingShow(10*time.Minute, 100)
		service := newBookingService(repo, &fakeShowService{show: show})

		_, err := service.BookSeat(ctx, userID, show.ID, BookSeatRequest{SeatNumber: 1})
		assert.ErrorIs(t, err, ErrBookingClosed)
	})

	t.Run("window still open just outside the cutoff", func(t *testing.T) {
		repo := newFakeRepository()
		show := upcomingShow(shows.BookingCutoff+time.Minute, 100)
		service := newBookingService(repo, &fakeShowService{show: show})

		_, err := service.BookSeat(ctx, userID, show.ID, BookSeatRequest{SeatNumber: 1})
		assert.NoError(t, err)
	})

	t.Run("user already holds a seat for the show", func(t *testing.T) {
		repo := newFakeRepository()
		show := upcomingShow(48*time.Hour, 100)
		repo.activeForUser = &Booking{SeatNumber: 7, Status: StatusBooked}
		service := newBookingService(repo, &fakeShowService{show: show})

		_, err := service.BookSeat(ctx, userID, show.ID, BookSeatRequest{SeatNumber: 12})
		assert.ErrorIs(t, err, ErrAlreadyBooked)
		assert.Contains(t, err.Error(), "seat 7")
	})

	t.Run("active booking limit reached", func(t *testing.T) {
		repo := newFakeRepository()
		show := upcomingShow(48*time.Hour, 100)
		repo.activeCount = MaxActiveBookingsPerShow
		service := newBookingService(repo, &fakeShowService{show: show})

		_, err := service.BookSeat(ctx, userID, show.ID, BookSeatRequest{SeatNumber: 12})
		assert.ErrorIs(t, err, ErrBookingLimit)
	})

	t.Run("seat already taken", func(t *testing.T) {
		repo := newFakeRepository()
		show := upcomingShow(48*time.Hour, 100)
		repo.seatTaken = true
		service := newBookingService(repo, &fakeShowService{show: show})

		_, err := service.BookSeat(ctx, userID, show.ID, BookSeatRequest{SeatNumber: 12})
		assert.ErrorIs(t, err, ErrSeatTaken)
	})

	t.Run("lost race surfaces as seat taken", func(t *testing.T) {
		repo := newFakeRepository()
		show := upcomingShow(48*time.Hour, 100)
		repo.createErr = gorm.ErrDuplicatedKey
		service := newBookingService(repo, &fakeShowService{show: show})

		_, err := service.BookSeat(ctx, userID, show.ID, BookSeatRequest{SeatNumber: 12})
		assert.ErrorIs(t, err, ErrSeatTaken)
	})

	t.Run("retries booking reference on collision", func(t *testing.T) {
		repo := newFakeRepository()
		show := upcomingShow(48*time.Hour, 100)
		repo.refCollisions = 2
		service := newBookingService(repo, &fakeShowService{show: show})

		resp, err := service.BookSeat(ctx, userID, show.ID, BookSeatRequest{SeatNumber: 12})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(resp.BookingRef, "BK"))
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	seed := func(repo *fakeRepository, show *shows.Show, status Status) *Booking {
		booking := &Booking{
			ID:         uuid.New(),
			UserID:     userID,
			ShowID:     show.ID,
			SeatNumber: 5,
			Status:     status,
			BookingRef: "BKDEADBEEF",
			BookedAt:   time.Now().Add(-time.Hour),
			ExpiresAt:  show.DateTime,
		}
		repo.bookings[booking.ID] = booking
		return booking
	}

	t.Run("cancels an active booking inside the window", func(t *testing.T) {
		repo := newFakeRepository()
		show := upcomingShow(3*time.Hour, 100)
		showService := &fakeShowService{show: show}
		service := newBookingService(repo, showService)
		booking := seed(repo, show, StatusBooked)

		resp, err := service.CancelBooking(ctx, userID, booking.ID)
		require.NoError(t, err)

		assert.Equal(t, string(StatusCancelled), resp.Status)
		assert.NotNil(t, resp.CancelledAt)
		assert.Equal(t, StatusCancelled, repo.updatedStatus)
		assert.Equal(t, show.ID, showService.invalidatedShowID)
	})

	t.Run("unknown booking", func(t *testing.T) {
		repo := newFakeRepository()
		service := newBookingService(repo, &fakeShowService{})

		_, err := service.CancelBooking(ctx, userID, uuid.New())
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("only the owner can cancel", func(t *testing.T) {
		repo := newFakeRepository()
		show := upcomingShow(3*time.Hour, 100)
		service := newBookingService(repo, &fakeShowService{show: show})
		booking := seed(repo, show, StatusBooked)

		_, err := service.CancelBooking(ctx, uuid.New(), booking.ID)
		assert.ErrorIs(t, err, ErrNotBookingOwner)
	})

	t.Run("cancelled and expired are terminal", func(t *testing.T) {
		repo := newFakeRepository()
		show := upcomingShow(3*time.Hour, 100)
		service := newBookingService(repo, &fakeShowService{show: show})

		cancelled := seed(repo, show, StatusCancelled)
		_, err := service.CancelBooking(ctx, userID, cancelled.ID)
		assert.ErrorIs(t, err, ErrAlreadyCancelled)

		expired := seed(repo, show, StatusExpired)
		_, err = service.CancelBooking(ctx, userID, expired.ID)
		assert.ErrorIs(t, err, ErrBookingExpired)
	})

	t.Run("show already occurred", func(t *testing.T) {
		repo := newFakeRepository()
		show := upcomingShow(-time.Minute, 100)
		service := newBookingService(repo, &fakeShowService{show: show})
		booking := seed(repo, show, StatusBooked)

		_, err := service.CancelBooking(ctx, userID, booking.ID)
		assert.ErrorIs(t, err, ErrShowOccurred)
	})

	t.Run("cancellation window closed", func(t *testing.T) {
		repo := newFakeRepository()
		show := upcomingShow(90*time.Minute, 100)
		service := newBookingService(repo, &fakeShowService{show: show})
		booking := seed(repo, show, StatusBooked)

		_, err := service.CancelBooking(ctx, userID, booking.ID)
		assert.ErrorIs(t, err, ErrCancellationClosed)
	})
}

func TestDeadlineBoundaries(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	start := time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC)

	fixedShow := func() *shows.Show {
		return &shows.Show{
			ID:         uuid.New(),
			MovieID:    uuid.New(),
			ScreenName: "Screen 1",
			DateTime:   start,
			TotalSeats: 100,
			Price:      350,
		}
	}

	seed := func(repo *fakeRepository, show *shows.Show) *Booking {
		booking := &Booking{
			ID:         uuid.New(),
			UserID:     userID,
			ShowID:     show.ID,
			SeatNumber: 5,
			Status:     StatusBooked,
			BookingRef: "BKDEADBEEF",
			BookedAt:   start.Add(-24 * time.Hour),
			ExpiresAt:  start,
		}
		repo.bookings[booking.ID] = booking
		return booking
	}

	t.Run("booking succeeds exactly at the cutoff", func(t *testing.T) {
		repo := newFakeRepository()
		show := fixedShow()
		svc := newBookingService(repo, &fakeShowService{show: show}).(*service)
		svc.now = func() time.Time { return start.Add(-shows.BookingCutoff) }

		_, err := svc.BookSeat(ctx, userID, show.ID, BookSeatRequest{SeatNumber: 1})
		assert.NoError(t, err)
	})

	t.Run("booking fails one instant past the cutoff", func(t *testing.T) {
		repo := newFakeRepository()
		show := fixedShow()
		svc := newBookingService(repo, &fakeShowService{show: show}).(*service)
		svc.now = func() time.Time { return start.Add(-shows.BookingCutoff).Add(time.Nanosecond) }

		_, err := svc.BookSeat(ctx, userID, show.ID, BookSeatRequest{SeatNumber: 1})
		assert.ErrorIs(t, err, ErrBookingClosed)
	})

	t.Run("cancellation succeeds exactly at the cutoff", func(t *testing.T) {
		repo := newFakeRepository()
		show := fixedShow()
		svc := newBookingService(repo, &fakeShowService{show: show}).(*service)
		svc.now = func() time.Time { return start.Add(-shows.CancellationCutoff) }
		booking := seed(repo, show)

		_, err := svc.CancelBooking(ctx, userID, booking.ID)
		assert.NoError(t, err)
	})

	t.Run("cancellation fails one instant past the cutoff", func(t *testing.T) {
		repo := newFakeRepository()
		show := fixedShow()
		svc := newBookingService(repo, &fakeShowService{show: show}).(*service)
		svc.now = func() time.Time { return start.Add(-shows.CancellationCutoff).Add(time.Nanosecond) }
		booking := seed(repo, show)

		_, err := svc.CancelBooking(ctx, userID, booking.ID)
		assert.ErrorIs(t, err, ErrCancellationClosed)
	})
}

func TestBookCancelRebook(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := newFakeRepository()
	show := upcomingShow(48*time.Hour, 100)
	service := newBookingService(repo, &fakeShowService{show: show})

	booked, err := service.BookSeat(ctx, userID, show.ID, BookSeatRequest{SeatNumber: 9})
	require.NoError(t, err)

	bookingID := uuid.MustParse(booked.ID)
	_, err = service.CancelBooking(ctx, userID, bookingID)
	require.NoError(t, err)

	// The seat is free again, so a second user can take it.
	rebooked, err := service.BookSeat(ctx, uuid.New(), show.ID, BookSeatRequest{SeatNumber: 9})
	require.NoError(t, err)
	assert.NotEqual(t, booked.BookingRef, rebooked.BookingRef)
}

func TestGenerateBookingRef(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepository()).(*service)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		ref, err := svc.generateBookingRef(ctx)
		require.NoError(t, err)

		assert.Len(t, ref, 10)
		assert.True(t, strings.HasPrefix(ref, "BK"))
		assert.Equal(t, strings.ToUpper(ref), ref)

		_, dup := seen[ref]
		assert.False(t, dup, "duplicate reference %s", ref)
		seen[ref] = struct{}{}
	}
}

func TestExpireDue(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepository()
	repo.dueCount = 3
	service := newBookingService(repo, &fakeShowService{})

	count, err := service.ExpireDue(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// Second sweep for the same instant finds nothing to do.
	count, err = service.ExpireDue(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, 2, repo.expireCalls)
}

func TestExpireDueInvalidatesCaches(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepository()
	repo.dueCount = 2
	cacheService := &fakeCacheService{}
	service := newBookingService(repo, &fakeShowService{})
	service.SetCacheService(cacheService)

	_, err := service.ExpireDue(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{
		constants.PATTERN_INVALIDATE_SHOWS_ALL,
		constants.PATTERN_INVALIDATE_BOOKINGS_ALL,
	}, cacheService.deletedPatterns)

	// A sweep that expires nothing leaves the caches alone.
	cacheService.deletedPatterns = nil
	_, err = service.ExpireDue(ctx, time.Now())
	require.NoError(t, err)
	assert.Empty(t, cacheService.deletedPatterns)
}
