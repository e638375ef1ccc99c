package shows

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepository struct {
	created     *Show
	createErr   error
	byID        *Show
	byIDErr     error
	upcoming    []Show
	bookedSeats []int
}

func (f *fakeRepository) Create(ctx context.Context, show *Show) error {
	if f.createErr != nil {
		return f.createErr
	}
	show.ID = uuid.New()
	f.created = show
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*Show, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}

func (f *fakeRepository) GetUpcomingByMovie(ctx context.Context, movieID uuid.UUID, after time.Time) ([]Show, error) {
	return f.upcoming, nil
}

func (f *fakeRepository) GetBookedSeats(ctx context.Context, showID uuid.UUID) ([]int, error) {
	return f.bookedSeats, nil
}

type fakeMovieService struct {
	title string
	err   error
}

func (f *fakeMovieService) MovieTitle(ctx context.Context, movieID uuid.UUID) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.title, nil
}

func validRequest() CreateShowRequest {
	return CreateShowRequest{
		MovieID:    uuid.NewString(),
		ScreenName: "Screen 1",
		DateTime:   time.Now().Add(48 * time.Hour),
		TotalSeats: 100,
		Price:      350,
	}
}

func TestCreateShow(t *testing.T) {
	ctx := context.Background()

	newService := func(repo Repository) Service {
		service := NewService(repo)
		service.SetMovieService(&fakeMovieService{title: "Interstellar"})
		return service
	}

	t.Run("creates a valid show", func(t *testing.T) {
		repo := &fakeRepository{}
		service := newService(repo)

		resp, err := service.CreateShow(ctx, validRequest())
		require.NoError(t, err)

		assert.Equal(t, "Interstellar", resp.MovieTitle)
		assert.Equal(t, 100, resp.TotalSeats)
		assert.Equal(t, 100, resp.AvailableSeats)
		assert.Equal(t, "upcoming", resp.ShowStatus)
		require.NotNil(t, repo.created)
	})

	t.Run("rejects a show in the past", func(t *testing.T) {
		service := newService(&fakeRepository{})

		req := validRequest()
		req.DateTime = time.Now().Add(-time.Hour)

		_, err := service.CreateShow(ctx, req)
		assert.ErrorIs(t, err, ErrShowInPast)
	})

	t.Run("rejects a show scheduled too soon", func(t *testing.T) {
		service := newService(&fakeRepository{})

		req := validRequest()
		req.DateTime = time.Now().Add(30 * time.Minute)

		_, err := service.CreateShow(ctx, req)
		assert.ErrorIs(t, err, ErrShowTooSoon)
	})

	t.Run("enforces seat count bounds", func(t *testing.T) {
		service := newService(&fakeRepository{})

		for _, seats := range []int{0, MinTotalSeats - 1, MaxTotalSeats + 1} {
			req := validRequest()
			req.TotalSeats = seats
			_, err := service.CreateShow(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidSeatCount, "seats %d", seats)
		}

		for _, seats := range []int{MinTotalSeats, MaxTotalSeats} {
			req := validRequest()
			req.TotalSeats = seats
			_, err := service.CreateShow(ctx, req)
			assert.NoError(t, err, "seats %d", seats)
		}
	})

	t.Run("enforces price bounds", func(t *testing.T) {
		service := newService(&fakeRepository{})

		for _, price := range []float64{-1, MaxPrice + 0.01} {
			req := validRequest()
			req.Price = price
			_, err := service.CreateShow(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidPrice, "price %v", price)
		}

		req := validRequest()
		req.Price = 0 // free screening
		_, err := service.CreateShow(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("rejects an unknown movie", func(t *testing.T) {
		service := NewService(&fakeRepository{})
		service.SetMovieService(&fakeMovieService{err: gorm.ErrRecordNotFound})

		_, err := service.CreateShow(ctx, validRequest())
		assert.ErrorIs(t, err, ErrMovieNotFound)
	})

	t.Run("duplicate slot on the same screen", func(t *testing.T) {
		service := newService(&fakeRepository{createErr: gorm.ErrDuplicatedKey})

		_, err := service.CreateShow(ctx, validRequest())
		assert.ErrorIs(t, err, ErrDuplicateShow)
	})
}

func TestGetShowByID(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown show", func(t *testing.T) {
		service := NewService(&fakeRepository{byIDErr: gorm.ErrRecordNotFound})

		_, err := service.GetShowByID(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrShowNotFound)
	})

	t.Run("availability is derived from active bookings", func(t *testing.T) {
		show := &Show{
			ID:         uuid.New(),
			MovieID:    uuid.New(),
			DateTime:   time.Now().Add(5 * time.Hour),
			TotalSeats: 10,
		}
		repo := &fakeRepository{byID: show, bookedSeats: []int{1, 4, 7}}
		service := NewService(repo)

		resp, err := service.GetShowByID(ctx, show.ID)
		require.NoError(t, err)

		assert.Equal(t, 7, resp.AvailableSeats)
		assert.Equal(t, []int{1, 4, 7}, resp.BookedSeats)
		assert.InDelta(t, 30.0, resp.OccupancyPercent, 0.001)
		assert.False(t, resp.IsSoldOut)
	})
}
