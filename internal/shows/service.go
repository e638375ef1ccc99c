package shows

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrShowNotFound     = errors.New("show not found")
	ErrShowInPast       = errors.New("show date must be in the future")
	ErrShowTooSoon      = errors.New("show must be scheduled at least one hour in advance")
	ErrInvalidSeatCount = errors.New("total seats out of range")
	ErrInvalidPrice     = errors.New("price out of range")
	ErrDuplicateShow    = errors.New("a show already exists on this screen at this time")
	ErrMovieNotFound    = errors.New("movie not found")
)

// MovieService is the slice of the movies package needed here, defined
// locally to avoid an import cycle.
type MovieService interface {
	MovieTitle(ctx context.Context, movieID uuid.UUID) (string, error)
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetMovieService(movieService MovieService)
	CreateShow(ctx context.Context, req CreateShowRequest) (*ShowResponse, error)
	GetShowByID(ctx context.Context, id uuid.UUID) (*ShowResponse, error)
	ListShowsForMovie(ctx context.Context, movieID uuid.UUID) ([]ShowResponse, error)
	GetShow(ctx context.Context, id uuid.UUID) (*Show, error)
	InvalidateAvailability(ctx context.Context, showID uuid.UUID)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	movieService MovieService
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetMovieService(movieService MovieService) {
	s.movieService = movieService
}

func (s *service) CreateShow(ctx context.Context, req CreateShowRequest) (*ShowResponse, error) {
	now := time.Now().UTC()

	if !req.DateTime.After(now) {
		return nil, ErrShowInPast
	}
	if req.DateTime.Before(now.Add(MinSchedulingAdvance)) {
		return nil, ErrShowTooSoon
	}
	if req.TotalSeats < MinTotalSeats || req.TotalSeats > MaxTotalSeats {
		return nil, ErrInvalidSeatCount
	}
	if req.Price < 0 || req.Price > MaxPrice {
		return nil, ErrInvalidPrice
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, ErrMovieNotFound
	}

	var movieTitle string
	if s.movieService != nil {
		movieTitle, err = s.movieService.MovieTitle(ctx, movieID)
		if err != nil {
			return nil, ErrMovieNotFound
		}
	}

	show := &Show{
		MovieID:    movieID,
		ScreenName: req.ScreenName,
		DateTime:   req.DateTime.UTC(),
		TotalSeats: req.TotalSeats,
		Price:      req.Price,
	}

	if err := s.repo.Create(ctx, show); err != nil {
		// The unique index on (screen_name, date_time) is the arbiter
		// for concurrent scheduling of the same slot.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateShow
		}
		return nil, fmt.Errorf("failed to create show: %w", err)
	}

	s.invalidateShowCache(ctx)

	logger.GetDefault().LogShowCreated(ctx, show.ID.String(), show.MovieID.String(), show.ScreenName)

	response := show.ToResponse(now)
	response.MovieTitle = movieTitle
	return &response, nil
}

func (s *service) GetShowByID(ctx context.Context, id uuid.UUID) (*ShowResponse, error) {
	show, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, fmt.Errorf("failed to get show: %w", err)
	}

	response := show.ToResponse(time.Now().UTC())
	if err := s.populateAvailability(ctx, show, &response); err != nil {
		return nil, err
	}
	s.populateMovieTitle(ctx, show.MovieID, &response)

	return &response, nil
}

func (s *service) ListShowsForMovie(ctx context.Context, movieID uuid.UUID) ([]ShowResponse, error) {
	if s.movieService != nil {
		if _, err := s.movieService.MovieTitle(ctx, movieID); err != nil {
			return nil, ErrMovieNotFound
		}
	}

	now := time.Now().UTC()
	cacheKey := constants.BuildShowsForMovieKey(movieID.String())

	var cached []ShowResponse
	if s.cacheService != nil {
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	showList, err := s.repo.GetUpcomingByMovie(ctx, movieID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}

	responses := make([]ShowResponse, len(showList))
	for i := range showList {
		response := showList[i].ToResponse(now)
		if err := s.populateAvailability(ctx, &showList[i], &response); err != nil {
			return nil, err
		}
		// The seat map is detail-view data; keep listings lean.
		response.BookedSeats = nil
		responses[i] = response
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, responses, constants.TTL_SHOWS_FOR_MOVIE); err != nil {
			logger.GetDefault().WarnContext(ctx, "failed to cache show listing", "error", err.Error())
		}
	}

	return responses, nil
}

// GetShow returns the raw model for other services (bookings).
func (s *service) GetShow(ctx context.Context, id uuid.UUID) (*Show, error) {
	show, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, fmt.Errorf("failed to get show: %w", err)
	}
	return show, nil
}

// InvalidateAvailability drops cached derived fields for a show after a
// booking mutation.
func (s *service) InvalidateAvailability(ctx context.Context, showID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	key := constants.BuildShowAvailabilityKey(showID.String())
	if err := s.cacheService.Delete(ctx, key); err != nil {
		logger.GetDefault().WarnContext(ctx, "failed to invalidate availability cache", "key", key, "error", err.Error())
	}
}

// populateAvailability computes the derived seat fields from the set of
// active bookings. Nothing is read from stored counters.
func (s *service) populateAvailability(ctx context.Context, show *Show, response *ShowResponse) error {
	bookedSeats, err := s.bookedSeats(ctx, show.ID)
	if err != nil {
		return fmt.Errorf("failed to load booked seats: %w", err)
	}

	available := show.TotalSeats - len(bookedSeats)
	if available < 0 {
		available = 0
	}

	response.BookedSeats = bookedSeats
	response.AvailableSeats = available
	response.IsSoldOut = available == 0
	if show.TotalSeats > 0 {
		pct := float64(len(bookedSeats)) / float64(show.TotalSeats) * 100
		response.OccupancyPercent = math.Round(pct*100) / 100
	}

	return nil
}

func (s *service) bookedSeats(ctx context.Context, showID uuid.UUID) ([]int, error) {
	cacheKey := constants.BuildShowAvailabilityKey(showID.String())

	var cached []int
	if s.cacheService != nil {
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	seats, err := s.repo.GetBookedSeats(ctx, showID)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, seats, constants.TTL_SHOW_AVAILABILITY); err != nil {
			logger.GetDefault().WarnContext(ctx, "failed to cache booked seats", "error", err.Error())
		}
	}

	return seats, nil
}

func (s *service) populateMovieTitle(ctx context.Context, movieID uuid.UUID, response *ShowResponse) {
	if s.movieService == nil {
		return
	}
	title, err := s.movieService.MovieTitle(ctx, movieID)
	if err != nil {
		return
	}
	response.MovieTitle = title
}

func (s *service) invalidateShowCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_SHOWS_ALL); err != nil {
		logger.GetDefault().WarnContext(ctx, "failed to invalidate show cache", "error", err.Error())
	}
}
