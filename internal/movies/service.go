package movies

import (
	"context"
	"errors"
	"fmt"
	"math"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMovieNotFound    = errors.New("movie not found")
	ErrMovieHasShows    = errors.New("movie has scheduled shows")
	ErrInvalidMovieData = errors.New("invalid movie data")
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateMovie(ctx context.Context, req CreateMovieRequest) (*MovieResponse, error)
	GetMovieByID(ctx context.Context, id uuid.UUID) (*MovieResponse, error)
	GetAllMovies(ctx context.Context, query MovieListQuery) (*PaginatedMovies, error)
	UpdateMovie(ctx context.Context, id uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error)
	DeleteMovie(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) invalidateMovieCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_MOVIES_ALL); err != nil {
		logger.GetDefault().WarnContext(ctx, "failed to invalidate movie cache", "error", err.Error())
	}
}

func (s *service) CreateMovie(ctx context.Context, req CreateMovieRequest) (*MovieResponse, error) {
	movie := &Movie{
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		Rating:          req.Rating,
		Description:     req.Description,
	}

	if err := s.repo.Create(movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	s.invalidateMovieCache(ctx)

	response := movie.ToResponse()
	return &response, nil
}

func (s *service) GetMovieByID(ctx context.Context, id uuid.UUID) (*MovieResponse, error) {
	cacheKey := constants.BuildMovieDetailKey(id.String())

	var cached MovieResponse
	if s.cacheService != nil {
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	movie, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	response := movie.ToResponse()

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, response, constants.TTL_MOVIE_DETAIL); err != nil {
			logger.GetDefault().WarnContext(ctx, "failed to cache movie detail", "error", err.Error())
		}
	}

	return &response, nil
}

func (s *service) GetAllMovies(ctx context.Context, query MovieListQuery) (*PaginatedMovies, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	// Searches bypass the cache; the hot path is the plain catalog listing.
	cacheKey := ""
	if query.Search == "" {
		cacheKey = constants.BuildMovieListKey(query.Page, query.Limit)

		var cached PaginatedMovies
		if s.cacheService != nil {
			if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	movies, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get movies: %w", err)
	}

	movieResponses := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = movie.ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	result := &PaginatedMovies{
		Movies:     movieResponses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}

	if cacheKey != "" && s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, result, constants.TTL_MOVIE_LIST); err != nil {
			logger.GetDefault().WarnContext(ctx, "failed to cache movie list", "error", err.Error())
		}
	}

	return result, nil
}

func (s *service) UpdateMovie(ctx context.Context, id uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	updatedMovie, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	s.invalidateMovieCache(ctx)

	response := updatedMovie.ToResponse()
	return &response, nil
}

func (s *service) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMovieNotFound
		}
		return fmt.Errorf("failed to get movie: %w", err)
	}

	futureShows, err := s.repo.CountFutureShows(id)
	if err != nil {
		return fmt.Errorf("failed to check scheduled shows: %w", err)
	}
	if futureShows > 0 {
		return ErrMovieHasShows
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	s.invalidateMovieCache(ctx)
	return nil
}
