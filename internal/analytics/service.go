package analytics

import (
	"context"
	"fmt"
	"time"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"
)

const (
	topMoviesLimit      = 5
	busiestScreensLimit = 5
	dailyStatsDays      = 30
)

// Service defines the analytics service interface
type Service interface {
	GetBookingAnalytics(ctx context.Context) (*BookingAnalytics, error)

	SetCacheService(cacheService cache.Service)
}

// service implements the Service interface
type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

// NewService creates a new analytics service instance
func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetBookingAnalytics(ctx context.Context) (*BookingAnalytics, error) {
	cacheKey := constants.CACHE_KEY_ANALYTICS_BOOKINGS

	if s.cacheService != nil {
		var cached BookingAnalytics
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetBookingOverview()
	if err != nil {
		return nil, fmt.Errorf("failed to get booking overview: %w", err)
	}

	topMovies, err := s.repo.GetTopMovies(topMoviesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top movies: %w", err)
	}

	busiestScreens, err := s.repo.GetBusiestScreens(busiestScreensLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get busiest screens: %w", err)
	}

	dailyStats, err := s.repo.GetDailyBookingStats(dailyStatsDays)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily booking stats: %w", err)
	}

	analytics := &BookingAnalytics{
		Overview:       *overview,
		TopMovies:      topMovies,
		BusiestScreens: busiestScreens,
		DailyStats:     dailyStats,
		GeneratedAt:    time.Now(),
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, analytics, constants.TTL_ANALYTICS_BOOKINGS); err != nil {
			s.log.WarnContext(ctx, "failed to cache booking analytics", "error", err)
		}
	}

	return analytics, nil
}
