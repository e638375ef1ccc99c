package analytics

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Repository defines the analytics repository interface
type Repository interface {
	GetBookingOverview() (*BookingOverview, error)
	GetTopMovies(limit int) ([]MoviePerformance, error)
	GetBusiestScreens(limit int) ([]ScreenPerformance, error)
	GetDailyBookingStats(days int) ([]DailyBookingStats, error)
}

// repository implements the Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new analytics repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBookingOverview() (*BookingOverview, error) {
	var overview BookingOverview

	var total, active, cancelled, expired int64
	if err := r.db.Table("bookings").Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	if err := r.db.Table("bookings").Where("status = ?", "booked").Count(&active).Error; err != nil {
		return nil, fmt.Errorf("failed to count active bookings: %w", err)
	}
	if err := r.db.Table("bookings").Where("status = ?", "cancelled").Count(&cancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to count cancelled bookings: %w", err)
	}
	if err := r.db.Table("bookings").Where("status = ?", "expired").Count(&expired).Error; err != nil {
		return nil, fmt.Errorf("failed to count expired bookings: %w", err)
	}

	overview.TotalBookings = int(total)
	overview.ActiveBookings = int(active)
	overview.CancelledBookings = int(cancelled)
	overview.ExpiredBookings = int(expired)

	if total > 0 {
		overview.CancellationRate = float64(cancelled) / float64(total) * 100
	}

	// Revenue counts seats that were actually held or used; cancelled
	// bookings are refunded.
	err := r.db.Table("bookings").
		Joins("JOIN shows ON shows.id = bookings.show_id").
		Where("bookings.status IN ?", []string{"booked", "expired"}).
		Select("COALESCE(SUM(shows.price), 0)").
		Scan(&overview.TotalRevenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to calculate revenue: %w", err)
	}

	var upcomingShows int64
	err = r.db.Table("shows").
		Where("date_time > ?", time.Now()).
		Count(&upcomingShows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count upcoming shows: %w", err)
	}
	overview.UpcomingShows = int(upcomingShows)

	var totalUsers int64
	if err := r.db.Table("users").Count(&totalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	overview.TotalUsers = int(totalUsers)

	return &overview, nil
}

func (r *repository) GetTopMovies(limit int) ([]MoviePerformance, error) {
	var movies []MoviePerformance

	err := r.db.Raw(`
		SELECT
			movies.id AS movie_id,
			movies.title AS title,
			COUNT(bookings.id) AS bookings
		FROM bookings
		JOIN shows ON shows.id = bookings.show_id
		JOIN movies ON movies.id = shows.movie_id
		WHERE bookings.status = ?
		GROUP BY movies.id, movies.title
		ORDER BY bookings DESC
		LIMIT ?
	`, "booked", limit).Scan(&movies).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get top movies: %w", err)
	}

	return movies, nil
}

func (r *repository) GetBusiestScreens(limit int) ([]ScreenPerformance, error) {
	var screens []ScreenPerformance

	err := r.db.Raw(`
		SELECT
			shows.screen_name AS screen_name,
			COUNT(DISTINCT shows.id) AS shows,
			COUNT(bookings.id) AS bookings
		FROM shows
		LEFT JOIN bookings ON bookings.show_id = shows.id AND bookings.status = ?
		GROUP BY shows.screen_name
		ORDER BY bookings DESC
		LIMIT ?
	`, "booked", limit).Scan(&screens).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get busiest screens: %w", err)
	}

	return screens, nil
}

func (r *repository) GetDailyBookingStats(days int) ([]DailyBookingStats, error) {
	var stats []DailyBookingStats

	since := time.Now().AddDate(0, 0, -days)

	err := r.db.Raw(`
		SELECT
			DATE(bookings.created_at) AS date,
			COUNT(*) AS total_bookings,
			COUNT(*) FILTER (WHERE bookings.status = 'cancelled') AS cancellations,
			COALESCE(SUM(shows.price) FILTER (WHERE bookings.status IN ('booked', 'expired')), 0) AS revenue
		FROM bookings
		JOIN shows ON shows.id = bookings.show_id
		WHERE bookings.created_at >= ?
		GROUP BY DATE(bookings.created_at)
		ORDER BY date
	`, since).Scan(&stats).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get daily booking stats: %w", err)
	}

	return stats, nil
}
