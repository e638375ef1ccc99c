package analytics

import (
	"time"
)

// BookingAnalytics is the admin-facing booking statistics report.
type BookingAnalytics struct {
	Overview       BookingOverview     `json:"overview"`
	TopMovies      []MoviePerformance  `json:"top_movies"`
	BusiestScreens []ScreenPerformance `json:"busiest_screens"`
	DailyStats     []DailyBookingStats `json:"daily_stats"`
	GeneratedAt    time.Time           `json:"generated_at"`
}

type BookingOverview struct {
	TotalBookings     int     `json:"total_bookings"`
	ActiveBookings    int     `json:"active_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	ExpiredBookings   int     `json:"expired_bookings"`
	CancellationRate  float64 `json:"cancellation_rate"`
	TotalRevenue      float64 `json:"total_revenue"`
	UpcomingShows     int     `json:"upcoming_shows"`
	TotalUsers        int     `json:"total_users"`
}

type MoviePerformance struct {
	MovieID  string `json:"movie_id"`
	Title    string `json:"title"`
	Bookings int    `json:"bookings"`
}

type ScreenPerformance struct {
	ScreenName string `json:"screen_name"`
	Shows      int    `json:"shows"`
	Bookings   int    `json:"bookings"`
}

type DailyBookingStats struct {
	Date          string  `json:"date"`
	TotalBookings int     `json:"total_bookings"`
	Cancellations int     `json:"cancellations"`
	Revenue       float64 `json:"revenue"`
}
