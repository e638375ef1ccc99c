package bookings

import "time"

type BookingResponse struct {
	ID         string `json:"id"`
	BookingRef string `json:"booking_ref"`
	ShowID     string `json:"show_id"`
	SeatNumber int    `json:"seat_number"`
	Status     string `json:"status"`

	MovieTitle   string    `json:"movie_title,omitempty"`
	ScreenName   string    `json:"screen_name,omitempty"`
	ShowDateTime time.Time `json:"show_date_time"`

	BookedAt       time.Time  `json:"booked_at"`
	ExpiresAt      time.Time  `json:"expires_at"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
	CancelDeadline time.Time  `json:"cancellation_deadline"`
}
