package shows

import (
	"time"

	"github.com/google/uuid"
)

// Scheduling and booking-window rules. Deadlines are derived from the
// show start time and never stored.
const (
	// Bookings close this long before the show starts.
	BookingCutoff = 30 * time.Minute

	// Cancellations close this long before the show starts.
	CancellationCutoff = 2 * time.Hour

	// A show must be scheduled at least this far in the future.
	MinSchedulingAdvance = 1 * time.Hour

	MinTotalSeats = 10
	MaxTotalSeats = 1000

	MaxPrice = 10000.0
)

type Show struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	MovieID    uuid.UUID `json:"movie_id" gorm:"type:uuid;not null;index"`
	ScreenName string    `json:"screen_name" gorm:"not null;size:100"`
	DateTime   time.Time `json:"date_time" gorm:"not null"`
	TotalSeats int       `json:"total_seats" gorm:"not null;check:total_seats >= 10 AND total_seats <= 1000"`
	Price      float64   `json:"price" gorm:"not null;check:price >= 0 AND price <= 10000"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type ShowResponse struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movie_id"`
	MovieTitle string    `json:"movie_title,omitempty"`
	ScreenName string    `json:"screen_name"`
	DateTime   time.Time `json:"date_time"`
	TotalSeats int       `json:"total_seats"`
	Price      float64   `json:"price"`

	// Derived on read from active bookings.
	AvailableSeats   int       `json:"available_seats"`
	BookedSeats      []int     `json:"booked_seats,omitempty"`
	OccupancyPercent float64   `json:"occupancy_percent"`
	IsSoldOut        bool      `json:"is_sold_out"`
	BookingDeadline  time.Time `json:"booking_deadline"`
	CancelDeadline   time.Time `json:"cancellation_deadline"`
	ShowStatus       string    `json:"show_status"` // "upcoming" or "started"

	CreatedAt time.Time `json:"created_at"`
}

type CreateShowRequest struct {
	MovieID    string    `json:"movie_id" binding:"required,uuid"`
	ScreenName string    `json:"screen_name" binding:"required,min=1,max=100"`
	DateTime   time.Time `json:"date_time" binding:"required"`
	TotalSeats int       `json:"total_seats" binding:"required"`
	Price      float64   `json:"price" binding:"min=0,max=10000"`
}

// BookingDeadline returns the instant after which new bookings are
// rejected.
func (s *Show) BookingDeadline() time.Time {
	return s.DateTime.Add(-BookingCutoff)
}

// CancellationDeadline returns the instant after which cancellations
// are rejected.
func (s *Show) CancellationDeadline() time.Time {
	return s.DateTime.Add(-CancellationCutoff)
}

// HasStarted reports whether the show has begun at the given instant.
func (s *Show) HasStarted(now time.Time) bool {
	return !now.Before(s.DateTime)
}

// IsValidSeat reports whether seatNumber falls inside the show's seat
// range. Seats are numbered 1..TotalSeats.
func (s *Show) IsValidSeat(seatNumber int) bool {
	return seatNumber >= 1 && seatNumber <= s.TotalSeats
}

// ToResponse converts a Show to its API representation. Availability
// fields are populated by the service from the active booking set.
func (s *Show) ToResponse(now time.Time) ShowResponse {
	status := "upcoming"
	if s.HasStarted(now) {
		status = "started"
	}

	return ShowResponse{
		ID:              s.ID.String(),
		MovieID:         s.MovieID.String(),
		ScreenName:      s.ScreenName,
		DateTime:        s.DateTime,
		TotalSeats:      s.TotalSeats,
		Price:           s.Price,
		AvailableSeats:  s.TotalSeats,
		BookingDeadline: s.BookingDeadline(),
		CancelDeadline:  s.CancellationDeadline(),
		ShowStatus:      status,
		CreatedAt:       s.CreatedAt,
	}
}

// TableName specifies the table name for GORM
func (Show) TableName() string {
	return "shows"
}
