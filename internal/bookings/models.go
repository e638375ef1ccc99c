package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is one seat held by one user for one show. Seat exclusivity
// is enforced by a partial unique index on (show_id, seat_number) over
// rows with status 'booked'; see the database constraints migration.
type Booking struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	ShowID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"show_id"`
	SeatNumber  int        `gorm:"not null;check:seat_number >= 1" json:"seat_number"`
	Status      Status     `gorm:"type:varchar(20);check:status IN ('booked', 'cancelled', 'expired');default:'booked'" json:"status"`
	BookingRef  string     `gorm:"unique;not null;size:10" json:"booking_ref"`
	BookedAt    time.Time  `gorm:"not null" json:"booked_at"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

func (b *Booking) IsExpired() bool {
	return b.Status == StatusExpired
}

// Cancel transitions the booking to cancelled at the given instant.
func (b *Booking) Cancel(now time.Time) {
	b.Status = StatusCancelled
	b.CancelledAt = &now
	b.UpdatedAt = now
}
