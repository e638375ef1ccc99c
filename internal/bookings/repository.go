package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserBookingRow is a booking joined with the show and movie it belongs
// to, used for booking history listings.
type UserBookingRow struct {
	Booking
	MovieTitle   string    `gorm:"column:movie_title"`
	ScreenName   string    `gorm:"column:screen_name"`
	ShowDateTime time.Time `gorm:"column:show_date_time"`
}

type Repository interface {
	// Core booking operations
	CreateBooking(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error

	// Guard-check reads
	GetActiveBookingForUserAndShow(ctx context.Context, userID, showID uuid.UUID) (*Booking, error)
	CountActiveBookingsForUserAndShow(ctx context.Context, userID, showID uuid.UUID) (int64, error)
	IsSeatTaken(ctx context.Context, showID uuid.UUID, seatNumber int) (bool, error)
	BookingRefExists(ctx context.Context, ref string) (bool, error)

	// User booking operations
	GetUserBookings(ctx context.Context, userID uuid.UUID) ([]UserBookingRow, error)

	// Expiry sweep
	ExpireDueBookings(ctx context.Context, now time.Time) (int64, error)
	CountDueBookings(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateBooking inserts the booking inside a transaction. Seat
// exclusivity is not re-checked here: the partial unique index on
// (show_id, seat_number) rejects a second active booking for the same
// seat, and gorm translates the violation to ErrDuplicatedKey.
func (r *repository) CreateBooking(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(booking).Error
	})
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}

	if cancelledAt != nil {
		updates["cancelled_at"] = *cancelledAt
	}

	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) GetActiveBookingForUserAndShow(ctx context.Context, userID, showID uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND show_id = ? AND status = ?", userID, showID, StatusBooked).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) CountActiveBookingsForUserAndShow(ctx context.Context, userID, showID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("user_id = ? AND show_id = ? AND status = ?", userID, showID, StatusBooked).
		Count(&count).Error
	return count, err
}

func (r *repository) IsSeatTaken(ctx context.Context, showID uuid.UUID, seatNumber int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("show_id = ? AND seat_number = ? AND status = ?", showID, seatNumber, StatusBooked).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) BookingRefExists(ctx context.Context, ref string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("booking_ref = ?", ref).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]UserBookingRow, error) {
	var rows []UserBookingRow
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select("bookings.*, movies.title AS movie_title, shows.screen_name AS screen_name, shows.date_time AS show_date_time").
		Joins("JOIN shows ON shows.id = bookings.show_id").
		Joins("JOIN movies ON movies.id = shows.movie_id").
		Where("bookings.user_id = ?", userID).
		Order("bookings.created_at DESC").
		Find(&rows).Error

	return rows, err
}

// ExpireDueBookings marks every active booking whose show has started
// as expired, in a single UPDATE. Running it twice for the same instant
// is a no-op the second time.
func (r *repository) ExpireDueBookings(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("status = ?", StatusBooked).
		Where("show_id IN (?)", r.db.Table("shows").Select("id").Where("date_time < ?", now)).
		Updates(map[string]interface{}{
			"status":     StatusExpired,
			"updated_at": now,
		})

	return result.RowsAffected, result.Error
}

func (r *repository) CountDueBookings(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("status = ?", StatusBooked).
		Where("show_id IN (?)", r.db.Table("shows").Select("id").Where("date_time < ?", now)).
		Count(&count).Error
	return count, err
}
