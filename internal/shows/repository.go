package shows

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, show *Show) error
	GetByID(ctx context.Context, id uuid.UUID) (*Show, error)
	GetUpcomingByMovie(ctx context.Context, movieID uuid.UUID, after time.Time) ([]Show, error)
	GetBookedSeats(ctx context.Context, showID uuid.UUID) ([]int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, show *Show) error {
	return r.db.WithContext(ctx).Create(show).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Show, error) {
	var show Show
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&show).Error
	if err != nil {
		return nil, err
	}
	return &show, nil
}

func (r *repository) GetUpcomingByMovie(ctx context.Context, movieID uuid.UUID, after time.Time) ([]Show, error) {
	var result []Show
	err := r.db.WithContext(ctx).
		Where("movie_id = ? AND date_time > ?", movieID, after).
		Order("date_time ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetBookedSeats returns the seat numbers with an active booking,
// ordered ascending. The bookings package owns the model, so the table
// is queried directly to avoid an import cycle.
func (r *repository) GetBookedSeats(ctx context.Context, showID uuid.UUID) ([]int, error) {
	var seats []int
	err := r.db.WithContext(ctx).
		Table("bookings").
		Where("show_id = ? AND status = ?", showID, "booked").
		Order("seat_number ASC").
		Pluck("seat_number", &seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}
