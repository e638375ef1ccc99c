package movies

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(movie *Movie) error
	GetByID(id uuid.UUID) (*Movie, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Movie, error)
	Delete(id uuid.UUID) error
	GetAll(query MovieListQuery) ([]Movie, int64, error)
	CountFutureShows(movieID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(movie *Movie) error {
	return r.db.Create(movie).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Movie, error) {
	var movie Movie
	err := r.db.Where("id = ?", id).First(&movie).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Movie, error) {
	var movie Movie

	if err := r.db.Where("id = ?", id).First(&movie).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&movie).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&movie).Error; err != nil {
		return nil, err
	}

	return &movie, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Movie{}).Error
}

func (r *repository) GetAll(query MovieListQuery) ([]Movie, int64, error) {
	var movies []Movie
	var totalCount int64

	db := r.db.Model(&Movie{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := db.Order("title ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&movies).Error
	if err != nil {
		return nil, 0, err
	}

	return movies, totalCount, nil
}

// CountFutureShows reports how many upcoming shows reference the movie.
// The shows package owns the model, so query the table directly to avoid
// an import cycle.
func (r *repository) CountFutureShows(movieID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Table("shows").
		Where("movie_id = ? AND date_time > NOW()", movieID).
		Count(&count).Error
	return count, err
}
