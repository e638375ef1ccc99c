package movies

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogAdapter exposes movie lookups to the shows package without an
// import cycle.
type CatalogAdapter struct {
	repo Repository
}

func NewCatalogAdapter(repo Repository) *CatalogAdapter {
	return &CatalogAdapter{repo: repo}
}

// MovieTitle returns the title for the given movie ID.
func (a *CatalogAdapter) MovieTitle(ctx context.Context, movieID uuid.UUID) (string, error) {
	movie, err := a.repo.GetByID(movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrMovieNotFound
		}
		return "", err
	}
	return movie.Title, nil
}
