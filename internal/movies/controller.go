package movies

import (
	"errors"
	"net/http"

	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{
		service: service,
	}
}

// CreateMovie handles POST /movies (admin)
func (c *Controller) CreateMovie(ctx *gin.Context) {
	var req CreateMovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	movie, err := c.service.CreateMovie(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to create movie", nil)
		return
	}

	response.Success(ctx, http.StatusCreated, "Movie created successfully", movie)
}

// GetMovie handles GET /movies/:id
func (c *Controller) GetMovie(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid movie ID", nil)
		return
	}

	movie, err := c.service.GetMovieByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			response.Error(ctx, http.StatusNotFound, "Movie not found", nil)
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to get movie", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Movie retrieved successfully", movie)
}

// ListMovies handles GET /movies
func (c *Controller) ListMovies(ctx *gin.Context) {
	var query MovieListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	result, err := c.service.GetAllMovies(ctx.Request.Context(), query)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list movies", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Movies retrieved successfully", result)
}

// UpdateMovie handles PUT /movies/:id (admin)
func (c *Controller) UpdateMovie(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid movie ID", nil)
		return
	}

	var req UpdateMovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	movie, err := c.service.UpdateMovie(ctx.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			response.Error(ctx, http.StatusNotFound, "Movie not found", nil)
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to update movie", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /movies/:id (admin)
func (c *Controller) DeleteMovie(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid movie ID", nil)
		return
	}

	err = c.service.DeleteMovie(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrMovieNotFound):
			response.Error(ctx, http.StatusNotFound, "Movie not found", nil)
		case errors.Is(err, ErrMovieHasShows):
			response.Error(ctx, http.StatusConflict, "Cannot delete a movie with scheduled shows", nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to delete movie", nil)
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Movie deleted successfully", nil)
}
