package shows

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

// CreateShow handles POST /shows (admin)
func (c *Controller) CreateShow(ctx *gin.Context) {
	var req CreateShowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	show, err := c.service.CreateShow(ctx.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMovieNotFound):
			response.Error(ctx, http.StatusNotFound, "Movie not found", nil)
		case errors.Is(err, ErrShowInPast), errors.Is(err, ErrShowTooSoon):
			response.Error(ctx, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, ErrInvalidSeatCount):
			response.Error(ctx, http.StatusBadRequest, "Total seats must be between 10 and 1000", nil)
		case errors.Is(err, ErrInvalidPrice):
			response.Error(ctx, http.StatusBadRequest, "Price must be between 0 and 10000", nil)
		case errors.Is(err, ErrDuplicateShow):
			response.Error(ctx, http.StatusConflict, "A show already exists on this screen at this time", nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to create show", nil)
		}
		return
	}

	response.Success(ctx, http.StatusCreated, "Show created successfully", show)
}

// GetShow handles GET /shows/:id
func (c *Controller) GetShow(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid show ID", nil)
		return
	}

	show, err := c.service.GetShowByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrShowNotFound) {
			response.Error(ctx, http.StatusNotFound, "Show not found", nil)
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to get show", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Show retrieved successfully", show)
}

// ListShowsForMovie handles GET /movies/:id/shows
func (c *Controller) ListShowsForMovie(ctx *gin.Context) {
	movieID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid movie ID", nil)
		return
	}

	result, err := c.service.ListShowsForMovie(ctx.Request.Context(), movieID)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			response.Error(ctx, http.StatusNotFound, "Movie not found", nil)
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to list shows", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Shows retrieved successfully", result)
}
