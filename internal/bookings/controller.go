package bookings

import (
	"errors"
	"net/http"

	"cinebook/internal/shared/utils/response"
	"cinebook/internal/shows"

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

// BookSeat handles POST /shows/:id/book
func (c *Controller) BookSeat(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	showID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid show ID", nil)
		return
	}

	var req BookSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	booking, err := c.service.BookSeat(ctx.Request.Context(), userID, showID, req)
	if err != nil {
		switch {
		case errors.Is(err, shows.ErrShowNotFound):
			response.Error(ctx, http.StatusNotFound, "Show not found", nil)
		case errors.Is(err, ErrInvalidSeat):
			response.Error(ctx, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, ErrShowStarted):
			response.Error(ctx, http.StatusBadRequest, "Show has already started", nil)
		case errors.Is(err, ErrBookingClosed):
			response.Error(ctx, http.StatusBadRequest, "Bookings close 30 minutes before the show starts", nil)
		case errors.Is(err, ErrAlreadyBooked):
			response.Error(ctx, http.StatusConflict, err.Error(), nil)
		case errors.Is(err, ErrBookingLimit):
			response.Error(ctx, http.StatusConflict, "You already hold the maximum number of seats for this show", nil)
		case errors.Is(err, ErrSeatTaken):
			response.Error(ctx, http.StatusConflict, "Seat is already booked", nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to book seat", nil)
		}
		return
	}

	response.Success(ctx, http.StatusCreated, "Seat booked successfully", booking)
}

// CancelBooking handles POST /bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	booking, err := c.service.CancelBooking(ctx.Request.Context(), userID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.Error(ctx, http.StatusNotFound, "Booking not found", nil)
		case errors.Is(err, ErrNotBookingOwner):
			response.Error(ctx, http.StatusForbidden, "You can only cancel your own bookings", nil)
		case errors.Is(err, ErrAlreadyCancelled):
			response.Error(ctx, http.StatusBadRequest, "Booking is already cancelled", nil)
		case errors.Is(err, ErrBookingExpired):
			response.Error(ctx, http.StatusBadRequest, "Booking has expired", nil)
		case errors.Is(err, ErrShowOccurred):
			response.Error(ctx, http.StatusBadRequest, "Show has already occurred", nil)
		case errors.Is(err, ErrCancellationClosed):
			response.Error(ctx, http.StatusBadRequest, "Cancellations close 2 hours before the show starts", nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to cancel booking", nil)
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Booking cancelled successfully", booking)
}

// MyBookings handles GET /bookings/my
func (c *Controller) MyBookings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	bookings, err := c.service.GetUserBookings(ctx.Request.Context(), userID)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list bookings", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}

	str, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
