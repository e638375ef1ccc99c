package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cinebook/internal/shared/utils/response"
)

// Controller defines the analytics controller interface
type Controller interface {
	GetBookingAnalytics(c *gin.Context)
}

// controller implements the Controller interface
type controller struct {
	service Service
}

// NewController creates a new analytics controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetBookingAnalytics handles GET /analytics/bookings (admin)
func (ctrl *controller) GetBookingAnalytics(c *gin.Context) {
	analytics, err := ctrl.service.GetBookingAnalytics(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get booking analytics", nil)
		return
	}

	response.Success(c, http.StatusOK, "Booking analytics retrieved successfully", analytics)
}
