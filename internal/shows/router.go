package shows

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// BookSeatHandler handles POST /shows/:id/book; provided by the
// bookings package and mounted here so the route lives under /shows.
type BookSeatHandler func(ctx *gin.Context)

func SetupShowRoutes(router *gin.RouterGroup, controller *Controller, bookSeat BookSeatHandler) {
	// Public routes - anyone can view show details and seat maps
	publicShows := router.Group("/shows")
	{
		publicShows.GET("/:id", controller.GetShow) // GET /api/v1/shows/:id
	}

	// Authenticated booking entrypoint
	if bookSeat != nil {
		authed := router.Group("/shows")
		authed.Use(middleware.JWTAuth())
		{
			authed.POST("/:id/book", gin.HandlerFunc(bookSeat)) // POST /api/v1/shows/:id/book
		}
	}

	// Admin routes - scheduling
	adminShows := router.Group("/shows")
	adminShows.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminShows.POST("", controller.CreateShow) // POST /api/v1/shows
	}
}
