package movies

import (
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// ShowsForMovieHandler lists shows for a movie; provided by the shows
// package and mounted here so the route lives under /movies/:id/shows.
type ShowsForMovieHandler func(ctx *gin.Context)

func SetupMovieRoutes(router *gin.RouterGroup, controller *Controller, showsForMovie ShowsForMovieHandler) {
	// Public routes - anyone can browse the catalog
	publicMovies := router.Group("/movies")
	{
		publicMovies.GET("", controller.ListMovies)   // GET /api/v1/movies
		publicMovies.GET("/:id", controller.GetMovie) // GET /api/v1/movies/:id
		if showsForMovie != nil {
			publicMovies.GET("/:id/shows", gin.HandlerFunc(showsForMovie)) // GET /api/v1/movies/:id/shows
		}
	}

	// Admin routes - catalog management
	adminMovies := router.Group("/movies")
	adminMovies.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminMovies.POST("", controller.CreateMovie)       // POST /api/v1/movies
		adminMovies.PUT("/:id", controller.UpdateMovie)    // PUT /api/v1/movies/:id
		adminMovies.DELETE("/:id", controller.DeleteMovie) // DELETE /api/v1/movies/:id
	}
}
