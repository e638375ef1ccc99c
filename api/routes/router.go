// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cinebook/internal/analytics"
	"cinebook/internal/auth"
	"cinebook/internal/bookings"
	"cinebook/internal/movies"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/shows"
	"cinebook/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	notifier     bookings.Notifier

	// Cross-package wiring built during setup
	userAdapter    *auth.UserServiceAdapter
	catalogAdapter *movies.CatalogAdapter
	showService    shows.Service
	bookingService bookings.Service
}

// NewRouter creates a new router instance. The notifier may be nil when
// the broker is disabled.
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, notifier bookings.Notifier) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		cacheService: cacheService,
		notifier:     notifier,
	}
}

// BookingService exposes the wired booking service so the server can
// run the expiry job against the same instance. Valid after
// SetupRoutes.
func (r *Router) BookingService() bookings.Service {
	return r.bookingService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Bookings must be wired before movies and shows: their routers
		// mount injected booking and listing handlers.
		bookingController := r.setupBookingDomain()

		movieController, showController := r.setupCatalogDomain()

		movies.SetupMovieRoutes(api, movieController, showController.ListShowsForMovie)
		shows.SetupShowRoutes(api, showController, bookingController.BookSeat)
		bookings.SetupBookingRoutes(api, bookingController)

		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinebook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		dbStatus := "up"
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			dbStatus = "down"
		}
		cacheStatus := "disabled"
		if r.cacheService != nil {
			cacheStatus = "up"
		}

		c.JSON(http.StatusOK, gin.H{
			"service":   "cinebook-backend",
			"version":   r.config.APIVersion,
			"database":  dbStatus,
			"cache":     cacheStatus,
			"timestamp": time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.PostgreSQL)
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	r.userAdapter = auth.NewUserServiceAdapter(authRepo)

	authRouter.SetupRoutes(rg)
}

// setupCatalogDomain wires movies and shows, which reference each other
// through narrow adapters.
func (r *Router) setupCatalogDomain() (*movies.Controller, *shows.Controller) {
	movieRepo := movies.NewRepository(r.db.PostgreSQL)
	movieService := movies.NewService(movieRepo)
	movieService.SetCacheService(r.cacheService)
	r.catalogAdapter = movies.NewCatalogAdapter(movieRepo)

	showRepo := shows.NewRepository(r.db.PostgreSQL)
	showService := shows.NewService(showRepo)
	showService.SetCacheService(r.cacheService)
	showService.SetMovieService(r.catalogAdapter)
	r.showService = showService

	// Bookings were wired first; close the loop now that shows exist.
	r.bookingService.SetShowService(showService)
	r.bookingService.SetCatalogService(r.catalogAdapter)

	return movies.NewController(movieService), shows.NewController(showService)
}

// setupBookingDomain wires the reservation core. Show and catalog
// dependencies are injected later by setupCatalogDomain.
func (r *Router) setupBookingDomain() *bookings.Controller {
	bookingRepo := bookings.NewRepository(r.db.PostgreSQL)
	bookingService := bookings.NewService(bookingRepo)
	bookingService.SetCacheService(r.cacheService)
	bookingService.SetUserService(r.userAdapter)
	if r.notifier != nil {
		bookingService.SetNotifier(r.notifier)
	}
	r.bookingService = bookingService

	return bookings.NewController(bookingService)
}

// setupAnalyticsRoutes configures admin analytics routes
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.PostgreSQL)
	analyticsService := analytics.NewService(analyticsRepo)
	analyticsService.SetCacheService(r.cacheService)
	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController)
}
