// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"wisata/internal/analytics"
	"wisata/internal/auth"
	"wisata/internal/bookings"
	"wisata/internal/complaints"
	"wisata/internal/destinations"
	"wisata/internal/documents"
	"wisata/internal/notifications"
	"wisata/internal/shared/config"
	"wisata/internal/shared/database"
	"wisata/internal/tickets"
	"wisata/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config              *config.Config
	db                  *database.DB
	notificationService notifications.NotificationService

	cacheService       cache.Service
	destinationService destinations.Service
	ticketService      tickets.Service
	bookingService     bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notificationService notifications.NotificationService) *Router {
	return &Router{
		config:              cfg,
		db:                  db,
		notificationService: notificationService,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.GetRedis())
	}

	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Destinations before tickets and bookings: both depend on it
		r.setupDestinationRoutes(api)
		r.setupTicketRoutes(api)
		r.setupBookingRoutes(api)
		r.setupDocumentRoutes(api)
		r.setupComplaintRoutes(api)
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
				"service":   "wisata-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "wisata-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

func (r *Router) setupDestinationRoutes(rg *gin.RouterGroup) {
	destinationRepo := destinations.NewRepository(r.db.GetPostgreSQL())
	destinationService := destinations.NewService(destinationRepo)
	if r.cacheService != nil {
		destinationService.SetCacheService(r.cacheService)
	}
	destinationController := destinations.NewController(destinationService)

	r.destinationService = destinationService

	destinations.SetupDestinationRoutes(rg, destinationController)
}

func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	ticketRepo := tickets.NewRepository(r.db.GetPostgreSQL())
	ticketService := tickets.NewService(ticketRepo, r.destinationService)
	if r.cacheService != nil {
		ticketService.SetCacheService(r.cacheService)
	}
	ticketController := tickets.NewController(ticketService)

	r.ticketService = ticketService

	tickets.SetupTicketRoutes(rg, ticketController)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	draftStore := bookings.NewDraftStore(r.db.GetRedis(), r.config.Redis.BookingDraftTTL)

	var notifier bookings.Notifier
	if r.notificationService != nil {
		notifier = r.notificationService
	}

	bookingService := bookings.NewService(bookingRepo, draftStore, r.ticketService, r.destinationService, notifier)
	bookingController := bookings.NewController(bookingService)

	r.bookingService = bookingService

	sessionTTLSeconds := int(r.config.Redis.SessionTTL.Seconds())
	bookings.SetupBookingRoutes(rg, bookingController, sessionTTLSeconds, r.config.IsProduction())
}

func (r *Router) setupDocumentRoutes(rg *gin.RouterGroup) {
	documentService := documents.NewService(r.bookingService)
	documentController := documents.NewController(documentService)

	documents.SetupDocumentRoutes(rg, documentController)
}

func (r *Router) setupComplaintRoutes(rg *gin.RouterGroup) {
	complaintRepo := complaints.NewRepository(r.db.GetPostgreSQL())

	var notifier complaints.Notifier
	if r.notificationService != nil {
		notifier = r.notificationService
	}

	complaintService := complaints.NewService(complaintRepo, notifier)
	complaintController := complaints.NewController(complaintService)

	complaints.SetupComplaintRoutes(rg, complaintController)
}

func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo)
	if r.cacheService != nil {
		analyticsService.SetCacheService(r.cacheService)
	}
	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController)
}
