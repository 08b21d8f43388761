package router

import (
	"time"

	"github.com/artistlist/artistlist-backend/internal/database/repository"
	"github.com/artistlist/artistlist-backend/internal/handlers"
	"github.com/artistlist/artistlist-backend/internal/middleware"
	"github.com/artistlist/artistlist-backend/internal/services"
	"github.com/artistlist/artistlist-backend/internal/services/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin router with all API routes
func SetupRouter(db *gorm.DB, rabbitMQService *services.RabbitMQService, exportsDir string) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Create a new router
	r := gin.New()

	// Use middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Cron-Secret"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Create services
	authService := auth.NewAuthService(db)
	reconcileService := services.NewReconcileService(
		repository.NewAdRepository(db),
		repository.NewArtistRepository(db),
	)

	// Create middleware with services
	bearerTokenMiddleware := middleware.NewBearerTokenMiddleware(authService)

	// Create handlers with services
	authHandler := handlers.NewAuthHandler(authService)
	artistHandler := handlers.NewArtistHandler(db)
	adHandler := handlers.NewAdHandler(db, rabbitMQService, exportsDir)
	cronHandler := handlers.NewCronHandler(reconcileService)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	api := r.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		// Auth routes (public)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Public artist routes
		artists := api.Group("/artists")
		{
			artists.GET("", artistHandler.ListArtists)
			artists.GET("/promoted", artistHandler.GetPromotedArtists)
			artists.GET("/:id", artistHandler.GetArtist)
			artists.GET("/:id/click", artistHandler.RecordClick)
		}

		// Cron trigger routes, gated by the shared secret
		cron := api.Group("/cron")
		cron.Use(middleware.CronSecret())
		{
			cron.POST("/check-expired-ads", cronHandler.CheckExpiredAds)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(bearerTokenMiddleware.BearerTokenAuthMiddleware())
		{
			protected.POST("/artists", artistHandler.CreateArtist)
			protected.GET("/artists/mine", artistHandler.ListMyArtists)

			ads := protected.Group("/ads")
			{
				ads.POST("", adHandler.CreateAd)
				ads.GET("/active-count", adHandler.GetActiveAdsCount)
				ads.GET("/:artistId", adHandler.GetAdsByArtist)
				ads.GET("/:artistId/export", adHandler.ExportAdsReport)
				ads.GET("/:artistId/transactions", adHandler.GetArtistTransactions)
			}
		}
	}

	return r
}
